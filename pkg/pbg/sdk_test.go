package pbg

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/IshaanNene/pbg/internal/types"
)

func TestConvertHotels(t *testing.T) {
	src := filepath.Join("..", "..", "internal", "guides", "hotels", "testdata", "hotels.html")

	doc, err := New(WithIndent(2)).Convert(context.Background(), "hotels", src)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	var out struct {
		Name    string `json:"name"`
		Entries []struct {
			Target struct {
				Name string `json:"name"`
			} `json:"target"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(doc, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Name != "Hotel Guide" {
		t.Errorf("expected name %q, got %q", "Hotel Guide", out.Name)
	}
	if len(out.Entries) != 5 || out.Entries[0].Target.Name != "Bay View Hotel" {
		t.Errorf("unexpected entries: %+v", out.Entries)
	}
}

func TestConvertInvalidOptions(t *testing.T) {
	_, err := New(WithFormat("xml")).Convert(context.Background(), "hotels", "x.html")
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestConvertNoSources(t *testing.T) {
	_, err := New().Convert(context.Background(), "hrc")
	if !errors.Is(err, types.ErrNoInput) {
		t.Fatalf("expected ErrNoInput, got %v", err)
	}
}
