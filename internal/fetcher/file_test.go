package fetcher

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"

	"github.com/IshaanNene/pbg/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

const page = `<html><body><h1>Hello</h1></body></html>`

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFetchPlainFile(t *testing.T) {
	f := NewFileFetcher(nil, testLogger)
	path := writeFile(t, "plain.html", []byte(page))

	p, err := f.Fetch(context.Background(), path)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(p.Body) != page {
		t.Errorf("body = %q", p.Body)
	}
	if p.Source != path {
		t.Errorf("source = %q", p.Source)
	}

	doc, err := p.Document()
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if got := doc.Find("h1").Text(); got != "Hello" {
		t.Errorf("h1 = %q", got)
	}
}

func TestFetchCompressed(t *testing.T) {
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	zw.Write([]byte(page))
	zw.Close()

	var br bytes.Buffer
	bw := brotli.NewWriter(&br)
	bw.Write([]byte(page))
	bw.Close()

	f := NewFileFetcher(nil, testLogger)
	for name, data := range map[string][]byte{
		"page.html.gz": gz.Bytes(),
		"page.html.br": br.Bytes(),
		"sniffed.html": gz.Bytes(),
	} {
		t.Run(name, func(t *testing.T) {
			p, err := f.Fetch(context.Background(), writeFile(t, name, data))
			if err != nil {
				t.Fatalf("fetch: %v", err)
			}
			if string(p.Body) != page {
				t.Errorf("body = %q", p.Body)
			}
		})
	}
}

func TestFetchStdin(t *testing.T) {
	f := NewFileFetcher(strings.NewReader(page), testLogger)
	p, err := f.Fetch(context.Background(), StdinSource)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(p.Body) != page {
		t.Errorf("body = %q", p.Body)
	}
}

func TestFetchAll(t *testing.T) {
	f := NewFileFetcher(nil, testLogger)

	if _, err := FetchAll(context.Background(), f, nil); !errors.Is(err, types.ErrNoInput) {
		t.Errorf("expected ErrNoInput, got %v", err)
	}

	good := writeFile(t, "a.html", []byte(page))
	missing := filepath.Join(t.TempDir(), "missing.html")
	if _, err := FetchAll(context.Background(), f, []string{good, missing}); err == nil {
		t.Error("expected error for missing file")
	}

	empty := writeFile(t, "empty.html", nil)
	if _, err := FetchAll(context.Background(), f, []string{empty}); err == nil {
		t.Error("expected error for empty file")
	}

	pages, err := FetchAll(context.Background(), f, []string{good, good})
	if err != nil {
		t.Fatalf("fetch all: %v", err)
	}
	if len(pages) != 2 {
		t.Errorf("expected 2 pages, got %d", len(pages))
	}
}
