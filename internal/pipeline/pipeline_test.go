package pipeline

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/IshaanNene/pbg/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func brand(name string, cats ...string) *types.Brand {
	b := &types.Brand{Type: "Brand", Name: name}
	for _, c := range cats {
		b.Categories = append(b.Categories, types.Category{Name: c})
	}
	return b
}

func entry(name string, brands ...*types.Brand) *types.Entry {
	var extra types.Extra
	extra.Set("hrc_partner_brand", types.Strings("Zed", "Alpha", "Zed"))
	return &types.Entry{
		Target: &types.Entity{
			Type:       "Corporation",
			Name:       name,
			Brands:     brands,
			Categories: []types.Category{{Name: "Food", SourceID: "9"}, {Name: "Clothing", SourceID: "7"}},
		},
		Judgment: &types.Judgment{Tier: types.TierGood, Name: "100 out of 100", Extra: extra},
	}
}

func testGuide() *types.Guide {
	return &types.Guide{
		Name: "Buyer's Guide",
		Entries: []*types.Entry{
			entry("Zeta", brand("Y", "Food"), brand("X", "Clothing")),
			entry("Acme", brand("Y", "Food"), brand("X", "Food"), brand("X", "Clothing")),
			{
				Target: &types.Entity{Type: "Hotel", Name: "Grand", Address: &types.Address{Locality: "Toronto", Region: "ON", Country: "CA"}},
				Judgment: &types.Judgment{Tier: types.TierBad, Name: "On Strike"},
			},
			{
				Target: &types.Entity{Type: "Hotel", Name: "Grand", Address: &types.Address{Locality: "Boston", Region: "MA", Country: "US"}},
				Judgment: &types.Judgment{Tier: types.TierGood, Name: "Please Patronize"},
			},
		},
	}
}

func TestPipelineOrder(t *testing.T) {
	var order []string
	p := New(testLogger)
	p.Use(recorder{"first", &order})
	p.Use(recorder{"second", &order})

	if p.Len() != 2 {
		t.Fatalf("expected 2 middleware, got %d", p.Len())
	}
	if _, err := p.Process(entry("Acme")); err != nil {
		t.Fatalf("process: %v", err)
	}
	if diff := cmp.Diff([]string{"first", "second"}, order); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}

type recorder struct {
	name  string
	order *[]string
}

func (r recorder) Name() string { return r.name }

func (r recorder) Process(e *types.Entry) (*types.Entry, error) {
	*r.order = append(*r.order, r.name)
	return e, nil
}

func TestNormalize(t *testing.T) {
	g := testGuide()
	if err := NewNormalizer(testLogger).Normalize(g); err != nil {
		t.Fatalf("normalize: %v", err)
	}

	var names []string
	for _, e := range g.Entries {
		names = append(names, e.Name())
	}
	if diff := cmp.Diff([]string{"Acme", "Grand", "Grand", "Zeta"}, names); diff != "" {
		t.Errorf("entry order (-want +got):\n%s", diff)
	}

	// Same-named hotels fall back to address order: CA before US.
	if g.Entries[1].Target.Address.Country != "CA" {
		t.Errorf("expected Canadian hotel first, got %+v", g.Entries[1].Target.Address)
	}

	acme := g.Entries[0]
	wantBrands := []*types.Brand{brand("X", "Clothing"), brand("X", "Food"), brand("Y", "Food")}
	if diff := cmp.Diff(wantBrands, acme.Target.Brands); diff != "" {
		t.Errorf("brands (-want +got):\n%s", diff)
	}
	wantCats := []types.Category{{Name: "Clothing", SourceID: "7"}, {Name: "Food", SourceID: "9"}}
	if diff := cmp.Diff(wantCats, acme.Target.Categories); diff != "" {
		t.Errorf("categories (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Alpha", "Zed", "Zed"}, acme.Judgment.Extra["hrc_partner_brand"].List()); diff != "" {
		t.Errorf("partner brands (-want +got):\n%s", diff)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	once := testGuide()
	if err := NewNormalizer(testLogger).Normalize(once); err != nil {
		t.Fatal(err)
	}

	twice := testGuide()
	n := NewNormalizer(testLogger)
	for i := 0; i < 2; i++ {
		if err := n.Normalize(twice); err != nil {
			t.Fatal(err)
		}
	}

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second normalize changed the guide (-once +twice):\n%s", diff)
	}
}

func TestValidateMiddleware(t *testing.T) {
	tests := []struct {
		name  string
		entry *types.Entry
	}{
		{"no target", &types.Entry{Judgment: &types.Judgment{Tier: types.TierGood}}},
		{"no judgment", &types.Entry{Target: &types.Entity{Name: "Acme"}}},
		{"no name", &types.Entry{Target: &types.Entity{}, Judgment: &types.Judgment{Tier: types.TierGood}}},
		{"bad tier", &types.Entry{Target: &types.Entity{Name: "Acme"}, Judgment: &types.Judgment{Tier: "OK"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &types.Guide{Entries: []*types.Entry{tt.entry}}
			err := NewNormalizer(testLogger).Normalize(g)
			var pe *types.PipelineError
			if !errors.As(err, &pe) {
				t.Fatalf("expected PipelineError, got %v", err)
			}
			if pe.Stage != "validate" {
				t.Errorf("expected validate stage, got %q", pe.Stage)
			}
		})
	}
}
