package pipeline

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/IshaanNene/pbg/internal/types"
)

// ValidateMiddleware enforces that every judgment targets exactly one named
// entity and carries a known tier.
type ValidateMiddleware struct{}

func (m *ValidateMiddleware) Name() string { return "validate" }

func (m *ValidateMiddleware) Process(entry *types.Entry) (*types.Entry, error) {
	if entry == nil {
		return nil, errors.New("nil entry")
	}
	if entry.Target == nil {
		return nil, errors.New("judgment has no target")
	}
	if entry.Judgment == nil {
		return nil, errors.New("target has no judgment")
	}
	if entry.Target.Name == "" {
		return nil, errors.New("target has no name")
	}
	if !entry.Judgment.Tier.Valid() {
		return nil, &types.UnknownValueError{Table: "judgment tier", Value: string(entry.Judgment.Tier)}
	}
	for key, v := range entry.Judgment.Extra {
		if v.Kind() == 0 {
			return nil, fmt.Errorf("judgment extra %q has no value", key)
		}
	}
	return entry, nil
}

// SortListsMiddleware sorts every nested list by its own key: brands by name,
// categories by name, markets by description, and string lists in Extra.
// Duplicates are kept.
type SortListsMiddleware struct{}

func (m *SortListsMiddleware) Name() string { return "sort_lists" }

func (m *SortListsMiddleware) Process(entry *types.Entry) (*types.Entry, error) {
	sortEntity(entry.Target)
	sortExtra(entry.Judgment.Extra)
	return entry, nil
}

func sortEntity(e *types.Entity) {
	if e == nil {
		return
	}
	for _, b := range e.Brands {
		slices.SortStableFunc(b.Categories, compareCategories)
		sortExtra(b.Extra)
	}
	slices.SortStableFunc(e.Brands, compareBrands)
	slices.SortStableFunc(e.Categories, compareCategories)
	slices.SortStableFunc(e.Markets, func(a, b types.Market) int {
		if c := cmp.Compare(a.Desc, b.Desc); c != 0 {
			return c
		}
		return cmp.Compare(a.Country, b.Country)
	})
	sortExtra(e.Extra)
	sortEntity(e.Owner)
}

func sortExtra(extra types.Extra) {
	for key, v := range extra {
		if v.IsList() {
			extra[key] = v.Sorted()
		}
	}
}

func compareCategories(a, b types.Category) int {
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.SourceID, b.SourceID)
}

// compareBrands orders by name, then by categories.
func compareBrands(a, b *types.Brand) int {
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return slices.CompareFunc(a.Categories, b.Categories, compareCategories)
}
