// Package merge folds partial records for the same entity, collected across
// several pages, into one record per entity name.
package merge

import (
	"fmt"
	"log/slog"

	"dario.cat/mergo"
	"github.com/google/go-cmp/cmp"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/IshaanNene/pbg/internal/observability"
	"github.com/IshaanNene/pbg/internal/types"
)

// compareValues lets go-cmp diff Extra values by their raw content.
var compareValues = cmp.Transformer("Value", func(v types.Value) any { return v.Interface() })

// Merger groups entries by target name. The key is the literal display name:
// "Acme" and "Acme, Inc." stay two entities.
type Merger struct {
	similarThreshold float64
	metrics          *observability.Metrics
	logger           *slog.Logger
}

// New creates a Merger. A zero threshold disables the similar-name report.
// metrics may be nil.
func New(similarThreshold float64, metrics *observability.Metrics, logger *slog.Logger) *Merger {
	return &Merger{
		similarThreshold: similarThreshold,
		metrics:          metrics,
		logger:           logger.With("component", "merger"),
	}
}

// Merge returns one entry per distinct target name, in first-seen order.
// Scalars are first-writer-wins and any differing later value is a
// MergeConflictError. Lists are concatenated without deduplication and
// left unsorted. The input entries are not modified.
func (m *Merger) Merge(entries []*types.Entry) ([]*types.Entry, error) {
	groups := orderedmap.New[string, *types.Entry]()

	for i, e := range entries {
		if e == nil || e.Target == nil || e.Judgment == nil {
			return nil, fmt.Errorf("entry %d has no target or judgment", i)
		}

		name := e.Name()
		have, ok := groups.Get(name)
		if !ok {
			groups.Set(name, cloneEntry(e))
			continue
		}

		if err := fold(have, e); err != nil {
			return nil, err
		}
		if m.metrics != nil {
			m.metrics.MergeFolds.Add(1)
		}
	}

	merged := make([]*types.Entry, 0, groups.Len())
	for pair := groups.Oldest(); pair != nil; pair = pair.Next() {
		merged = append(merged, pair.Value)
	}

	if m.metrics != nil {
		m.metrics.EntriesMerged.Add(int64(len(merged)))
	}
	m.logger.Debug("entries merged", "partial", len(entries), "merged", len(merged))

	m.reportSimilar(merged)
	return merged, nil
}

// fold merges src into dst after checking every scalar both of them set.
func fold(dst, src *types.Entry) error {
	name := dst.Name()

	if err := checkTarget(name, dst.Target, src.Target); err != nil {
		return err
	}
	if err := checkJudgment(name, dst.Judgment, src.Judgment); err != nil {
		return err
	}

	// Pointer fields and Extra are handled here; mergo only sees the plain
	// scalars it fills when empty and the slices it appends.
	srcTarget := *src.Target
	srcTarget.Owner, srcTarget.Address, srcTarget.Extra = nil, nil, nil
	srcTarget.Brands = cloneBrands(src.Target.Brands)
	if err := mergo.Merge(dst.Target, srcTarget, mergo.WithAppendSlice); err != nil {
		return fmt.Errorf("merge target %q: %w", name, err)
	}
	if dst.Target.Owner == nil && src.Target.Owner != nil {
		dst.Target.Owner = cloneEntity(src.Target.Owner)
	}
	if dst.Target.Address == nil && src.Target.Address != nil {
		addr := *src.Target.Address
		dst.Target.Address = &addr
	}
	mergeExtra(&dst.Target.Extra, src.Target.Extra)

	srcJudgment := *src.Judgment
	srcJudgment.Extra = nil
	if err := mergo.Merge(dst.Judgment, srcJudgment); err != nil {
		return fmt.Errorf("merge judgment %q: %w", name, err)
	}
	mergeExtra(&dst.Judgment.Extra, src.Judgment.Extra)

	return nil
}

func checkTarget(name string, have, got *types.Entity) error {
	if err := checkString(name, "target.type", have.Type, got.Type); err != nil {
		return err
	}
	if have.Owner != nil && got.Owner != nil && !cmp.Equal(have.Owner, got.Owner, compareValues) {
		return conflict(name, "target.owner", have.Owner, got.Owner)
	}
	if have.Address != nil && got.Address != nil && !cmp.Equal(have.Address, got.Address) {
		return conflict(name, "target.address", have.Address, got.Address)
	}
	return checkExtra(name, "target.extra", have.Extra, got.Extra)
}

func checkJudgment(name string, have, got *types.Judgment) error {
	if err := checkString(name, "judgment.tier", string(have.Tier), string(got.Tier)); err != nil {
		return err
	}
	if err := checkString(name, "judgment.name", have.Name, got.Name); err != nil {
		return err
	}
	if err := checkString(name, "judgment.caveat", have.Caveat, got.Caveat); err != nil {
		return err
	}
	return checkExtra(name, "judgment.extra", have.Extra, got.Extra)
}

// checkString treats the empty string as unset.
func checkString(name, field, have, got string) error {
	if have != "" && got != "" && have != got {
		return conflict(name, field, have, got)
	}
	return nil
}

// checkExtra compares keys present on both sides. List values never conflict
// with each other; a list against a scalar does.
func checkExtra(name, field string, have, got types.Extra) error {
	for key, gv := range got {
		hv, ok := have[key]
		if !ok {
			continue
		}
		if hv.IsList() && gv.IsList() {
			continue
		}
		if !hv.Equal(gv) {
			return conflict(name, field+"."+key, hv, gv)
		}
	}
	return nil
}

func conflict(name, field string, have, got any) error {
	return &types.MergeConflictError{
		Entity: name,
		Field:  field,
		Diff:   cmp.Diff(have, got, compareValues),
	}
}

// mergeExtra appends list values and sets scalars that dst lacks.
func mergeExtra(dst *types.Extra, src types.Extra) {
	for key, v := range src {
		have, ok := (*dst)[key]
		switch {
		case !ok:
			if v.IsList() {
				v = types.Strings(v.List()...)
			}
			dst.Set(key, v)
		case have.IsList():
			dst.Set(key, have.Append(v.List()...))
		}
	}
}

func cloneEntry(e *types.Entry) *types.Entry {
	j := *e.Judgment
	j.Extra = e.Judgment.Extra.Clone()
	return &types.Entry{
		Target:   cloneEntity(e.Target),
		Judgment: &j,
	}
}

func cloneEntity(e *types.Entity) *types.Entity {
	out := *e
	if e.Owner != nil {
		out.Owner = cloneEntity(e.Owner)
	}
	if e.Address != nil {
		addr := *e.Address
		out.Address = &addr
	}
	out.Brands = cloneBrands(e.Brands)
	out.Categories = append([]types.Category(nil), e.Categories...)
	out.Markets = append([]types.Market(nil), e.Markets...)
	out.Extra = e.Extra.Clone()
	return &out
}

func cloneBrands(brands []*types.Brand) []*types.Brand {
	if brands == nil {
		return nil
	}
	out := make([]*types.Brand, len(brands))
	for i, b := range brands {
		c := *b
		c.Categories = append([]types.Category(nil), b.Categories...)
		c.Extra = b.Extra.Clone()
		out[i] = &c
	}
	return out
}
