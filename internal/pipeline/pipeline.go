package pipeline

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/IshaanNene/pbg/internal/types"
)

// Middleware processes a merged entry and returns the (possibly modified) entry.
type Middleware interface {
	// Name returns the middleware's identifier.
	Name() string

	// Process transforms an entry in place or returns a replacement.
	Process(entry *types.Entry) (*types.Entry, error)
}

// Pipeline chains middleware processors together.
type Pipeline struct {
	middlewares []Middleware
	logger      *slog.Logger
}

// New creates an empty Pipeline.
func New(logger *slog.Logger) *Pipeline {
	return &Pipeline{
		logger: logger.With("component", "pipeline"),
	}
}

// NewNormalizer creates the Pipeline every guide goes through before it is
// rendered: invariant checks, then nested list sorting.
func NewNormalizer(logger *slog.Logger) *Pipeline {
	p := New(logger)
	p.Use(&ValidateMiddleware{})
	p.Use(&SortListsMiddleware{})
	return p
}

// Use adds a middleware to the pipeline chain.
func (p *Pipeline) Use(mw Middleware) {
	p.middlewares = append(p.middlewares, mw)
	p.logger.Debug("middleware added", "name", mw.Name(), "position", len(p.middlewares))
}

// Process runs the entry through all middleware in order.
func (p *Pipeline) Process(entry *types.Entry) (*types.Entry, error) {
	current := entry

	for _, mw := range p.middlewares {
		result, err := mw.Process(current)
		if err != nil {
			return nil, &types.PipelineError{
				Stage:  mw.Name(),
				Entity: current.Name(),
				Err:    err,
			}
		}
		current = result
	}

	return current, nil
}

// Normalize processes every entry of the guide and then orders the entries.
// Normalizing an already normalized guide changes nothing.
func (p *Pipeline) Normalize(guide *types.Guide) error {
	for i, entry := range guide.Entries {
		out, err := p.Process(entry)
		if err != nil {
			return err
		}
		guide.Entries[i] = out
	}

	SortEntries(guide.Entries)
	p.logger.Debug("guide normalized", "entries", len(guide.Entries), "stages", len(p.middlewares))
	return nil
}

// Len returns the number of middleware in the chain.
func (p *Pipeline) Len() int {
	return len(p.middlewares)
}

// SortEntries orders entries by target name. Entries sharing a name (two
// hotels of one chain, two brands of one company) fall back to owner and address.
func SortEntries(entries []*types.Entry) {
	slices.SortStableFunc(entries, compareEntries)
}

func compareEntries(a, b *types.Entry) int {
	if c := cmp.Compare(a.Name(), b.Name()); c != 0 {
		return c
	}
	if c := cmp.Compare(ownerName(a.Target), ownerName(b.Target)); c != 0 {
		return c
	}
	if c := compareAddresses(a.Target.Address, b.Target.Address); c != 0 {
		return c
	}
	return cmp.Compare(a.Judgment.Name, b.Judgment.Name)
}

func ownerName(e *types.Entity) string {
	if e.Owner == nil {
		return ""
	}
	return e.Owner.Name
}

func compareAddresses(a, b *types.Address) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	for _, pair := range [][2]string{
		{a.Country, b.Country},
		{a.Region, b.Region},
		{a.Locality, b.Locality},
		{a.StreetAddress, b.StreetAddress},
		{a.PostalCode, b.PostalCode},
	} {
		if c := cmp.Compare(pair[0], pair[1]); c != 0 {
			return c
		}
	}
	return 0
}
