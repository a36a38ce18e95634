package fetcher

import (
	"context"

	"github.com/IshaanNene/pbg/internal/types"
)

// Fetcher loads input documents. Pages are fetched by an external step
// (curl) beforehand, so fetchers only read what is already on disk.
type Fetcher interface {
	// Fetch reads the whole document at source into memory.
	Fetch(ctx context.Context, source string) (*types.Page, error)

	// Type returns the fetcher type identifier.
	Type() string
}

// FetchAll reads every source before any parsing starts. The first failure aborts.
func FetchAll(ctx context.Context, f Fetcher, sources []string) ([]*types.Page, error) {
	if len(sources) == 0 {
		return nil, types.ErrNoInput
	}

	pages := make([]*types.Page, 0, len(sources))
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := f.Fetch(ctx, src)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}
