// Package guides defines the contract every buying-guide converter implements.
package guides

import (
	"context"

	"github.com/IshaanNene/pbg/internal/types"
)

// Converter turns fully-read input pages into one guide document.
// Any structural surprise in the input aborts the whole conversion.
type Converter interface {
	// Name returns the converter identifier used on the command line.
	Name() string

	// Convert extracts, merges, and checks the records of all pages.
	Convert(ctx context.Context, pages []*types.Page) (*types.Guide, error)
}
