// Package render serializes a normalized guide. Rendering the same guide
// twice yields byte-identical output.
package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/IshaanNene/pbg/internal/config"
	"github.com/IshaanNene/pbg/internal/types"
)

// Renderer writes a guide in one output format.
type Renderer interface {
	// Format returns the output format name.
	Format() string

	// Render writes the whole document to w.
	Render(w io.Writer, guide *types.Guide) error
}

// New returns the renderer for the configured output format.
func New(cfg config.OutputConfig) (Renderer, error) {
	switch cfg.Format {
	case "json", "":
		return &JSONRenderer{Indent: cfg.Indent}, nil
	case "microdata":
		return &MicrodataRenderer{}, nil
	case "table":
		return &TableRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", cfg.Format)
	}
}

// Bytes renders the guide into memory so that nothing reaches the output
// when rendering fails.
func Bytes(r Renderer, guide *types.Guide) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, guide); err != nil {
		return nil, fmt.Errorf("render %s: %w", r.Format(), err)
	}
	return buf.Bytes(), nil
}
