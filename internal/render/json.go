package render

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/IshaanNene/pbg/internal/types"
)

// JSONRenderer writes the guide as indented JSON with a trailing newline.
// Struct fields keep their declared order and Extra keys are sorted.
type JSONRenderer struct {
	// Indent is the number of spaces per level; 0 writes compact JSON.
	Indent int
}

func (r *JSONRenderer) Format() string { return "json" }

func (r *JSONRenderer) Render(w io.Writer, guide *types.Guide) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if r.Indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", r.Indent))
	}
	return enc.Encode(guide)
}
