package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"github.com/IshaanNene/pbg/internal/types"
)

// TableRenderer writes a human summary, one row per entry.
type TableRenderer struct{}

func (r *TableRenderer) Format() string { return "table" }

func (r *TableRenderer) Render(w io.Writer, guide *types.Guide) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle(guide.Name)
	t.AppendHeader(table.Row{"Entity", "Type", "Tier", "Judgment", "Brands", "Region"})

	t.AppendRows(lo.Map(guide.Entries, func(e *types.Entry, _ int) table.Row {
		return table.Row{
			e.Target.Name,
			e.Target.Type,
			string(e.Judgment.Tier),
			e.Judgment.Name,
			len(e.Target.Brands),
			region(e.Target),
		}
	}))

	counts := lo.CountValuesBy(guide.Entries, func(e *types.Entry) types.Tier { return e.Judgment.Tier })
	t.AppendFooter(table.Row{
		fmt.Sprintf("%d entries", len(guide.Entries)),
		"",
		fmt.Sprintf("%d/%d/%d", counts[types.TierGood], counts[types.TierMixed], counts[types.TierBad]),
	})

	t.Render()
	return nil
}

// region returns the entity's region, falling back to its owner's.
func region(e *types.Entity) string {
	switch {
	case e.Address != nil:
		return e.Address.Region
	case e.Owner != nil && e.Owner.Address != nil:
		return e.Owner.Address.Region
	default:
		return ""
	}
}
