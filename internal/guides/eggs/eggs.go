// Package eggs converts the Cornucopia Institute organic egg scorecard.
package eggs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/IshaanNene/pbg/internal/config"
	"github.com/IshaanNene/pbg/internal/observability"
	"github.com/IshaanNene/pbg/internal/parser"
	"github.com/IshaanNene/pbg/internal/types"
)

const (
	GuideName = "Organic Egg Scorecard"

	tableSelector = "table#organic-egg-scorecard"
	companyPrefix = "by "
)

// Author is the organization that publishes the scorecard.
var Author = types.Organization{Type: "NGO", Name: "The Cornucopia Institute"}

// RatingTier maps a scorecard rating (1 to 5 "eggs") to a judgment tier.
func RatingTier(rating int) (types.Tier, error) {
	switch rating {
	case 5, 4:
		return types.TierGood, nil
	case 3, 2:
		return types.TierMixed, nil
	case 1:
		return types.TierBad, nil
	default:
		return "", &types.UnknownValueError{Table: "egg rating", Value: fmt.Sprint(rating)}
	}
}

// Converter implements guides.Converter for the scorecard.
type Converter struct {
	minRows int
	metrics *observability.Metrics
	logger  *slog.Logger
}

// New creates a Converter. metrics may be nil.
func New(cfg config.EggsConfig, metrics *observability.Metrics, logger *slog.Logger) *Converter {
	return &Converter{
		minRows: cfg.MinRows,
		metrics: metrics,
		logger:  logger.With("component", "eggs"),
	}
}

// Name returns "eggs".
func (c *Converter) Name() string { return "eggs" }

// Convert extracts one brand rating per scorecard row. The scorecard is a
// single page.
func (c *Converter) Convert(ctx context.Context, pages []*types.Page) (*types.Guide, error) {
	if len(pages) == 0 {
		return nil, types.ErrNoInput
	}
	if len(pages) != 1 {
		return nil, types.Mismatch("one scorecard page", len(pages), "")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page := pages[0]
	entries, err := c.parse(page)
	if err != nil {
		if errors.Is(err, types.ErrEmptyResultSet) {
			return nil, err
		}
		return nil, &types.ParseError{Source: page.Source, Selector: tableSelector, Err: err}
	}

	if len(entries) <= c.minRows {
		return nil, &types.EmptyResultError{Guide: c.Name(), Got: len(entries), Min: c.minRows + 1}
	}

	author := Author
	return &types.Guide{
		Name:    GuideName,
		Author:  &author,
		Entries: entries,
	}, nil
}

func (c *Converter) parse(page *types.Page) ([]*types.Entry, error) {
	doc, err := page.Document()
	if err != nil {
		return nil, err
	}

	table, err := parser.First(doc.Selection, tableSelector)
	if err != nil {
		return nil, err
	}

	trs := table.Find("tr")
	if trs.Length() <= c.minRows {
		return nil, &types.EmptyResultError{Guide: c.Name(), Got: trs.Length(), Min: c.minRows + 1}
	}

	var entries []*types.Entry
	for i := range trs.Nodes {
		tr := trs.Eq(i)

		tds := tr.Find("td")
		if tds.Length() != 6 || tds.Eq(0).Find("a").Length() == 0 {
			// Headers and section rows.
			if c.metrics != nil {
				c.metrics.RowsSkipped.Add(1)
			}
			continue
		}

		entry, err := parseRow(tds)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
		if c.metrics != nil {
			c.metrics.RowsExtracted.Add(1)
		}
	}

	c.logger.Debug("scorecard parsed", "source", page.Source, "rows", trs.Length(), "ratings", len(entries))
	return entries, nil
}

// parseRow reads the brand, rating, location, market area, and total score cells.
func parseRow(tds *goquery.Selection) (*types.Entry, error) {
	brandCell := tds.Eq(0)

	brand, ok := parser.SelectionString(brandCell.Find("a").First())
	if !ok {
		return nil, types.Mismatch("a plain-text brand link", nil, parser.SelectionSnippet(brandCell))
	}
	brand = strings.TrimSpace(brand)

	byline, err := parser.FirstString(brandCell, "i")
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(byline, companyPrefix) {
		return nil, types.Mismatch(fmt.Sprintf("company line starting with %q", companyPrefix), fmt.Sprintf("%q", byline), parser.SelectionSnippet(brandCell))
	}
	company := strings.TrimSpace(strings.TrimPrefix(byline, companyPrefix))

	rating, err := cellInt(tds.Eq(1), "rating")
	if err != nil {
		return nil, err
	}
	tier, err := RatingTier(rating)
	if err != nil {
		return nil, err
	}

	owner := &types.Entity{Type: "Corporation", Name: company}
	if location := cellText(tds.Eq(2)); location != "" {
		owner.Address, err = parser.ParseAddress(location)
		if err != nil {
			return nil, err
		}
	}

	target := &types.Entity{
		Type:  "Brand",
		Name:  brand,
		Owner: owner,
	}
	if market := cellText(tds.Eq(3)); market != "" {
		target.Markets = []types.Market{{Desc: market, Country: "US"}}
	}

	total, err := cellInt(tds.Eq(4), "total score")
	if err != nil {
		return nil, err
	}

	var extra types.Extra
	extra.Set("rating", types.Int(rating))
	extra.Set("total_score", types.Int(total))

	return &types.Entry{
		Target: target,
		Judgment: &types.Judgment{
			Tier:  tier,
			Name:  fmt.Sprintf("%d out of 5", rating),
			Extra: extra,
		},
	}, nil
}

// cellText returns the whitespace-fixed single string of an optional cell.
func cellText(td *goquery.Selection) string {
	s, ok := parser.SelectionString(td)
	if !ok {
		return ""
	}
	return parser.FixWhitespace(s)
}

func cellInt(td *goquery.Selection, what string) (int, error) {
	s, ok := parser.SelectionString(td)
	if !ok {
		return 0, types.Mismatch(fmt.Sprintf("a plain-text %s cell", what), nil, parser.SelectionSnippet(td))
	}
	return parser.Atoi(what, s)
}
