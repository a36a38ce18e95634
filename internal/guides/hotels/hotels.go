// Package hotels converts the UNITE HERE hotel guide, a single page listing
// hotels under patronize, dispute, strike, and boycott headings.
package hotels

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/net/html"

	"github.com/IshaanNene/pbg/internal/config"
	"github.com/IshaanNene/pbg/internal/observability"
	"github.com/IshaanNene/pbg/internal/parser"
	"github.com/IshaanNene/pbg/internal/types"
)

const (
	// GuideType is the item type of the emitted guide.
	GuideType = "CreativeWork/BuyingGuideV1"

	onStrikeSuffix = " - ON STRIKE"
	phonePrefix    = "Phone: "
)

// categories maps the guide's headings to judgments. The display name is the
// heading itself unless one is given.
var categories = map[string]struct {
	tier types.Tier
	name string
}{
	"Please Patronize":         {types.TierGood, ""},
	"Risk of Dispute":          {types.TierMixed, ""},
	"On Strike":                {types.TierBad, ""},
	"Boycott These Properties": {types.TierBad, "Boycott"},
}

// CategoryJudgment returns the tier and display name for a heading.
func CategoryJudgment(category string) (types.Tier, string, error) {
	j, ok := categories[category]
	if !ok {
		return "", "", &types.UnknownValueError{Table: "hotel category", Value: category}
	}
	if j.name == "" {
		return j.tier, category, nil
	}
	return j.tier, j.name, nil
}

// Converter implements guides.Converter for the hotel guide.
type Converter struct {
	minEntries int
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// New creates a Converter. metrics may be nil.
func New(cfg config.HotelsConfig, metrics *observability.Metrics, logger *slog.Logger) *Converter {
	return &Converter{
		minEntries: cfg.MinEntries,
		metrics:    metrics,
		logger:     logger.With("component", "hotels"),
	}
}

// Name returns "hotels".
func (c *Converter) Name() string { return "hotels" }

// Convert reads the guide header, copyright line, and hotel listing.
func (c *Converter) Convert(ctx context.Context, pages []*types.Page) (*types.Guide, error) {
	if len(pages) == 0 {
		return nil, types.ErrNoInput
	}
	if len(pages) != 1 {
		return nil, types.Mismatch("one hotel guide page", len(pages), "")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page := pages[0]
	guide, err := c.parse(page)
	if err != nil {
		return nil, &types.ParseError{Source: page.Source, Err: err}
	}

	if len(guide.Entries) < c.minEntries {
		return nil, &types.EmptyResultError{Guide: c.Name(), Got: len(guide.Entries), Min: c.minEntries}
	}
	return guide, nil
}

func (c *Converter) parse(page *types.Page) (*types.Guide, error) {
	root, err := page.Root()
	if err != nil {
		return nil, err
	}

	h1, err := parser.QueryOne(root, "//h1")
	if err != nil {
		return nil, err
	}
	name := parser.FixWhitespace(parser.InnerText(h1))

	copyrightP, err := parser.QueryOne(root, parser.ClassXPath("p", "copyright"))
	if err != nil {
		return nil, err
	}
	year, holder, err := parseCopyright(copyrightP)
	if err != nil {
		return nil, err
	}

	table, err := parser.QueryOne(root, "//table//div//table")
	if err != nil {
		return nil, err
	}
	trs, err := parser.QueryExactly(table, ".//tr", 2)
	if err != nil {
		return nil, err
	}
	tds, err := parser.QueryExactly(trs[0], ".//td", 2)
	if err != nil {
		return nil, err
	}

	var entries []*types.Entry
	for _, td := range tds {
		column, err := parseColumn(td)
		if err != nil {
			return nil, err
		}
		entries = append(entries, column...)
	}
	if c.metrics != nil {
		c.metrics.RowsExtracted.Add(int64(len(entries)))
	}
	c.logger.Debug("hotel guide parsed", "source", page.Source, "hotels", len(entries))

	return &types.Guide{
		Type:            GuideType,
		Name:            name,
		Author:          &types.Organization{Name: holder},
		CopyrightYear:   year,
		CopyrightHolder: holder,
		Entries:         entries,
	}, nil
}

// parseCopyright reads "Copyright <symbol> <year> <holder>".
func parseCopyright(p *html.Node) (int, string, error) {
	strs := parser.StrippedStrings(p)
	if len(strs) != 1 {
		return 0, "", types.Mismatch("one string in the copyright line", len(strs), parser.Snippet(p))
	}

	fields := strings.Fields(strs[0])
	if len(fields) < 4 || fields[0] != "Copyright" {
		return 0, "", types.Mismatch(`"Copyright <symbol> <year> <holder>"`, fmt.Sprintf("%q", strs[0]), "")
	}
	year, err := parser.Atoi("copyright year", fields[2])
	if err != nil {
		return 0, "", err
	}
	return year, strings.Join(fields[3:], " "), nil
}

// parseColumn walks one listing column: each h3 starts a category and each
// p is a hotel under the current one.
func parseColumn(td *html.Node) ([]*types.Entry, error) {
	var (
		category string
		entries  []*types.Entry
	)

	for c := td.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "h3":
			s, ok := parser.OwnString(c)
			if !ok {
				return nil, types.Mismatch("a plain-text category heading", nil, parser.Snippet(c))
			}
			category = strings.TrimSpace(s)
		case "p":
			entry, err := parseHotel(c, category)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// parseHotel reads the name, address lines, and phone of one hotel.
func parseHotel(p *html.Node, category string) (*types.Entry, error) {
	tier, judgmentName, err := CategoryJudgment(category)
	if err != nil {
		return nil, err
	}

	lines := parser.StrippedStrings(p)
	if len(lines) < 2 || len(lines) > 4 {
		return nil, types.Mismatch("2 to 4 lines in a hotel listing", len(lines), parser.Snippet(p))
	}

	name := strings.TrimSuffix(lines[0], onStrikeSuffix)

	addrLines := lines[1:2]
	if len(lines) > 2 {
		addrLines = lines[1:3]
	}
	address, err := parser.ParseAddress(addrLines[len(addrLines)-1])
	if err != nil {
		return nil, err
	}
	if len(addrLines) == 2 {
		address.StreetAddress = addrLines[0]
	}

	if len(lines) == 4 {
		phone, ok := strings.CutPrefix(lines[3], phonePrefix)
		if !ok {
			return nil, types.Mismatch(fmt.Sprintf("a line starting with %q", phonePrefix), fmt.Sprintf("%q", lines[3]), parser.Snippet(p))
		}
		address.Telephone = phone
	}

	return &types.Entry{
		Target: &types.Entity{
			Type:    "Hotel",
			Name:    name,
			Address: address,
		},
		Judgment: &types.Judgment{
			Tier: tier,
			Name: judgmentName,
		},
	}, nil
}
