// Package hrc converts the Human Rights Campaign Buyer's Guide: one about
// page plus any number of category pages.
package hrc

import (
	"context"
	"log/slog"
	"strings"

	"github.com/IshaanNene/pbg/internal/config"
	"github.com/IshaanNene/pbg/internal/merge"
	"github.com/IshaanNene/pbg/internal/observability"
	"github.com/IshaanNene/pbg/internal/types"
)

const (
	// GuideName is the campaign name of the guide.
	GuideName = "Buyer's Guide"

	caveatNoSurvey = "did not respond to survey"
)

// Author is the organization that publishes the guide.
var Author = types.Organization{Type: "NGO", Name: "Human Rights Campaign"}

// ratingColors is checked in order against the rating image src.
var ratingColors = []struct {
	color string
	tier  types.Tier
}{
	{"green", types.TierGood},
	{"yellow", types.TierMixed},
	{"red", types.TierBad},
}

// RatingTier maps a rating image src to a judgment tier.
func RatingTier(src string) (types.Tier, error) {
	for _, rc := range ratingColors {
		if strings.Contains(src, rc.color) {
			return rc.tier, nil
		}
	}
	return "", &types.UnknownValueError{Table: "rating color", Value: src}
}

// Converter implements guides.Converter for the Buyer's Guide.
type Converter struct {
	minEntries int
	merger     *merge.Merger
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// New creates a Converter. metrics may be nil.
func New(cfg config.HRCConfig, merger *merge.Merger, metrics *observability.Metrics, logger *slog.Logger) *Converter {
	return &Converter{
		minEntries: cfg.MinEntries,
		merger:     merger,
		metrics:    metrics,
		logger:     logger.With("component", "hrc"),
	}
}

// Name returns "hrc".
func (c *Converter) Name() string { return "hrc" }

// Convert classifies every page, takes the description from the single about
// page, and merges the category rows by company name.
func (c *Converter) Convert(ctx context.Context, pages []*types.Page) (*types.Guide, error) {
	if len(pages) == 0 {
		return nil, types.ErrNoInput
	}

	var (
		description    string
		hasDescription bool
		entries        []*types.Entry
	)

	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		classified, err := Classify(page)
		if err != nil {
			return nil, &types.ParseError{Source: page.Source, Selector: "#content div", Err: err}
		}

		switch classified.Kind {
		case PageAbout:
			if hasDescription {
				return nil, &types.ParseError{
					Source: page.Source,
					Err:    types.Mismatch("exactly one about page", "a second about page", ""),
				}
			}
			description, err = parseAbout(classified.Content)
			if err != nil {
				return nil, &types.ParseError{Source: page.Source, Err: err}
			}
			hasDescription = true
			c.logger.Debug("about page parsed", "source", page.Source, "length", len(description))

		case PageCategory:
			rows, err := parseCategory(classified.Content)
			if err != nil {
				return nil, &types.ParseError{Source: page.Source, Err: err}
			}
			entries = append(entries, rows...)
			if c.metrics != nil {
				c.metrics.RowsExtracted.Add(int64(len(rows)))
			}
			c.logger.Debug("category page parsed", "source", page.Source, "rows", len(rows))
		}
	}

	if !hasDescription {
		return nil, types.Mismatch("an about page among the inputs", nil, "")
	}

	merged, err := c.merger.Merge(entries)
	if err != nil {
		return nil, err
	}
	if len(merged) < c.minEntries {
		return nil, &types.EmptyResultError{Guide: c.Name(), Got: len(merged), Min: c.minEntries}
	}

	author := Author
	return &types.Guide{
		Name:        GuideName,
		Author:      &author,
		Description: description,
		Entries:     merged,
	}, nil
}
