// Package pbg provides a public API for running the guide converters as a library.
//
// Example usage:
//
//	conv := pbg.New(
//	    pbg.WithFormat("json"),
//	    pbg.WithSimilarNameThreshold(0.95),
//	)
//
//	doc, err := conv.Convert(ctx, "hrc", "hrc.html", "hrc-pages/clothing.html")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(doc)
package pbg

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/IshaanNene/pbg/internal/config"
	"github.com/IshaanNene/pbg/internal/engine"
)

// Guides lists the guide names Convert accepts.
var Guides = engine.Guides

// Converter is the high-level API for converting saved guide pages.
type Converter struct {
	cfg    *config.Config
	logger *slog.Logger
}

// Option configures a Converter.
type Option func(*config.Config)

// WithFormat sets the output format: json, microdata, or table.
func WithFormat(format string) Option {
	return func(c *config.Config) { c.Output.Format = format }
}

// WithIndent sets the JSON indent width.
func WithIndent(n int) Option {
	return func(c *config.Config) { c.Output.Indent = n }
}

// WithSimilarNameThreshold sets the score at which near-duplicate entity
// names are logged. 0 disables the check.
func WithSimilarNameThreshold(t float64) Option {
	return func(c *config.Config) { c.Merge.SimilarNameThreshold = t }
}

// WithEggsMinRows sets the scorecard row threshold.
func WithEggsMinRows(n int) Option {
	return func(c *config.Config) { c.Guides.Eggs.MinRows = n }
}

// WithVerbose enables debug logging.
func WithVerbose() Option {
	return func(c *config.Config) { c.Logging.Level = "debug" }
}

// New creates a Converter with the given options.
func New(opts ...Option) *Converter {
	cfg := config.DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	level := slog.LevelInfo
	if cfg.Logging.Level == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return &Converter{
		cfg:    cfg,
		logger: logger,
	}
}

// Convert runs the named guide over the saved pages and returns the rendered document.
func (c *Converter) Convert(ctx context.Context, guide string, sources ...string) ([]byte, error) {
	cfg := *c.cfg
	cfg.Storage.Type = "stdout"
	if err := config.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	eng, err := engine.New(&cfg, c.logger)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	eng.SetStdout(&buf)

	if _, err := eng.Run(ctx, guide, sources); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
