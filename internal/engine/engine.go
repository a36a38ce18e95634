// Package engine runs one conversion: read every page, convert, normalize,
// render, and store. The first failure aborts the run before anything is written.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/IshaanNene/pbg/internal/config"
	"github.com/IshaanNene/pbg/internal/fetcher"
	"github.com/IshaanNene/pbg/internal/guides"
	"github.com/IshaanNene/pbg/internal/guides/eggs"
	"github.com/IshaanNene/pbg/internal/guides/hotels"
	"github.com/IshaanNene/pbg/internal/guides/hrc"
	"github.com/IshaanNene/pbg/internal/merge"
	"github.com/IshaanNene/pbg/internal/observability"
	"github.com/IshaanNene/pbg/internal/pipeline"
	"github.com/IshaanNene/pbg/internal/render"
	"github.com/IshaanNene/pbg/internal/storage"
	"github.com/IshaanNene/pbg/internal/types"
)

// Guides lists the converter names Run accepts.
var Guides = []string{"hrc", "eggs", "hotels"}

// Engine is the run orchestrator.
type Engine struct {
	cfg        *config.Config
	base       *slog.Logger
	logger     *slog.Logger
	fetcher    fetcher.Fetcher
	normalizer *pipeline.Pipeline
	renderer   render.Renderer
	storage    storage.Storage
	stdout     io.Writer
	metrics    *observability.Metrics
}

// New creates an Engine reading pages from disk (stdin for "-") and writing
// to the configured storage.
func New(cfg *config.Config, logger *slog.Logger) (*Engine, error) {
	renderer, err := render.New(cfg.Output)
	if err != nil {
		return nil, err
	}

	return &Engine{
		cfg:        cfg,
		base:       logger,
		logger:     logger.With("component", "engine"),
		fetcher:    fetcher.NewFileFetcher(os.Stdin, logger),
		normalizer: pipeline.NewNormalizer(logger),
		renderer:   renderer,
		stdout:     os.Stdout,
		metrics:    observability.NewMetrics(logger),
	}, nil
}

// SetFetcher replaces the page fetcher.
func (e *Engine) SetFetcher(f fetcher.Fetcher) {
	e.fetcher = f
}

// SetStorage replaces the configured storage. The engine does not close it.
func (e *Engine) SetStorage(s storage.Storage) {
	e.storage = s
}

// SetStdout replaces the stream used by the stdout storage.
func (e *Engine) SetStdout(w io.Writer) {
	e.stdout = w
}

// Metrics returns the run counters.
func (e *Engine) Metrics() *observability.Metrics {
	return e.metrics
}

// Converter builds the named guide converter from the configuration.
func (e *Engine) Converter(name string) (guides.Converter, error) {
	switch name {
	case "hrc":
		merger := merge.New(e.cfg.Merge.SimilarNameThreshold, e.metrics, e.base)
		return hrc.New(e.cfg.Guides.HRC, merger, e.metrics, e.base), nil
	case "eggs":
		return eggs.New(e.cfg.Guides.Eggs, e.metrics, e.base), nil
	case "hotels":
		return hotels.New(e.cfg.Guides.Hotels, e.metrics, e.base), nil
	default:
		return nil, fmt.Errorf("unknown guide %q (want one of %v)", name, Guides)
	}
}

// Run converts the sources with the named guide converter and stores the
// rendered document. The normalized guide is returned.
func (e *Engine) Run(ctx context.Context, name string, sources []string) (*types.Guide, error) {
	conv, err := e.Converter(name)
	if err != nil {
		return nil, err
	}

	e.logger.Info("run starting", "guide", name, "sources", len(sources), "format", e.renderer.Format())

	pages, err := e.fetch(ctx, sources)
	if err != nil {
		return nil, err
	}

	guide, err := conv.Convert(ctx, pages)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", name, err)
	}

	if err := e.normalizer.Normalize(guide); err != nil {
		return nil, fmt.Errorf("normalize %s: %w", name, err)
	}

	body, err := render.Bytes(e.renderer, guide)
	if err != nil {
		return nil, err
	}

	if err := e.store(ctx, &storage.Document{Guide: guide.Name, Format: e.renderer.Format(), Body: body}); err != nil {
		return nil, err
	}
	e.metrics.BytesWritten.Add(int64(len(body)))

	e.metrics.Log("run complete")
	return guide, nil
}

// CategoryURLs lists the HRC category page paths found on the guide's main page.
func (e *Engine) CategoryURLs(ctx context.Context, source string) ([]string, error) {
	pages, err := e.fetch(ctx, []string{source})
	if err != nil {
		return nil, err
	}
	urls, err := hrc.CategoryURLs(pages[0], e.cfg.Guides.HRC.MinCategoryOptions)
	if err != nil {
		return nil, err
	}
	e.logger.Info("category urls listed", "source", source, "count", len(urls))
	return urls, nil
}

func (e *Engine) fetch(ctx context.Context, sources []string) ([]*types.Page, error) {
	pages, err := fetcher.FetchAll(ctx, e.fetcher, sources)
	if err != nil {
		return nil, err
	}
	for _, p := range pages {
		e.metrics.PagesRead.Add(1)
		e.metrics.BytesRead.Add(int64(len(p.Body)))
	}
	return pages, nil
}

// store opens the configured storage unless one was set, so that no
// connection is made for runs that fail earlier.
func (e *Engine) store(ctx context.Context, doc *storage.Document) error {
	if e.storage != nil {
		return e.storage.Store(ctx, doc)
	}

	s, err := storage.New(ctx, e.cfg.Storage, e.stdout, e.base)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			e.logger.Warn("storage close failed", "backend", s.Name(), "error", cerr)
		}
	}()

	return s.Store(ctx, doc)
}
