package observability

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// Metrics tracks counters for one conversion run.
type Metrics struct {
	PagesRead     atomic.Int64
	BytesRead     atomic.Int64
	RowsExtracted atomic.Int64
	RowsSkipped   atomic.Int64
	EntriesMerged atomic.Int64
	MergeFolds    atomic.Int64
	SimilarNames  atomic.Int64
	BytesWritten  atomic.Int64

	start  time.Time
	logger *slog.Logger
}

// NewMetrics creates a new metrics collector.
func NewMetrics(logger *slog.Logger) *Metrics {
	return &Metrics{
		start:  time.Now(),
		logger: logger.With("component", "metrics"),
	}
}

// Snapshot returns the current metric values as a map.
func (m *Metrics) Snapshot() map[string]any {
	return map[string]any{
		"pages_read":     m.PagesRead.Load(),
		"bytes_read":     m.BytesRead.Load(),
		"rows_extracted": m.RowsExtracted.Load(),
		"rows_skipped":   m.RowsSkipped.Load(),
		"entries_merged": m.EntriesMerged.Load(),
		"merge_folds":    m.MergeFolds.Load(),
		"similar_names":  m.SimilarNames.Load(),
		"bytes_written":  m.BytesWritten.Load(),
		"elapsed":        time.Since(m.start).Round(time.Millisecond).String(),
	}
}

// Log writes the snapshot at info level.
func (m *Metrics) Log(msg string) {
	snap := m.Snapshot()
	args := make([]any, 0, len(snap)*2)
	for _, k := range []string{
		"pages_read", "bytes_read", "rows_extracted", "rows_skipped",
		"entries_merged", "merge_folds", "similar_names", "bytes_written", "elapsed",
	} {
		args = append(args, k, snap[k])
	}
	m.logger.Info(msg, args...)
}
