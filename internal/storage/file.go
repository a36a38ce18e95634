package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/IshaanNene/pbg/internal/types"
)

// --- Stdout Storage ---

// StdoutStorage writes the document to a stream, normally standard output.
type StdoutStorage struct {
	w      io.Writer
	logger *slog.Logger
}

// NewStdoutStorage creates a stream storage.
func NewStdoutStorage(w io.Writer, logger *slog.Logger) *StdoutStorage {
	return &StdoutStorage{
		w:      w,
		logger: logger.With("component", "stdout_storage"),
	}
}

func (s *StdoutStorage) Name() string { return "stdout" }

func (s *StdoutStorage) Store(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.w.Write(doc.Body); err != nil {
		return &types.StorageError{Backend: s.Name(), Err: err}
	}
	s.logger.Debug("document written", "guide", doc.Guide, "bytes", len(doc.Body))
	return nil
}

func (s *StdoutStorage) Close() error { return nil }

// --- File Storage ---

// FileStorage writes the document to a file. The file is replaced in one
// rename, so readers never see a half-written document.
type FileStorage struct {
	path   string
	logger *slog.Logger
}

// NewFileStorage creates a file storage, creating the output directory.
func NewFileStorage(outputPath string, logger *slog.Logger) (*FileStorage, error) {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &types.StorageError{Backend: "file", Err: fmt.Errorf("create output dir: %w", err)}
	}

	return &FileStorage{
		path:   outputPath,
		logger: logger.With("component", "file_storage"),
	}, nil
}

func (s *FileStorage) Name() string { return "file" }

func (s *FileStorage) Store(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.write(doc.Body); err != nil {
		return &types.StorageError{Backend: s.Name(), Err: err}
	}
	s.logger.Info("document written", "path", s.path, "guide", doc.Guide, "bytes", len(doc.Body))
	return nil
}

func (s *FileStorage) write(body []byte) error {
	f, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()

	if _, err := f.Write(body); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write output: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("chmod output: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}

func (s *FileStorage) Close() error { return nil }
