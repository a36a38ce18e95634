package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/IshaanNene/pbg/internal/config"
)

// Document is one rendered guide, ready to be written.
type Document struct {
	// Guide is the guide name. Database backends key documents by it.
	Guide string

	// Format is the render format the body is in.
	Format string

	Body []byte
}

// Storage is the interface for all output backends.
type Storage interface {
	// Store writes the whole document. A failed Store leaves no partial output.
	Store(ctx context.Context, doc *Document) error

	// Close releases resources.
	Close() error

	// Name returns the storage backend identifier.
	Name() string
}

// New returns the backend selected by cfg. stdout is used by the "stdout" backend.
func New(ctx context.Context, cfg config.StorageConfig, stdout io.Writer, logger *slog.Logger) (Storage, error) {
	switch cfg.Type {
	case "stdout", "":
		return NewStdoutStorage(stdout, logger), nil
	case "file":
		return NewFileStorage(cfg.OutputPath, logger)
	case "mongodb":
		return NewMongoStorage(ctx, cfg.MongoURI, cfg.Database, cfg.Collection, logger)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}
