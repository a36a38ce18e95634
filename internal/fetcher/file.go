package fetcher

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"

	"github.com/IshaanNene/pbg/internal/types"
)

// StdinSource names standard input as a page source.
const StdinSource = "-"

// FileFetcher reads saved pages from local files or standard input.
type FileFetcher struct {
	stdin       io.Reader
	maxBodySize int64
	logger      *slog.Logger
}

// NewFileFetcher creates a fetcher reading from the filesystem, with stdin for "-".
func NewFileFetcher(stdin io.Reader, logger *slog.Logger) *FileFetcher {
	return &FileFetcher{
		stdin:       stdin,
		maxBodySize: 64 * 1024 * 1024,
		logger:      logger.With("component", "file_fetcher"),
	}
}

func (f *FileFetcher) Type() string { return "file" }

// Fetch implements Fetcher. The file is closed before Fetch returns.
func (f *FileFetcher) Fetch(ctx context.Context, source string) (*types.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		body []byte
		err  error
	)
	if source == StdinSource {
		body, err = f.read(bufio.NewReader(f.stdin), source)
	} else {
		body, err = f.readFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}

	f.logger.Debug("page loaded", "source", source, "bytes", len(body))
	return types.NewPage(source, body), nil
}

func (f *FileFetcher) readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return f.read(bufio.NewReader(file), path)
}

// read decodes the stream and enforces the size limit.
func (f *FileFetcher) read(r *bufio.Reader, source string) ([]byte, error) {
	reader, err := decompressReader(r, source)
	if err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(reader, f.maxBodySize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > f.maxBodySize {
		return nil, fmt.Errorf("body exceeds %d bytes", f.maxBodySize)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	return body, nil
}

// decompressReader wraps a reader with the appropriate decompressor.
// Brotli has no magic number, so it is recognized by extension only;
// gzip is also recognized by its header.
func decompressReader(r *bufio.Reader, source string) (io.Reader, error) {
	switch strings.ToLower(filepath.Ext(source)) {
	case ".br":
		return brotli.NewReader(r), nil
	case ".gz":
		return gzip.NewReader(r)
	}

	magic, err := r.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		return gzip.NewReader(r)
	}
	return r, nil
}
