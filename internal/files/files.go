package files

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Store saves uploaded receipts and signatures to a local directory and
// hands back the URL path they are served from. Callers treat the URL
// as an opaque string; file contents are never interpreted.
type Store struct {
	dir        string
	publicPath string
	maxSize    int64
}

// NewStore creates the upload directory if needed.
func NewStore(dir, publicPath string, maxSizeMB int) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{
		dir:        dir,
		publicPath: strings.TrimSuffix(publicPath, "/"),
		maxSize:    int64(maxSizeMB) << 20,
	}, nil
}

// Dir returns the on-disk directory, for the router to serve statically.
func (s *Store) Dir() string { return s.dir }

// ErrTooLarge is returned when an upload exceeds the configured limit.
var ErrTooLarge = fmt.Errorf("file exceeds the upload size limit")

// Save writes an uploaded file under a timestamped name and returns its
// public URL path.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > s.maxSize {
		return "", ErrTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	// Timestamp prefix keeps names unique; the base name is kept for
	// readability but stripped of any path components.
	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(fh.Filename))
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return path.Join(s.publicPath, name), nil
}
