package staging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Handle identifies one staged blob. It is owned by the request that created
// it and must be released exactly once via defer, on every exit path.
type Handle struct {
	// Key locates the blob inside the staging backend: an absolute path for
	// the disk backend, an object key for MinIO.
	Key          string
	StoredName   string
	OriginalName string
	Size         int64
}

// Area stages uploaded blobs for the lifetime of a single request.
//
// Release is idempotent: releasing an already-released handle is a no-op.
// Stored names carry a nanosecond timestamp prefix, which makes collisions
// between concurrent requests statistically negligible, not impossible.
type Area interface {
	Stage(ctx context.Context, r io.Reader, originalName string) (*Handle, error)
	Open(ctx context.Context, h *Handle) (io.ReadCloser, error)
	Release(ctx context.Context, h *Handle) error
}

// storedName builds the unique name a staged blob is kept under.
func storedName(originalName string) string {
	base := filepath.Base(strings.TrimSpace(originalName))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "upload"
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixNano(), base)
}

// DiskArea stages blobs in a shared ephemeral directory on local disk.
type DiskArea struct {
	dir string
}

// NewDiskArea creates the staging directory if needed and returns the area.
func NewDiskArea(dir string) (*DiskArea, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory %s: %w", dir, err)
	}
	return &DiskArea{dir: dir}, nil
}

// Stage writes the upload stream to a uniquely named file.
func (a *DiskArea) Stage(_ context.Context, r io.Reader, originalName string) (*Handle, error) {
	name := storedName(originalName)
	path := filepath.Join(a.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create staging file: %w", err)
	}

	size, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write staging file: %w", err)
	}

	return &Handle{
		Key:          path,
		StoredName:   name,
		OriginalName: filepath.Base(originalName),
		Size:         size,
	}, nil
}

// Open returns a reader over the staged blob.
func (a *DiskArea) Open(_ context.Context, h *Handle) (io.ReadCloser, error) {
	f, err := os.Open(h.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to open staged file: %w", err)
	}
	return f, nil
}

// Release removes the staged file. Already-removed files are not an error.
func (a *DiskArea) Release(_ context.Context, h *Handle) error {
	if err := os.Remove(h.Key); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove staged file: %w", err)
	}
	return nil
}
