package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// URLPrefix is the public path uploads are served under.
const URLPrefix = "/uploads/"

// ErrTooLarge marks uploads exceeding the configured size cap.
var ErrTooLarge = errors.New("file exceeds size limit")

// Stored describes a successfully written upload.
type Stored struct {
	Name string // generated file name
	Path string // filesystem path
	URL  string // public URL, URLPrefix + Name
}

// Local writes uploads to a directory served as static assets.
// Safe for concurrent use: generated names do not collide and each Save
// touches only its own file.
type Local struct {
	root     string
	maxBytes int64
}

// NewLocal creates a disk store rooted at dir with a size cap in megabytes.
func NewLocal(dir string, maxSizeMB int) *Local {
	if maxSizeMB <= 0 {
		maxSizeMB = 50
	}
	return &Local{root: dir, maxBytes: int64(maxSizeMB) * 1024 * 1024}
}

// Save writes r under the storage root and returns the stored file's public
// URL. originalName is used only to preserve the extension. On any failure the
// partially written file is removed, so no URL ever points at a partial file.
func (s *Local) Save(r io.Reader, originalName string) (Stored, error) {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return Stored{}, fmt.Errorf("create upload directory: %w", err)
	}

	name := FileName(originalName, time.Now())
	dst := filepath.Join(s.root, name)

	out, err := os.Create(dst)
	if err != nil {
		return Stored{}, fmt.Errorf("create upload file: %w", err)
	}

	written, err := io.Copy(out, &io.LimitedReader{R: r, N: s.maxBytes + 1})
	if err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return Stored{}, fmt.Errorf("write upload file: %w", err)
	}
	if written > s.maxBytes {
		_ = out.Close()
		_ = os.Remove(dst)
		return Stored{}, ErrTooLarge
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return Stored{}, fmt.Errorf("close upload file: %w", err)
	}

	return Stored{Name: name, Path: dst, URL: URLPrefix + name}, nil
}

// Root returns the filesystem directory uploads live in.
func (s *Local) Root() string {
	return s.root
}

// MaxBytes returns the per-file size cap.
func (s *Local) MaxBytes() int64 {
	return s.maxBytes
}
