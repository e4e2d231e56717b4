// internal/app/system/blobrelay/blobrelay.go
//
// Package blobrelay accepts uploaded blobs (candidate photos, resumes)
// and returns stable reference URLs. The core stores only the returned
// string; the bytes never pass through the domain logic.
package blobrelay

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Relay stores a blob and returns a stable URL for it.
type Relay interface {
	Put(ctx context.Context, filename, contentType string, r io.Reader) (url string, err error)
}

// Local writes blobs to a directory on disk and serves them under a
// URL prefix. Keys are uuids so uploads can never collide or overwrite.
type Local struct {
	dir       string
	urlPrefix string
}

// NewLocal creates the storage directory if needed.
func NewLocal(dir, urlPrefix string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{dir: dir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

// Put streams the blob to disk under a fresh uuid key, keeping the
// original extension so content can be served with a sensible type.
func (l *Local) Put(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := uuid.NewString()
	if ext := filepath.Ext(filename); ext != "" && len(ext) <= 8 {
		key += strings.ToLower(ext)
	}

	path := filepath.Join(l.dir, key)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create blob file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write blob: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close blob: %w", err)
	}

	return l.urlPrefix + "/" + key, nil
}
