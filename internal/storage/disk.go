package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore is a filesystem-backed Store. Objects are written under Dir and
// served as static files at BaseURL; used in development and tests.
type DiskStore struct {
	Dir     string
	BaseURL string
}

// NewDiskStore creates a DiskStore rooted at dir.
func NewDiskStore(dir, baseURL string) *DiskStore {
	return &DiskStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

// Put writes content to disk. O_EXCL guarantees an existing object is never
// overwritten.
func (s *DiskStore) Put(ctx context.Context, key string, content []byte, contentType string) (string, error) {
	if err := validKey(key); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("storage: create directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return "", fmt.Errorf("storage: object %q already exists", key)
		}
		return "", fmt.Errorf("storage: open object: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(content); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("storage: write object: %w", err)
	}

	return s.PublicURL(key), nil
}

// PublicURL returns the static-file URL for a key.
func (s *DiskStore) PublicURL(key string) string {
	return s.BaseURL + "/" + key
}
