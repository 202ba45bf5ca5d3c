// Package storage provides the object storage client used for request
// attachments. Keys are caller-generated and never overwritten; public URLs
// are deterministic functions of the key.
package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store uploads opaque blobs and resolves their public URLs.
type Store interface {
	// Put uploads content under key and returns the public URL. It fails if
	// an object already exists at key; collision avoidance is on the caller
	// via ObjectKey.
	Put(ctx context.Context, key string, content []byte, contentType string) (string, error)
	// PublicURL returns the deterministic public URL for a key without
	// touching the backend.
	PublicURL(key string) string
}

// ObjectKey derives a collision-free object key for an upload, namespaced
// under the owning user: <ownerID>/<unix-millis>-<random>.<ext>.
func ObjectKey(ownerID uint, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%d/%d-%s%s", ownerID, time.Now().UnixMilli(), suffix, ext)
}

// validKey rejects traversal and absolute keys before they reach a backend.
func validKey(key string) error {
	if key == "" {
		return fmt.Errorf("storage: empty key")
	}
	if strings.HasPrefix(key, "/") || strings.Contains(key, "..") {
		return fmt.Errorf("storage: invalid key %q", key)
	}
	return nil
}
