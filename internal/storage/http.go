package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPStore talks to a supabase-storage-compatible REST backend:
// POST {base}/storage/v1/object/{bucket}/{key} uploads, and
// {base}/storage/v1/object/public/{bucket}/{key} is the public URL.
type HTTPStore struct {
	BaseURL string
	Bucket  string
	APIKey  string
	Client  *http.Client
}

// NewHTTPStore creates an HTTPStore for the given endpoint and bucket.
func NewHTTPStore(baseURL, bucket, apiKey string) *HTTPStore {
	return &HTTPStore{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Bucket:  bucket,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Put uploads content. The backend rejects existing keys with 409 because
// upsert is never requested.
func (s *HTTPStore) Put(ctx context.Context, key string, content []byte, contentType string) (string, error) {
	if err := validKey(key); err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.BaseURL, s.Bucket, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("storage: build upload request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if s.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.APIKey)
	}
	// upsert stays off so concurrent writers cannot clobber each other
	req.Header.Set("x-upsert", "false")

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage: upload %q: %w", key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		return "", fmt.Errorf("storage: object %q already exists", key)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("storage: upload %q failed with status %d: %s", key, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return s.PublicURL(key), nil
}

// PublicURL returns the deterministic public URL for a key.
func (s *HTTPStore) PublicURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.BaseURL, s.Bucket, key)
}
