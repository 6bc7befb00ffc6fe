package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	// httpTimeout bounds a single remote document fetch.
	httpTimeout = 30 * time.Second

	// maxDocumentSize caps how much of a remote response is read.
	// Catalog documents are small; anything near this limit is garbage.
	maxDocumentSize = 32 << 20 // 32 MiB
)

// Source fetches the raw catalog document from wherever it lives.
type Source interface {
	// Fetch returns the raw document bytes.
	Fetch(ctx context.Context) ([]byte, error)
	// Describe returns a human-readable identifier for logs and errors.
	Describe() string
}

// NewSource selects a source for the configured location: an http(s) URL
// is remote, anything else is a local file path.
func NewSource(location string) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPSource(location)
	}
	return &FileSource{Path: location}
}

// FileSource reads the catalog document from a local file.
type FileSource struct {
	Path string
}

// Fetch implements Source.
func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return data, nil
}

// Describe implements Source.
func (s *FileSource) Describe() string {
	return s.Path
}

// HTTPSource fetches the catalog document from a remote URL.
type HTTPSource struct {
	URL    string
	client *http.Client
}

// NewHTTPSource creates an HTTP source with a bounded client.
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		URL: url,
		client: &http.Client{
			Timeout: httpTimeout,
		},
	}
}

// Fetch implements Source. A non-2xx status is a load failure.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch catalog: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("read catalog response: %w", err)
	}
	return data, nil
}

// Describe implements Source.
func (s *HTTPSource) Describe() string {
	return s.URL
}
