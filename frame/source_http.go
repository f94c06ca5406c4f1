package frame

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultHTTPTimeout bounds a single frame fetch.
const DefaultHTTPTimeout = 30 * time.Second

// HTTPSource fetches frames over HTTP(S). One attempt per frame, no
// retry or backoff.
type HTTPSource struct {
	// BaseURL is prepended to frame paths, e.g. "https://cdn.example.com/".
	BaseURL string
	// Client is the HTTP client. Nil uses a default with DefaultHTTPTimeout.
	Client *http.Client
}

// NewHTTPSource creates an HTTP source for the given base URL.
func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/") + "/",
		Client:  &http.Client{Timeout: DefaultHTTPTimeout},
	}
}

// Open implements Source.
func (s *HTTPSource) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	u, err := url.JoinPath(s.BaseURL, path)
	if err != nil {
		return nil, fmt.Errorf("join frame url %q: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: unexpected status %d", u, resp.StatusCode)
	}
	return resp.Body, nil
}

// Kind implements Source.
func (s *HTTPSource) Kind() string { return "http" }
