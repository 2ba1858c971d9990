// Package static reads snapshot documents from a web server or a directory.
package static

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dom/alliance-dashboard/internal/domain"
	"github.com/pkg/errors"
)

// maxDocumentSize bounds a single snapshot document.
const maxDocumentSize = 64 << 20

// HTTPSource fetches documents relative to a base URL, defeating caches.
type HTTPSource struct {
	baseURL    *url.URL
	httpClient *http.Client
	now        func() time.Time
}

func NewHTTPSource(baseURL string, timeout time.Duration) (*HTTPSource, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, errors.Wrap(err, "invalid data base url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("invalid data base url %q: scheme must be http or https", baseURL)
	}
	return &HTTPSource{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}, nil
}

// WithClock replaces the clock used for the cache-busting parameter.
func (s *HTTPSource) WithClock(now func() time.Time) *HTTPSource {
	s.now = now
	return s
}

// URL returns the address a document is fetched from.
func (s *HTTPSource) URL(name string) string {
	u := s.baseURL.ResolveReference(&url.URL{Path: strings.TrimLeft(name, "/")})
	q := u.Query()
	q.Set("v", strconv.FormatInt(s.now().UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String()
}

func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	target := s.URL(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.Wrapf(domain.ErrSourceUnavailable, "%s: %v", name, err)
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(domain.ErrSourceUnavailable, "%s: %v", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Wrapf(domain.ErrSourceUnavailable, "%s -> HTTP %d", name, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, errors.Wrapf(domain.ErrSourceUnavailable, "%s: read body: %v", name, err)
	}
	return body, nil
}
