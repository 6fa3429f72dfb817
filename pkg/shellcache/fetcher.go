package shellcache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPFetcher retrieves shell assets from the application origin.
type HTTPFetcher struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPFetcher creates a fetcher rooted at the given origin (scheme+host,
// no /api suffix — shell assets live beside the API, not under it).
func NewHTTPFetcher(origin string) (*HTTPFetcher, error) {
	base, err := url.Parse(strings.TrimSuffix(origin, "/"))
	if err != nil {
		return nil, fmt.Errorf("shellcache: parse origin: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("shellcache: origin %q needs scheme and host", origin)
	}
	return &HTTPFetcher{
		base:   base,
		client: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Fetch downloads one asset. Relative URLs resolve against the origin.
func (f *HTTPFetcher) Fetch(ctx context.Context, asset string) ([]byte, error) {
	ref, err := url.Parse(asset)
	if err != nil {
		return nil, fmt.Errorf("parse asset url %q: %w", asset, err)
	}
	u := f.base.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
