// Package catalog fetches the store's product listing and normalizes it for
// the shopping agent.
package catalog

import (
	"context"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultURL is the product listing endpoint of the demo store.
	DefaultURL = "https://template6-six.vercel.app/api/products"

	DefaultTimeout = 15 * time.Second

	maxErrorBody = 512
)

// Fetcher retrieves the product catalog. It holds no state between calls.
type Fetcher struct {
	url    string
	client *http.Client
}

// NewFetcher creates a fetcher for url with a bounded request timeout.
// An empty url selects DefaultURL and a non-positive timeout DefaultTimeout.
func NewFetcher(url string, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return NewFetcherWithClient(url, &http.Client{Timeout: timeout})
}

// NewFetcherWithClient creates a fetcher that issues requests through client.
func NewFetcherWithClient(url string, client *http.Client) *Fetcher {
	if url == "" {
		url = DefaultURL
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &Fetcher{url: url, client: client}
}

// URL returns the endpoint the fetcher reads from.
func (f *Fetcher) URL() string {
	return f.url
}

// Fetch issues exactly one GET and returns one Product per upstream element,
// in upstream order. Failures are *TransportError, *HTTPStatusError or
// *MalformedResponseError.
func (f *Fetcher) Fetch(ctx context.Context) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, &TransportError{URL: f.url, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: f.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPStatusError{
			URL:        f.url,
			StatusCode: resp.StatusCode,
			Body:       string(excerpt),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: f.url, Err: err}
	}

	raws, err := Decode(body)
	if err != nil {
		return nil, &MalformedResponseError{URL: f.url, Err: err}
	}
	return NormalizeAll(raws), nil
}
