package catalog

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrCatalog matches every error returned by Fetcher.Fetch via errors.Is.
var ErrCatalog = errors.New("catalog error")

// Kind classifies a catalog failure.
type Kind string

const (
	KindTransport  Kind = "transport"
	KindHTTPStatus Kind = "http_status"
	KindMalformed  Kind = "malformed_response"
)

// TransportError reports a network-level failure: DNS, refused connection,
// timeout or cancellation.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
func (e *TransportError) Is(target error) bool { return target == ErrCatalog }
func (e *TransportError) Kind() Kind { return KindTransport }

// HTTPStatusError reports a response with a status code outside 2xx.
type HTTPStatusError struct {
	URL        string
	StatusCode int
	// Body holds at most maxErrorBody bytes of the response.
	Body string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("fetching %s: HTTP %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *HTTPStatusError) Is(target error) bool { return target == ErrCatalog }
func (e *HTTPStatusError) Kind() Kind { return KindHTTPStatus }

// MalformedResponseError reports a body that is not a JSON array of objects.
type MalformedResponseError struct {
	URL string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("parsing response from %s: %v", e.URL, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
func (e *MalformedResponseError) Is(target error) bool { return target == ErrCatalog }
func (e *MalformedResponseError) Kind() Kind { return KindMalformed }

// KindOf returns the Kind of a catalog error, or "" for any other error.
func KindOf(err error) Kind {
	var k interface{ Kind() Kind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return ""
}
