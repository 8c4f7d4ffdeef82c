package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	verrors "github.com/matzehuels/vehiclelookup/pkg/errors"
	"github.com/matzehuels/vehiclelookup/pkg/observability"
)

// Client provides shared HTTP functionality for JSON API clients.
// It holds a fixed base URL and default headers applied to every request.
//
// A Client is immutable after construction and safe for concurrent use.
type Client struct {
	http    *http.Client
	baseURL string
	headers map[string]string
}

// NewClient creates a Client for baseURL with the given request timeout and
// default headers. A timeout of 0 disables the client-side timeout; callers
// can still bound requests through the context.
// Pass nil for headers if no default headers are needed.
func NewClient(baseURL string, timeout time.Duration, headers map[string]string) *Client {
	return &Client{
		http:    NewHTTPClient(timeout),
		baseURL: strings.TrimSuffix(baseURL, "/"),
		headers: headers,
	}
}

// BaseURL returns the endpoint prefix every request path is appended to.
func (c *Client) BaseURL() string { return c.baseURL }

// Get performs GET baseURL+path with query URL-encoded and JSON-decodes the
// response body into v.
//
// Errors:
//   - *errors.Error with ErrCodeNetwork or ErrCodeTimeout wrapping [ErrNetwork]
//     when the request could not complete
//   - *[HTTPError] for non-2xx responses (404 also matches [ErrNotFound])
//   - *errors.Error with ErrCodeInvalidResponse when the body is not valid JSON
func (c *Client) Get(ctx context.Context, path string, query url.Values, v any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return verrors.Wrap(verrors.ErrCodeInternal, err, "build request %s", path)
	}
	for k, val := range c.headers {
		req.Header.Set(k, val)
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	hooks := observability.HTTP()
	host := req.URL.Host
	hooks.OnRequest(ctx, http.MethodGet, host, path)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, http.MethodGet, host, path, err)
		return transportError(ctx, err, path)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, http.MethodGet, host, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{
			Method:     http.MethodGet,
			URL:        target,
			StatusCode: resp.StatusCode,
			RequestID:  requestID,
		}
	}

	// An empty body leaves v untouched, like a body without the expected fields.
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return verrors.Wrap(verrors.ErrCodeInvalidResponse, err, "decode %s (request %s)", path, requestID)
	}
	return nil
}

func transportError(ctx context.Context, err error, path string) error {
	cause := fmt.Errorf("%w: %w", ErrNetwork, err)
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || isTimeout(err) {
		return verrors.Wrap(verrors.ErrCodeTimeout, cause, "GET %s", path)
	}
	return verrors.Wrap(verrors.ErrCodeNetwork, cause, "GET %s", path)
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
