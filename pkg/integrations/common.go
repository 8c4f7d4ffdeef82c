package integrations

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	verrors "github.com/matzehuels/vehiclelookup/pkg/errors"
)

// DefaultTimeout bounds a single upstream request when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// RequestIDHeader carries the per-request correlation ID sent upstream.
const RequestIDHeader = "X-Request-ID"

var (
	// ErrNotFound is matched by an [HTTPError] with status 404.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for transport failures (timeouts, connection errors).
	ErrNetwork = errors.New("network error")
)

// JSONHeaders returns the default headers for a JSON API.
// A fresh map is returned on each call.
func JSONHeaders() map[string]string {
	return map[string]string{
		"Accept":       "application/json",
		"Content-Type": "application/json",
	}
}

// HTTPError describes a response with a non-2xx status code.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	RequestID  string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: status %d (request %s)", e.Method, e.URL, e.StatusCode, e.RequestID)
}

// Is makes errors.Is(err, ErrNotFound) hold for 404 responses.
func (e *HTTPError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Code maps the status to a [verrors.Code].
func (e *HTTPError) Code() verrors.Code {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return verrors.ErrCodeNotFound
	case e.StatusCode == http.StatusTooManyRequests:
		return verrors.ErrCodeRateLimited
	case e.StatusCode == http.StatusGatewayTimeout, e.StatusCode == http.StatusRequestTimeout:
		return verrors.ErrCodeTimeout
	default:
		return verrors.ErrCodeNetwork
	}
}

// NewHTTPClient creates an HTTP client with the given timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
