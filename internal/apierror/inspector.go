package apierror

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	ladderrors "github.com/riftstat/ladder-export/internal/errors"
)

// StatusCoder is implemented by errors that carry the HTTP status of the
// response that produced them.
type StatusCoder interface {
	StatusCode() int
}

// Inspector provides methods for analyzing ladder API errors.
type Inspector interface {
	// IsAuthError returns true if the API rejected the credential.
	IsAuthError(err error) bool

	// IsNotFoundError returns true if the requested resource does not exist.
	IsNotFoundError(err error) bool

	// IsRateLimitError returns true if the API throttled the request.
	IsRateLimitError(err error) bool

	// IsNetworkError returns true if the request never got a response.
	IsNetworkError(err error) bool
}

// TextInspector classifies errors by their message only.
type TextInspector struct{}

// NewInspector returns the default inspector: error chain first, message text second.
func NewInspector() Inspector {
	return NewErrorChainInspector(&TextInspector{})
}

// IsAuthError checks if the error is an authentication or authorization error.
func (i *TextInspector) IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "401") ||
		strings.Contains(errStr, "403") ||
		strings.Contains(errStr, "unauthorized") ||
		strings.Contains(errStr, "forbidden") ||
		strings.Contains(errStr, "unknown apikey")
}

// IsNotFoundError checks if the error is a not found error.
func (i *TextInspector) IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "404") ||
		strings.Contains(errStr, "not found")
}

// IsRateLimitError checks if the error is a rate limit error.
func (i *TextInspector) IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "429")
}

// IsNetworkError checks if the error is a network connectivity error.
func (i *TextInspector) IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "dial tcp") ||
		strings.Contains(errStr, "tls handshake") ||
		strings.Contains(errStr, "network is unreachable")
}

// ErrorChainInspector checks typed errors in the chain before falling back
// to its base inspector.
type ErrorChainInspector struct {
	base Inspector
}

// NewErrorChainInspector wraps base with error chain inspection.
func NewErrorChainInspector(base Inspector) Inspector {
	return &ErrorChainInspector{base: base}
}

func statusOf(err error) (int, bool) {
	var sc StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode(), true
	}
	return 0, false
}

// IsAuthError checks the error chain first, then falls back to base inspector.
func (e *ErrorChainInspector) IsAuthError(err error) bool {
	if code, ok := statusOf(err); ok {
		return code == http.StatusUnauthorized || code == http.StatusForbidden
	}
	return e.base.IsAuthError(err)
}

// IsNotFoundError checks the error chain first, then falls back to base inspector.
func (e *ErrorChainInspector) IsNotFoundError(err error) bool {
	if code, ok := statusOf(err); ok {
		return code == http.StatusNotFound
	}
	return e.base.IsNotFoundError(err)
}

// IsRateLimitError checks the error chain first, then falls back to base inspector.
func (e *ErrorChainInspector) IsRateLimitError(err error) bool {
	if errors.Is(err, ladderrors.ErrRateLimit) {
		return true
	}
	if code, ok := statusOf(err); ok {
		return code == http.StatusTooManyRequests
	}
	return e.base.IsRateLimitError(err)
}

// IsNetworkError checks the error chain first, then falls back to base inspector.
// Cancellation by the caller is never a network error.
func (e *ErrorChainInspector) IsNetworkError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if _, ok := statusOf(err); ok {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return e.base.IsNetworkError(err)
}

// Hint returns a short suggestion for the operator, or "" when the error
// has no obvious remedy.
func Hint(i Inspector, err error) string {
	switch {
	case i.IsAuthError(err):
		return "The API rejected the key. Check api_key.txt, --api-key or RIOT_API_KEY"
	case i.IsRateLimitError(err):
		return "Rate limit exceeded. Lower rate_limit.requests_per_second or enable retries"
	case i.IsNotFoundError(err):
		return "The requested ladder does not exist for this region"
	case i.IsNetworkError(err):
		return "Network connection failed. Please check your internet connection and try again"
	}
	return ""
}
