package translator

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

var (
	// ErrNotConfigured means a provider is selected but its credential is missing.
	ErrNotConfigured = errors.New("translation provider not configured")
	// ErrMalformedResponse means the provider answered with success but an unexpected payload.
	ErrMalformedResponse = errors.New("malformed translation response")
)

// ProviderError is a non-success HTTP response from a translation provider.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s translate API error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}

// NewProviderError builds a ProviderError, truncating the response body.
func NewProviderError(provider string, status int, body []byte) *ProviderError {
	return &ProviderError{Provider: provider, StatusCode: status, Body: Truncate(string(body), 500)}
}

// RateLimitError indicates a provider returned HTTP 429.
type RateLimitError struct {
	Err        error
	RetryAfter time.Duration
	Provider   string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited (retry after %s): %v", e.Provider, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError creates a RateLimitError. If retryAfterSecs is 0, defaults to 60s.
func NewRateLimitError(provider string, err error, retryAfterSecs int) *RateLimitError {
	if retryAfterSecs <= 0 {
		retryAfterSecs = 60
	}
	return &RateLimitError{
		Err:        err,
		RetryAfter: time.Duration(retryAfterSecs) * time.Second,
		Provider:   provider,
	}
}

// ParseRetryAfterHeader parses a Retry-After header value into seconds.
// Returns 0 if the value is empty or not a valid integer.
func ParseRetryAfterHeader(val string) int {
	if val == "" {
		return 0
	}
	secs, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return secs
}

// StatusError converts a non-success status into the matching error type.
func StatusError(provider string, status int, retryAfter string, body []byte) error {
	pErr := NewProviderError(provider, status, body)
	if status == http.StatusTooManyRequests {
		return NewRateLimitError(provider, pErr, ParseRetryAfterHeader(retryAfter))
	}
	return pErr
}

// Truncate shortens s to maxLen bytes, marking the cut.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
