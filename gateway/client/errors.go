package client

import (
	"fmt"
	"time"
)

// The client maps every failure to exactly one of four kinds:
// AuthenticationError, InvalidRequestError, RateLimitError, NetworkError.
// Callers branch with errors.As; nothing is ever downgraded or swallowed.
// The caller's own context is the one exception: cancellation and deadline
// errors stay reachable through errors.Is(err, context.Canceled) wherever
// the call was interrupted.

// AuthenticationError covers rejected credentials and tokens the gateway
// no longer accepts after the single re-login attempt.
type AuthenticationError struct {
	StatusCode int
	ErrorCode  int
	Message    string
}

func (e *AuthenticationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gateway: authentication failed (HTTP %d)", e.StatusCode)
	}
	return fmt.Sprintf("gateway: authentication failed: %s", e.Message)
}

// InvalidRequestError covers malformed parameters, gateway rejections
// (success=false) and any other non-auth, non-limit 4xx, including
// responses whose body cannot be decoded.
type InvalidRequestError struct {
	StatusCode int
	ErrorCode  int
	Message    string
}

func (e *InvalidRequestError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gateway: request rejected (HTTP %d, code %d)", e.StatusCode, e.ErrorCode)
	}
	return fmt.Sprintf("gateway: request rejected: %s", e.Message)
}

// RateLimitError signals gateway throttling (HTTP 429).
type RateLimitError struct {
	RetryAfter time.Duration // zero when the gateway gave no hint
	Message    string
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("gateway: rate limited, retry after %s", e.RetryAfter)
	}
	return "gateway: rate limited"
}

// NetworkError covers transport failures (timeout, DNS, reset) and
// gateway-side 5xx responses. StatusCode is zero for pure transport
// failures.
type NetworkError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gateway: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("gateway: %s failed (HTTP %d)", e.Op, e.StatusCode)
}

func (e *NetworkError) Unwrap() error { return e.Err }
