package arena

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure taxonomy. Carrier structs below add
// diagnostics while satisfying errors.Is against the matching sentinel.
var (
	// ErrUnauthorized reports a missing or invalid access token.
	ErrUnauthorized = errors.New("unauthorized: missing or invalid access token (create one at https://dev.are.na)")

	// ErrForbidden reports a resource that exists but is closed or private
	// to the caller.
	ErrForbidden = errors.New("forbidden: you do not have access to this resource")

	// ErrNotFound reports a resource that could not be resolved.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited reports a 429 from the backend.
	ErrRateLimited = errors.New("rate limited")
)

// ConfigurationError reports a precondition failure detected before any
// network call, e.g. an operation that requires a token issued without one.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s", e.Reason)
}

// Is lets missing-credential configuration failures satisfy
// errors.Is(err, ErrUnauthorized), since callers handle both identically.
func (e *ConfigurationError) Is(target error) bool { return target == ErrUnauthorized }

// NotFoundError carries which kind of resource and which identifier failed
// to resolve, so a typo'd channel slug reads differently from a typo'd
// block id.
type NotFoundError struct {
	Resource string // channel | block | user | search
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// RateLimitedError carries enough detail for the caller to retry manually.
type RateLimitedError struct {
	WaitSeconds int
	Tier        string
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited (tier %s): retry in %ds", e.Tier, e.WaitSeconds)
}

func (e *RateLimitedError) Is(target error) bool { return target == ErrRateLimited }

// ServerError reports any other non-2xx response, with a truncated body
// excerpt for diagnostics.
type ServerError struct {
	StatusCode int
	Body       string // truncated to 200 characters
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: status %d: %s", e.StatusCode, e.Body)
}
