package errors

import (
	"errors"
	"fmt"
)

// Common error types for the repo enabler
var (
	// Startup errors. Fatal: the process refuses to start.
	ErrConfiguration = errors.New("invalid configuration")

	// Authorization-code flow errors
	ErrInvalidCode      = errors.New("invalid authorization code")
	ErrNetworkFailure   = errors.New("provider network failure")
	ErrInvalidState     = errors.New("invalid oauth state")
	ErrMissingParameter = errors.New("missing request parameter")

	// Session errors
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionDecode    = errors.New("session cookie could not be verified")

	// Provider API errors
	ErrProvider = errors.New("provider request failed")
)

// AuthErrorKind classifies a failed call to the provider.
type AuthErrorKind int

const (
	InvalidCode AuthErrorKind = iota
	NetworkFailure
)

func (k AuthErrorKind) String() string {
	switch k {
	case InvalidCode:
		return "InvalidCode"
	case NetworkFailure:
		return "NetworkFailure"
	default:
		return fmt.Sprintf("AuthErrorKind(%d)", int(k))
	}
}

// AuthError is returned by the code exchange and the repository listing.
// Both kinds are terminal for the request; the user restarts the flow.
type AuthError struct {
	Kind AuthErrorKind
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return "auth error: " + e.Kind.String()
	}
	return fmt.Sprintf("auth error: %s: %v", e.Kind, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match an AuthError against the sentinel for its kind.
func (e *AuthError) Is(target error) bool {
	switch e.Kind {
	case InvalidCode:
		return target == ErrInvalidCode
	case NetworkFailure:
		return target == ErrNetworkFailure
	}
	return false
}

// NewAuthError builds an AuthError of the given kind
func NewAuthError(kind AuthErrorKind, err error) *AuthError {
	return &AuthError{Kind: kind, Err: err}
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
