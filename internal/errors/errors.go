package errors

import (
	"errors"
	"fmt"
)

// Common error types for the dashboard client
var (
	// Authentication errors
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Refresh errors
	ErrRefreshUnavailable = errors.New("no refresh token available")
	ErrRefreshRejected    = errors.New("refresh token rejected")

	// Authorization errors
	ErrForbidden = errors.New("forbidden")

	// Storage errors
	ErrCredentialsNotFound = errors.New("credentials not found")

	// General errors
	ErrTransport   = errors.New("transport failure")
	ErrNotFound    = errors.New("not found")
	ErrUnsupported = errors.New("unsupported operation")
)

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
