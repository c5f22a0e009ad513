// Package errors provides error handling utilities.
package errors

import (
	"errors"
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeConfig indicates missing or invalid configuration, detected
	// before any remote call is made
	TypeConfig Type = "CONFIG_ERROR"

	// TypeFetch indicates the public IP-ranges feed was unreachable or
	// returned something other than the expected JSON document
	TypeFetch Type = "FETCH_ERROR"

	// TypeSchema indicates the feed decoded as JSON but is missing a
	// required field (prefixes, ip_prefix, region, service)
	TypeSchema Type = "SCHEMA_ERROR"

	// TypeRemote indicates a platform API call returned a non-2xx status
	TypeRemote Type = "REMOTE_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(errType Type, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsType checks if an error (or anything it wraps) is of a specific type
func IsType(err error, t Type) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == t
	}
	return false
}

// Config creates a configuration error
func Config(message string) *Error {
	return New(TypeConfig, message)
}

// Configf creates a formatted configuration error
func Configf(format string, args ...interface{}) *Error {
	return Newf(TypeConfig, format, args...)
}

// Fetch creates a feed fetch error
func Fetch(message string, cause error) *Error {
	return Wrap(TypeFetch, message, cause)
}

// Schema creates a feed schema error
func Schema(format string, args ...interface{}) *Error {
	return Newf(TypeSchema, format, args...)
}

// Remote creates a platform API error carrying the response status and body
func Remote(message string, status int, body string) *Error {
	e := New(TypeRemote, message)
	e.WithContext("status", status)
	if body != "" {
		e.WithContext("body", body)
	}
	return e
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
