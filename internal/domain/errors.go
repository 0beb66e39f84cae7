package domain

import (
	"errors"
	"fmt"
)

// The indexing error taxonomy. Validation, authorization and malformed-payload
// failures are scoped to a single event: the block processor records them and
// moves on. Anything else (storage faults included) aborts the whole block.

// ValidationError is a business-rule violation for one event.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// AuthorizationError means the event signer is neither the entity owner nor an
// authorized delegate.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return e.Reason
}

// Authorizationf builds an AuthorizationError from a format string.
func Authorizationf(format string, args ...any) error {
	return &AuthorizationError{Reason: fmt.Sprintf(format, args...)}
}

// MalformedPayloadError means the event metadata could not be parsed, or is
// missing fields required for the given action.
type MalformedPayloadError struct {
	Reason string
	Cause  error
}

func (e *MalformedPayloadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Cause)
	}
	return e.Reason
}

func (e *MalformedPayloadError) Unwrap() error {
	return e.Cause
}

// IsRecoverable reports whether err is a per-event failure the block processor
// should skip rather than abort on.
func IsRecoverable(err error) bool {
	var (
		validation *ValidationError
		authz      *AuthorizationError
		malformed  *MalformedPayloadError
	)
	return errors.As(err, &validation) || errors.As(err, &authz) || errors.As(err, &malformed)
}
