package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies recoverable service errors so the HTTP layer can map
// them to status codes and distinct client messaging.
type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"
	KindDuplicate   ErrorKind = "duplicate"
	KindNotFound    ErrorKind = "not_found"
	KindReferential ErrorKind = "referential"
	KindAuth        ErrorKind = "auth"
	KindInternal    ErrorKind = "internal"
)

// AppError is the error type returned by all service operations. None of these
// are fatal to the process; the handler layer surfaces them to the caller.
type AppError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ValidationError reports a missing or malformed input field.
func ValidationError(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// DuplicateError reports an identity collision (test id or user name).
func DuplicateError(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindDuplicate, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an operation against a nonexistent entity.
func NotFoundError(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// ReferentialError reports a result referencing a nonexistent test or user.
func ReferentialError(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindReferential, Message: fmt.Sprintf(format, args...)}
}

// AuthError reports a failed login or invalid session.
func AuthError(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindAuth, Message: fmt.Sprintf(format, args...)}
}

// InternalError wraps an unexpected storage or system failure.
func InternalError(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "internal error", Err: err}
}

// KindOf extracts the ErrorKind from err, returning KindInternal for anything
// that is not an AppError.
func KindOf(err error) ErrorKind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
