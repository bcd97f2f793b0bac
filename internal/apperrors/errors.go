package apperrors

import (
	"context"
	"errors"
	"fmt"

	"gym24/internal/logger"
	"gym24/internal/metrics"
)

// Kind classifies an error for transport mapping.
type Kind string

const (
	KindAuthentication Kind = "AUTHENTICATION"
	KindValidation     Kind = "VALIDATION"
	KindNotFound       Kind = "NOT_FOUND"
	KindConflict       Kind = "CONFLICT"
	KindRemoteStore    Kind = "REMOTE_STORE"
	KindInternal       Kind = "INTERNAL"
)

// AppError carries a Kind, a caller-facing message and, for validation
// failures, the offending field.
type AppError struct {
	Kind    Kind
	Message string
	Field   string
	Err     error
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

func NewAuthenticationError(message string) *AppError {
	return &AppError{Kind: KindAuthentication, Message: message}
}

func NewValidationError(field, message string) *AppError {
	return &AppError{Kind: KindValidation, Field: field, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

// NewRemoteStoreError wraps a failure from the database or another backing
// service. The upstream message is kept so handlers can pass it through.
func NewRemoteStoreError(message string, err error) *AppError {
	return &AppError{Kind: KindRemoteStore, Message: message, Err: err}
}

func NewInternalError(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the Kind of the first AppError in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// BestEffort runs a side effect whose failure must never reach the caller.
func BestEffort(ctx context.Context, op string, fn func(ctx context.Context) error) {
	if err := fn(ctx); err != nil {
		logger.WithError(err).Warn("best-effort operation failed", "op", op)
		metrics.RecordBestEffortFailure(op)
	}
}
