package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the common interface of every typed error in stockledger.
// Presentation code reads the category and HTTP status from it.
type AppError interface {
	Error() string
	Message() string
	Category() string
	HTTPStatus() int
	Unwrap() error
}

// ValidationError is raised before any write when an input is out of range.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("validation error: %s", e.Msg) }
func (e *ValidationError) Message() string  { return e.Msg }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest }
func (e *ValidationError) Unwrap() error    { return nil }

func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// NotFoundError means a referenced product or supplier does not exist.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("not found: %s", e.Msg) }
func (e *NotFoundError) Message() string  { return e.Msg }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound }
func (e *NotFoundError) Unwrap() error    { return nil }

func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// InsufficientStockError is raised by the stock adjustment guard when the
// resulting quantity would be negative.
type InsufficientStockError struct {
	ProductID int64
	Available int
	Delta     int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: product %d has %d, adjustment of %d rejected", e.ProductID, e.Available, e.Delta)
}
func (e *InsufficientStockError) Message() string  { return e.Error() }
func (e *InsufficientStockError) Category() string { return "INSUFFICIENT_STOCK" }
func (e *InsufficientStockError) HTTPStatus() int  { return http.StatusConflict }
func (e *InsufficientStockError) Unwrap() error    { return nil }

func NewInsufficientStockError(productID int64, available, delta int) AppError {
	return &InsufficientStockError{ProductID: productID, Available: available, Delta: delta}
}

// ConstraintError wraps a unique or foreign-key violation reported by the store.
type ConstraintError struct {
	Msg string
	Err error
}

func (e *ConstraintError) Error() string    { return fmt.Sprintf("constraint violation: %s", e.Msg) }
func (e *ConstraintError) Message() string  { return e.Msg }
func (e *ConstraintError) Category() string { return "CONSTRAINT_VIOLATION" }
func (e *ConstraintError) HTTPStatus() int  { return http.StatusConflict }
func (e *ConstraintError) Unwrap() error    { return e.Err }

func NewConstraintError(msg string, err error) AppError {
	return &ConstraintError{Msg: msg, Err: err}
}

// UnauthorizedError is used by the login flow and the auth middleware.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return fmt.Sprintf("unauthorized: %s", e.Msg) }
func (e *UnauthorizedError) Message() string  { return e.Msg }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized }
func (e *UnauthorizedError) Unwrap() error    { return nil }

func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// InternalError covers unexpected failures in the store, the cache or the service itself.
type InternalError struct {
	Msg string
	Err error
}

func (e *InternalError) Error() string    { return fmt.Sprintf("internal error: %s", e.Msg) }
func (e *InternalError) Message() string  { return e.Msg }
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError }
func (e *InternalError) Unwrap() error    { return e.Err }

func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError is a shortcut for an InternalError raised by a failed statement.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (db): %s", msg, err.Error()), err)
}

// IsAppError reports whether err, or anything it wraps, is an AppError.
func IsAppError(err error) bool {
	var appErr AppError
	return errors.As(err, &appErr)
}

// Message is the text shown to a user: an AppError's message without its
// category prefix, or err.Error() for anything else.
func Message(err error) string {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Message()
	}
	return err.Error()
}

// MapToHTTPStatus translates an error into a status code, a category and a message.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}
	return http.StatusInternalServerError, "UNKNOWN_ERROR", "an unexpected error occurred"
}
