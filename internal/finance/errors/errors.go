package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount    = NewValidationError("Amount must be a positive number")
	ErrAccountNotFound  = NewValidationError("Account not found")
	ErrCategoryMismatch = NewValidationError("Category not found or does not match transaction type")
)

// ValidationError marks a failure the caller can fix and resubmit. Handlers
// map it to a 4xx response; everything else is treated as infrastructure.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	ok := errors.As(err, &validationError)
	return ok
}

// WriteFailedError wraps an infrastructure failure raised inside the atomic
// transaction write. The wrapped cause is for server-side logs only and must
// never reach the response body.
type WriteFailedError struct {
	Cause error
}

func (e *WriteFailedError) Error() string {
	return fmt.Sprintf("transaction write failed: %v", e.Cause)
}

func (e *WriteFailedError) Unwrap() error {
	return e.Cause
}

func NewWriteFailedError(cause error) error {
	return &WriteFailedError{Cause: cause}
}

func IsWriteFailedError(err error) bool {
	var writeFailed *WriteFailedError
	return errors.As(err, &writeFailed)
}

// QueryFailedError wraps a read-path infrastructure failure. Reads have no
// side effects, so the caller may always retry.
type QueryFailedError struct {
	Cause error
}

func (e *QueryFailedError) Error() string {
	return fmt.Sprintf("query failed: %v", e.Cause)
}

func (e *QueryFailedError) Unwrap() error {
	return e.Cause
}

func NewQueryFailedError(cause error) error {
	return &QueryFailedError{Cause: cause}
}

func IsQueryFailedError(err error) bool {
	var queryFailed *QueryFailedError
	return errors.As(err, &queryFailed)
}
