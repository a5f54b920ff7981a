package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorCode identifies the kind of a HistoryError.
type ErrorCode string

const (
	ErrInvalidArgument  ErrorCode = "INVALID_ARGUMENT"    // 400
	ErrNoHistoryInRange ErrorCode = "NO_HISTORY_IN_RANGE" // 404
	ErrInvalidFormat    ErrorCode = "INVALID_FORMAT"      // 422
	ErrInternal         ErrorCode = "INTERNAL"            // 500
)

// HistoryError is a hard failure surfaced to callers. Soft "not found" results
// are plain strings and never use this type.
type HistoryError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *HistoryError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidArgument creates a 400 error for arguments a query cannot accept.
func NewInvalidArgument(msg string) *HistoryError {
	return &HistoryError{
		Code:    ErrInvalidArgument,
		Status:  400,
		Message: msg,
	}
}

// NewInvalidFormat creates a 422 error for text that is not a chat history export.
func NewInvalidFormat(msg string) *HistoryError {
	return &HistoryError{
		Code:    ErrInvalidFormat,
		Status:  422,
		Message: msg,
	}
}

// NewNoHistoryInRange creates a 404 error for a random search whose span holds no dated block.
// Zero times are left out of the details.
func NewNoHistoryInRange(first, today time.Time) *HistoryError {
	details := map[string]any{}
	msg := "no history between the first date and today"
	if !first.IsZero() {
		details["first_date"] = first.Format("2006-01-02")
	} else {
		msg = "transcript has no date headers"
	}
	if !today.IsZero() {
		details["today"] = today.Format("2006-01-02")
	}
	return &HistoryError{
		Code:    ErrNoHistoryInRange,
		Status:  404,
		Message: msg,
		Details: details,
	}
}

// NewNoHistoryOn creates a 404 error for a single day that has no date block.
func NewNoHistoryOn(day time.Time) *HistoryError {
	return &HistoryError{
		Code:    ErrNoHistoryInRange,
		Status:  404,
		Message: "no history on " + day.Format("2006-01-02"),
		Details: map[string]any{"date": day.Format("2006-01-02")},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *HistoryError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &HistoryError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// As returns the HistoryError in err's chain, if any.
func As(err error) (*HistoryError, bool) {
	var hErr *HistoryError
	if stderrors.As(err, &hErr) {
		return hErr, true
	}
	return nil, false
}

// Is checks if err (or anything it wraps) is a HistoryError with the given code.
func Is(err error, code ErrorCode) bool {
	if hErr, ok := As(err); ok {
		return hErr.Code == code
	}
	return false
}
