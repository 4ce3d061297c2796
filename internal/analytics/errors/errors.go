package errors

import (
	"errors"
)

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

var ErrGoalNotFound = errors.New("goal not found")

var ErrInvalidPeriod = NewValidationError("Invalid period")
var ErrInvalidGranularity = NewValidationError("Invalid granularity")
var ErrInvalidSensitivity = NewValidationError("Invalid sensitivity")
var ErrInvalidDateRange = NewValidationError("Start date must not be after end date")
var ErrInvalidUserID = NewValidationError("User ID must be positive")
