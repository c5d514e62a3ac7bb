package services

import (
	"errors"
	"strings"
)

// ErrReasonRequired is returned when a report is submitted without a reason.
var ErrReasonRequired = errors.New("reason is required")

// ValidationError carries every problem found in a designer record.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Errors, ", ")
}
