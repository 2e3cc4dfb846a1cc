package services

import (
	"fmt"
	"strings"
)

// ValidationError reports missing or malformed request fields.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("all fields (%s) are required and must be valid", strings.Join(e.Fields, ", "))
}

// PreconditionError reports a rejected write whose prerequisite state is
// missing, such as recording an expense before any spending limit exists.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}

// LimitExceededError reports an expense write that would push the cumulative
// category total over its configured ceiling.
type LimitExceededError struct {
	Category string
	Ceiling  float64
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("adding this expense exceeds the spending limit of %g for %s", e.Ceiling, e.Category)
}

// ConflictError reports a write rejected because the record already exists.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
