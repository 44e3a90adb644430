package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")

	ErrPostNotFound       = fmt.Errorf("post %w", ErrNotFound)
	ErrApplicantNotFound  = fmt.Errorf("applicant %w", ErrNotFound)
	ErrProjectNotFound    = fmt.Errorf("project %w", ErrNotFound)
	ErrPhaseNotFound      = fmt.Errorf("phase %w", ErrNotFound)
	ErrTodoNotFound       = fmt.Errorf("todo %w", ErrNotFound)
	ErrFreelancerNotFound = fmt.Errorf("freelancer %w", ErrNotFound)

	ErrPhasesLocked = errors.New("project phases are locked")
)

// Field error codes. They double as translation ids on the HTTP side.
const (
	CodeRequired    = "required"
	CodeInvalid     = "invalid"
	CodeTooShort    = "too_short"
	CodeBelowFloor  = "below_floor"
	CodeNotAboveMin = "not_above_min"
	CodeNegative    = "negative"
	CodeBackward    = "backward_transition"
	CodeTooPrecise  = "too_precise"
)

type FieldError struct {
	Field string
	Code  string
}

// ValidationError carries every failing field of a draft, not only the first.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Code)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Add(field, code string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Code: code})
}

func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// OrNil returns nil when no field failed, so callers can `return v.OrNil()`.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

type AuthorizationError struct {
	ActorID uint64
	Action  string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("actor %d is not allowed to %s", e.ActorID, e.Action)
}

func (e *AuthorizationError) Is(target error) bool {
	return target == ErrForbidden
}

func Forbidden(actor Actor, action string) error {
	return &AuthorizationError{ActorID: actor.ID, Action: action}
}
