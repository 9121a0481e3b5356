package domain

import "fmt"

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ValidationError represents malformed or semantically invalid input.
// It is always raised before any mutation.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	if e.Message == "" {
		return "invalid input"
	}
	return e.Message
}

func (e ValidationError) Is(target error) bool {
	_, ok := target.(ValidationError)
	if ok {
		return true
	}
	_, ok = target.(*ValidationError)
	return ok
}

// ConflictError represents a uniqueness violation, such as a duplicate
// recipe name or an already existing relation pair.
type ConflictError struct {
	Message string
}

func (e ConflictError) Error() string {
	if e.Message == "" {
		return "conflict"
	}
	return e.Message
}

func (e ConflictError) Is(target error) bool {
	_, ok := target.(ConflictError)
	if ok {
		return true
	}
	_, ok = target.(*ConflictError)
	return ok
}

// PermissionError represents an acting user lacking rights for an action.
type PermissionError struct {
	Message string
}

func (e PermissionError) Error() string {
	if e.Message == "" {
		return "permission denied"
	}
	return e.Message
}

func (e PermissionError) Is(target error) bool {
	_, ok := target.(PermissionError)
	if ok {
		return true
	}
	_, ok = target.(*PermissionError)
	return ok
}

// Sentinel errors for errors.Is checks.
var (
	ErrNotFound   = NotFoundError{}
	ErrValidation = ValidationError{}
	ErrConflict   = ConflictError{}
	ErrPermission = PermissionError{}
)
