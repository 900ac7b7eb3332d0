package workflow

import (
	"errors"
	"fmt"

	"mhb/models"
)

// Sentinel error kinds. Controllers map these to HTTP status codes:
// ErrNotFound -> 404, ErrForbidden -> 403, ErrInvalidTransition -> 400,
// ErrInvalidState -> 400, ErrPersistence -> 500.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInvalidState      = errors.New("invalid state")
	ErrPersistence       = errors.New("persistence failure")
)

// InvalidTransitionError names the rejected transition.
type InvalidTransitionError struct {
	From models.WorkflowStatus
	To   models.WorkflowStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// CheckEditable reports whether a version's content may be edited in its
// current status. Content is frozen outside DRAFT and IN_REVISION.
func CheckEditable(status models.WorkflowStatus) error {
	if status != models.StatusDraft && status != models.StatusInRevision {
		return fmt.Errorf("%w: cannot edit content in status %s", ErrInvalidState, status)
	}
	return nil
}

// PersistenceError wraps an underlying store error.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return ErrPersistence }
