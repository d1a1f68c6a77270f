package domain

import (
	"errors"
	"fmt"
)

// Validation errors. All of them are detected before any remote call and are
// caller bugs, not retryable conditions.
var (
	ErrEmptyProposalBatch = errors.New("proposal batch is empty")
	ErrEmptyToken         = errors.New("caller token is empty")
	ErrEmptyLocation      = errors.New("location is empty")
	ErrInvalidUserID      = errors.New("user id must be positive")
	ErrInvalidMatchID     = errors.New("match id must be positive")
)

// Not-found errors, surfaced to the caller as-is.
var (
	ErrMatchNotFound = errors.New("match not found")
	ErrUserNotFound  = errors.New("user not found")
)

var ErrInvalidToken = errors.New("invalid or expired token")

// ErrDependencyUnavailable marks errors caused by an unreachable or failing
// collaborator (user directory, match store). The whole call aborts without
// partial writes, so the caller may retry with backoff. Match against it
// with errors.Is; the concrete cause travels in a DependencyError.
var ErrDependencyUnavailable = errors.New("dependency unavailable")

// DependencyError wraps a collaborator failure with the name of the
// collaborator that produced it.
type DependencyError struct {
	Dependency string
	Err        error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Dependency, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrDependencyUnavailable) match any DependencyError.
func (e *DependencyError) Is(target error) bool {
	return target == ErrDependencyUnavailable
}

// NewDependencyError wraps err as a failure of the named collaborator.
func NewDependencyError(dependency string, err error) error {
	return &DependencyError{Dependency: dependency, Err: err}
}
