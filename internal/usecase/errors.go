package usecase

import (
	"fmt"
	"strings"

	"github.com/vnnovate/crm-core/internal/entity"
)

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

// ErrNotAuthenticated is returned when no (or an inactive) requester reaches
// the core. Checked before anything else.
var ErrNotAuthenticated = &DomainError{
	Code:    "NOT_AUTHENTICATED",
	Message: "requester is not authenticated",
}

// AccessDeniedError means the requester's role or ownership is insufficient.
// Raised before any mutation or side effect runs.
type AccessDeniedError struct {
	UserID   string
	Action   string
	Resource string
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("user %s may not %s %s", e.UserID, e.Action, e.Resource)
}

// HierarchyViolationError signals an invalid manager/role combination. The
// assignment is rejected, never silently corrected.
type HierarchyViolationError struct {
	Subordinate entity.Role
	Manager     entity.Role
	Reason      string
}

func (e *HierarchyViolationError) Error() string {
	if e.Reason != "" {
		return "hierarchy violation: " + e.Reason
	}
	return fmt.Sprintf("hierarchy violation: %s may not report to %s", e.Subordinate, e.Manager)
}

type ValidationFailedError struct {
	Issues []ValidationError
}

func (e *ValidationFailedError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Field+" ("+issue.Message+")")
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// IntegrityBlockedError is a protective-delete refusal. It carries the
// dependents that block the deletion; nothing was deleted.
type IntegrityBlockedError struct {
	Entity        string
	Dependent     string
	BlockingCount int
	BlockingIDs   []string
}

func (e *IntegrityBlockedError) Error() string {
	return fmt.Sprintf("cannot delete %s: %d %s record(s) still reference it", e.Entity, e.BlockingCount, e.Dependent)
}

type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// RollbackFailureError wraps a compensating action that itself failed. It is
// logged as a warning and never changes the primary operation's outcome.
type RollbackFailureError struct {
	Step string
	Err  error
}

func (e *RollbackFailureError) Error() string {
	return fmt.Sprintf("compensation %q failed: %v", e.Step, e.Err)
}

func (e *RollbackFailureError) Unwrap() error {
	return e.Err
}
