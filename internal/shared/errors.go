package shared

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services. The HTTP layer maps these to
// status codes; none of them is treated as process-fatal.
var (
	// ErrUnauthenticated means the caller presented no valid credentials.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrAuthorizationAbsent means the identity authenticated but has no
	// teacher record and is not the administrator. Callers in this state
	// are shown a "contact administrator" message, not a generic failure.
	ErrAuthorizationAbsent = errors.New("no authorization record for this account, contact the administrator")

	// ErrForbidden means the operation targets a class or subject outside
	// the caller's authorized scope.
	ErrForbidden = errors.New("operation is outside the caller's authorized scope")

	// ErrNoGrades rejects a grade submission in which every student was
	// left at the unselected score.
	ErrNoGrades = errors.New("no grades entered: at least one student must have a score")

	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// ValidationError reports a recoverable input problem, surfaced to the
// caller before any remote call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
