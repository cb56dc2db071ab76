// Package access resolves an authenticated identity into the scope that
// every other component uses to filter or reject operations.
package access

import (
	"context"
	"strings"

	"studentcontrol/internal/shared"
)

// Role classifies what a resolved identity may do.
type Role int

const (
	// RoleDenied means the identity authenticated but has no teacher
	// record and is not the administrator. All domain operations are
	// rejected with a "contact administrator" state.
	RoleDenied Role = iota

	// RoleAdmin has unrestricted read/write over all classes and subjects.
	RoleAdmin

	// RoleTeacher is bound to an explicit set of class and subject names.
	RoleTeacher
)

// String returns the wire representation of the role.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleTeacher:
		return "teacher"
	default:
		return "denied"
	}
}

// Scope is the authorization context of one caller. It is resolved once
// per request and passed explicitly; there is no global current-user
// state.
type Scope struct {
	Role     Role     `json:"role"`
	Email    string   `json:"email"`
	Name     string   `json:"name,omitempty"`
	Classes  []string `json:"classes,omitempty"`
	Subjects []string `json:"subjects,omitempty"`
}

// Resolve determines the caller's scope from an authenticated identity.
// The configured administrator email wins over any teacher record, both
// compared case-insensitively. A nil profile for a non-administrator
// yields RoleDenied. Pure lookup, no side effects.
func Resolve(adminEmail, email string, profile *shared.TeacherProfile) Scope {
	normalized := strings.ToLower(strings.TrimSpace(email))

	if normalized != "" && normalized == strings.ToLower(strings.TrimSpace(adminEmail)) {
		return Scope{Role: RoleAdmin, Email: normalized}
	}

	if profile == nil {
		return Scope{Role: RoleDenied, Email: normalized}
	}

	return Scope{
		Role:     RoleTeacher,
		Email:    normalized,
		Name:     profile.Name,
		Classes:  profile.Classes,
		Subjects: profile.Subjects,
	}
}

// IsAdmin reports whether the scope is the administrator.
func (s Scope) IsAdmin() bool { return s.Role == RoleAdmin }

// IsDenied reports whether the identity has no authorization at all.
func (s Scope) IsDenied() bool { return s.Role == RoleDenied }

// CanActOnClass reports whether the caller may operate on the class.
func (s Scope) CanActOnClass(className string) bool {
	switch s.Role {
	case RoleAdmin:
		return true
	case RoleTeacher:
		for _, c := range s.Classes {
			if c == className {
				return true
			}
		}
	}
	return false
}

// CanGradeSubject reports whether the caller may grade under the subject.
func (s Scope) CanGradeSubject(subject string) bool {
	switch s.Role {
	case RoleAdmin:
		return true
	case RoleTeacher:
		for _, sub := range s.Subjects {
			if sub == subject {
				return true
			}
		}
	}
	return false
}

// AuthorMatches reports whether a grade entry authored by the given
// identity is visible to this scope. The administrator sees every entry;
// a teacher only their own.
func (s Scope) AuthorMatches(author string) bool {
	switch s.Role {
	case RoleAdmin:
		return true
	case RoleTeacher:
		return author == s.Email
	}
	return false
}

// Author returns the identity to record on grade entries written by this
// scope.
func (s Scope) Author() string {
	if s.Role == RoleAdmin {
		return shared.AdminAuthor
	}
	return s.Email
}

// Session carries the resolved scope of one authenticated request.
type Session struct {
	Email string
	Scope Scope
}

type ctxKey struct{}

// NewContext returns a context carrying the session.
func NewContext(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, sess)
}

// FromContext extracts the session injected by the auth middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(ctxKey{}).(*Session)
	return sess, ok
}
