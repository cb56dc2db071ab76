package shared

import (
	"fmt"
	"time"
)

// AdminAuthor is the author identity recorded on grade entries submitted
// by the administrator. Teacher-submitted entries carry the teacher's
// lower-cased email instead.
const AdminAuthor = "Admin"

// User is a login account. Authorization (which classes and subjects an
// identity may act on) lives in TeacherProfile, not here.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Name         string    `bson:"name" json:"name"`
	IsActive     bool      `bson:"is_active" json:"is_active"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// Session is an active login session, stored server-side so tokens can
// be revoked on logout.
type Session struct {
	ID        string    `bson:"_id" json:"id"`
	Email     string    `bson:"email" json:"email"`
	Token     string    `bson:"token" json:"token"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// IsExpired reports whether the session has passed its expiry time.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// TeacherProfile is an authorization record in the teachers collection.
// Email is the lower-cased lookup key; Classes and Subjects bound what
// the teacher may act on.
type TeacherProfile struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Classes   []string  `bson:"classes" json:"classes"`
	Subjects  []string  `bson:"subjects" json:"subjects"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Student is a roster record. Grades is append-only; insertion order is
// chronological and entries are never edited or removed in place.
//
// Field names in the students and teachers collections keep the store's
// original camelCase schema (queried by equality on className/email).
type Student struct {
	ID            string       `bson:"_id" json:"id"`
	StudentNumber string       `bson:"studentNumber" json:"studentNumber"`
	Name          string       `bson:"name" json:"name"`
	ClassName     string       `bson:"className" json:"className"`
	Grades        []GradeEntry `bson:"grades" json:"grades"`
	CreatedAt     time.Time    `bson:"created_at" json:"created_at"`
}

// GradeEntry is one assignment result in a student's grade ledger.
// Score holds the persisted score code; grading.ParseScore turns it into
// the typed variant. TeacherEmail is the author identity (AdminAuthor
// for the administrator).
type GradeEntry struct {
	AssignmentName string    `bson:"assignmentName" json:"assignmentName"`
	Score          string    `bson:"score" json:"score"`
	Date           time.Time `bson:"date" json:"date"`
	TeacherEmail   string    `bson:"teacherEmail" json:"teacherEmail"`
}

// GenerateID generates a unique document ID with a prefix and timestamp.
func GenerateID(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}
