package grading

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"studentcontrol/internal/access"
	"studentcontrol/internal/shared"
)

// Service appends grade entries to student ledgers.
type Service struct {
	studentsCol *mongo.Collection
}

// NewService creates a grading Service instance.
func NewService(db *mongo.Database) *Service {
	return &Service{studentsCol: db.Collection(shared.ColStudents)}
}

// Submission is one grade entry batch: a selected class, a subject
// (required for teachers), an assignment label, and a mapping from
// student document ID to chosen score code.
type Submission struct {
	ClassName      string            `json:"class_name" validate:"required"`
	Subject        string            `json:"subject"`
	AssignmentName string            `json:"assignment_name" validate:"required"`
	Scores         map[string]string `json:"scores" validate:"required"`
}

// Result reports the outcome of a submission. The batch is a sequence of
// independent appends, not a transaction: Appended entries stay
// persisted even when later ones fail.
type Result struct {
	AssignmentName string   `json:"assignment_name"`
	Appended       int      `json:"appended"`
	Failed         int      `json:"failed"`
	Errors         []string `json:"errors,omitempty"`
}

// SubmitGrades validates the submission against the caller's scope and
// appends one GradeEntry per student with a selected score. Validation
// failures reject the whole batch before any remote call; a store
// failure partway through is reported in the Result and leaves earlier
// appends in place.
func (s *Service) SubmitGrades(ctx context.Context, scope access.Scope, sub Submission) (*Result, error) {
	entries, err := buildEntries(scope, sub, time.Now())
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for studentID, entry := range entries {
		result.AssignmentName = entry.AssignmentName
		if err := s.appendEntry(ctx, studentID, sub.ClassName, entry); err != nil {
			log.Error().Err(err).Str("student_id", studentID).Msg("grade append failed")
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("student %s: %v", studentID, err))
			continue
		}
		result.Appended++
	}

	return result, nil
}

// appendEntry pushes one entry onto the student's ledger. The filter
// includes the class name so an entry can never land on a student
// outside the submitted class. Appends are commutative: two callers
// grading the same class concurrently never conflict.
func (s *Service) appendEntry(ctx context.Context, studentID, className string, entry shared.GradeEntry) error {
	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"_id": studentID, "className": className}
	update := bson.M{"$push": bson.M{"grades": entry}}

	res, err := s.studentsCol.UpdateOne(opCtx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("student not found in class %s", className)
	}
	return nil
}

// buildEntries turns a submission into the grade entries to persist,
// keyed by student ID. Pure: all scope and score validation happens here
// so a bad submission performs zero writes.
func buildEntries(scope access.Scope, sub Submission, now time.Time) (map[string]shared.GradeEntry, error) {
	if scope.IsDenied() {
		return nil, shared.ErrAuthorizationAbsent
	}
	if err := shared.ValidateStruct(sub); err != nil {
		return nil, err
	}
	if !scope.CanActOnClass(sub.ClassName) {
		return nil, shared.ErrForbidden
	}

	label := strings.TrimSpace(sub.AssignmentName)
	if label == "" {
		return nil, shared.ValidationError{Field: "assignment_name", Message: "is required"}
	}

	// Teachers grade under a subject from their authorized set; the
	// persisted label is prefixed with it so identical assignment names
	// across subjects stay distinct. The administrator's label is verbatim.
	if !scope.IsAdmin() {
		subject := strings.TrimSpace(sub.Subject)
		if subject == "" {
			return nil, shared.ValidationError{Field: "subject", Message: "is required"}
		}
		if !scope.CanGradeSubject(subject) {
			return nil, shared.ErrForbidden
		}
		label = subject + " - " + label
	}

	entries := make(map[string]shared.GradeEntry)
	for studentID, code := range sub.Scores {
		score, err := ParseScore(code)
		if err != nil {
			return nil, shared.ValidationError{
				Field:   "scores",
				Message: fmt.Sprintf("student %s: %v", studentID, err),
			}
		}
		if score.IsUnselected() {
			continue
		}
		entries[studentID] = shared.GradeEntry{
			AssignmentName: label,
			Score:          strings.TrimSpace(code),
			Date:           now,
			TeacherEmail:   scope.Author(),
		}
	}

	if len(entries) == 0 {
		return nil, shared.ErrNoGrades
	}
	return entries, nil
}
