// Package roster manages class rosters: listing selectable classes,
// listing students, and importing students from spreadsheets.
package roster

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studentcontrol/internal/access"
	"studentcontrol/internal/shared"
	"studentcontrol/internal/xlsx"
)

// Service manages the students collection.
type Service struct {
	studentsCol *mongo.Collection
}

// NewService creates a roster Service instance.
func NewService(db *mongo.Database) *Service {
	return &Service{studentsCol: db.Collection(shared.ColStudents)}
}

// ListClasses returns the classes selectable by the caller. The
// administrator sees every distinct class name in the store; a teacher
// sees exactly their authorized set, never a superset.
func (s *Service) ListClasses(ctx context.Context, scope access.Scope) ([]string, error) {
	switch scope.Role {
	case access.RoleAdmin:
		queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		values, err := s.studentsCol.Distinct(queryCtx, "className", bson.M{})
		if err != nil {
			return nil, err
		}
		classes := make([]string, 0, len(values))
		for _, v := range values {
			if name, ok := v.(string); ok {
				classes = append(classes, name)
			}
		}
		return classes, nil

	case access.RoleTeacher:
		classes := make([]string, len(scope.Classes))
		copy(classes, scope.Classes)
		return classes, nil
	}
	return nil, shared.ErrAuthorizationAbsent
}

// ListStudents returns the students of one class, sorted by student
// number, after checking the class is in the caller's scope.
func (s *Service) ListStudents(ctx context.Context, scope access.Scope, className string) ([]shared.Student, error) {
	if scope.IsDenied() {
		return nil, shared.ErrAuthorizationAbsent
	}
	if className == "" {
		return nil, shared.ValidationError{Field: "className", Message: "is required"}
	}
	if !scope.CanActOnClass(className) {
		return nil, shared.ErrForbidden
	}

	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "studentNumber", Value: 1}})
	cursor, err := s.studentsCol.Find(queryCtx, bson.M{"className": className}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(queryCtx)

	var students []shared.Student
	if err := cursor.All(queryCtx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// ImportResult reports a roster import. The import is not transactional:
// rows already inserted before a failure stay in the store and are
// counted in Imported.
type ImportResult struct {
	ClassName string   `json:"className"`
	Imported  int      `json:"imported"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// Import parses a roster workbook and creates one student per row with
// an empty grade ledger. The target class must be chosen before import:
// free text for the administrator, one of the authorized set for a
// teacher.
//
// Imports are not idempotent: concurrent imports of the same class can
// create duplicate student records.
func (s *Service) Import(ctx context.Context, scope access.Scope, className string, file io.Reader) (*ImportResult, error) {
	if scope.IsDenied() {
		return nil, shared.ErrAuthorizationAbsent
	}
	className = strings.TrimSpace(className)
	if className == "" {
		return nil, shared.ValidationError{Field: "class_name", Message: "is required"}
	}
	if !scope.CanActOnClass(className) {
		return nil, shared.ErrForbidden
	}

	rows, err := xlsx.ParseRoster(file)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, shared.ValidationError{Field: "file", Message: "contains no student rows"}
	}

	result := &ImportResult{ClassName: className}
	now := time.Now()
	for _, row := range rows {
		if row.StudentNumber == "" || row.Name == "" {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: student number and name are required", row.Line))
			continue
		}

		student := shared.Student{
			ID:            primitive.NewObjectID().Hex(),
			StudentNumber: row.StudentNumber,
			Name:          row.Name,
			ClassName:     className,
			Grades:        []shared.GradeEntry{},
			CreatedAt:     now,
		}

		opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		_, err := s.studentsCol.InsertOne(opCtx, student)
		cancel()
		if err != nil {
			log.Error().Err(err).Int("row", row.Line).Str("class", className).Msg("roster insert failed")
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", row.Line, err))
			continue
		}
		result.Imported++
	}

	return result, nil
}
