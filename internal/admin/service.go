// Package admin manages teacher authorization records. Every operation
// here is administrator-only; the HTTP layer enforces that before
// calling in.
package admin

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studentcontrol/internal/shared"
)

// Service manages the teachers collection.
type Service struct {
	teachersCol *mongo.Collection
}

// NewService creates an admin Service instance.
func NewService(db *mongo.Database) *Service {
	return &Service{teachersCol: db.Collection(shared.ColTeachers)}
}

// CreateTeacher is the payload for authorizing a new teacher.
type CreateTeacher struct {
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Classes  []string `json:"classes" validate:"required,min=1,dive,required"`
	Subjects []string `json:"subjects" validate:"required,min=1,dive,required"`
}

// Create stores a new teacher authorization record. The email is
// lower-cased and trimmed before storing; a second record for the same
// email is rejected.
func (s *Service) Create(ctx context.Context, req CreateTeacher) (*shared.TeacherProfile, error) {
	if err := shared.ValidateStruct(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	count, err := s.teachersCol.CountDocuments(queryCtx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, shared.ErrDuplicate
	}

	profile := &shared.TeacherProfile{
		ID:        shared.GenerateID("tch"),
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		Classes:   trimAll(req.Classes),
		Subjects:  trimAll(req.Subjects),
		CreatedAt: time.Now(),
	}

	if _, err := s.teachersCol.InsertOne(queryCtx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// List returns every teacher authorization record.
func (s *Service) List(ctx context.Context) ([]shared.TeacherProfile, error) {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.teachersCol.Find(queryCtx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(queryCtx)

	var teachers []shared.TeacherProfile
	if err := cursor.All(queryCtx, &teachers); err != nil {
		return nil, err
	}
	return teachers, nil
}

// Delete removes a teacher authorization record by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return shared.ValidationError{Field: "id", Message: "is required"}
	}

	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := s.teachersCol.DeleteOne(queryCtx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
