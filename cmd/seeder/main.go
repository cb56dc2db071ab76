// Seeder populates a development database with a demo administrator
// login, teacher accounts with authorization records, and a sample
// class with a small grade ledger. Idempotent per document ID.
package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"studentcontrol/internal/shared"
)

const (
	commonPassword = "password"

	teacherEmail1 = "ahmet.yilmaz@okul.com"
	teacherEmail2 = "zeynep.kaya@okul.com"

	sampleClass = "11-A Bilişim"
)

func main() {
	log.Info().Msg("starting database seeder")

	if err := shared.LoadEnv(""); err != nil {
		log.Warn().Msg("no .env file found, using process environment")
	}

	cfg, err := shared.LoadConfig("studentcontrol-seeder")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	client, db, err := shared.ConnectMongoDB(&cfg.MongoDB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer shared.DisconnectMongoDB(client)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	seedUsers(ctx, db, cfg)
	seedTeacherProfiles(ctx, db)
	seedStudents(ctx, db)

	log.Info().Msg("seeding complete")
}

func seedUsers(ctx context.Context, db *mongo.Database, cfg *shared.Config) {
	usersCol := db.Collection(shared.ColUsers)
	hash, err := bcrypt.GenerateFromPassword([]byte(commonPassword), cfg.Security.BCryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash seed password")
	}

	users := []shared.User{
		{ID: "user-admin", Email: cfg.AdminEmail, Name: "Yönetici"},
		{ID: "user-teacher-1", Email: teacherEmail1, Name: "Ahmet Yılmaz"},
		{ID: "user-teacher-2", Email: teacherEmail2, Name: "Zeynep Kaya"},
	}
	for _, u := range users {
		u.PasswordHash = string(hash)
		u.IsActive = true
		u.CreatedAt = time.Now()
		upsert(ctx, usersCol, u.ID, u)
	}
	log.Info().Int("count", len(users)).Msg("seeded users")
}

func seedTeacherProfiles(ctx context.Context, db *mongo.Database) {
	teachersCol := db.Collection(shared.ColTeachers)

	profiles := []shared.TeacherProfile{
		{
			ID:       "tch-seed-1",
			Name:     "Ahmet Yılmaz",
			Email:    teacherEmail1,
			Classes:  []string{sampleClass, "10-B"},
			Subjects: []string{"Matematik", "Geometri"},
		},
		{
			ID:       "tch-seed-2",
			Name:     "Zeynep Kaya",
			Email:    teacherEmail2,
			Classes:  []string{sampleClass},
			Subjects: []string{"Programlama Temelleri"},
		},
	}
	for _, p := range profiles {
		p.CreatedAt = time.Now()
		upsert(ctx, teachersCol, p.ID, p)
	}
	log.Info().Int("count", len(profiles)).Msg("seeded teacher profiles")
}

func seedStudents(ctx context.Context, db *mongo.Database) {
	studentsCol := db.Collection(shared.ColStudents)
	entered := time.Now().Add(-72 * time.Hour)

	students := []shared.Student{
		{
			ID: "std-seed-1", StudentNumber: "101", Name: "Ayşe Yıldız", ClassName: sampleClass,
			Grades: []shared.GradeEntry{
				{AssignmentName: "Matematik - 1. Sınav", Score: "80", Date: entered, TeacherEmail: teacherEmail1},
				{AssignmentName: "Matematik - 2. Sınav", Score: "G", Date: entered.Add(time.Hour), TeacherEmail: teacherEmail1},
			},
		},
		{
			ID: "std-seed-2", StudentNumber: "102", Name: "Mehmet Demir", ClassName: sampleClass,
			Grades: []shared.GradeEntry{
				{AssignmentName: "Matematik - 1. Sınav", Score: "60", Date: entered, TeacherEmail: teacherEmail1},
				{AssignmentName: "Deneme Uygulaması", Score: "100", Date: entered, TeacherEmail: shared.AdminAuthor},
			},
		},
		{
			ID: "std-seed-3", StudentNumber: "103", Name: "Elif Şahin", ClassName: sampleClass,
			Grades: []shared.GradeEntry{},
		},
	}
	for _, s := range students {
		s.CreatedAt = time.Now()
		upsert(ctx, studentsCol, s.ID, s)
	}
	log.Info().Int("count", len(students)).Msg("seeded students")
}

func upsert(ctx context.Context, col *mongo.Collection, id string, doc interface{}) {
	opts := options.Replace().SetUpsert(true)
	if _, err := col.ReplaceOne(ctx, bson.M{"_id": id}, doc, opts); err != nil {
		log.Fatal().Err(err).Str("collection", col.Name()).Str("id", id).Msg("seed upsert failed")
	}
}
