package grading

import (
	"errors"
	"testing"
	"time"

	"studentcontrol/internal/access"
	"studentcontrol/internal/shared"
)

var (
	teacherScope = access.Scope{
		Role:     access.RoleTeacher,
		Email:    "ahmet@okul.com",
		Classes:  []string{"11-A"},
		Subjects: []string{"Matematik"},
	}
	adminScope = access.Scope{Role: access.RoleAdmin, Email: "principal@okul.com"}
)

func validSubmission() Submission {
	return Submission{
		ClassName:      "11-A",
		Subject:        "Matematik",
		AssignmentName: "1. Sınav",
		Scores:         map[string]string{"std-1": "80", "std-2": "Not Seçin"},
	}
}

func TestBuildEntries(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("teacher label is prefixed with the subject", func(t *testing.T) {
		entries, err := buildEntries(teacherScope, validSubmission(), now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		entry, ok := entries["std-1"]
		if !ok {
			t.Fatal("expected entry for std-1")
		}
		if entry.AssignmentName != "Matematik - 1. Sınav" {
			t.Errorf("label = %q, want subject-prefixed label", entry.AssignmentName)
		}
		if entry.TeacherEmail != "ahmet@okul.com" {
			t.Errorf("author = %q, want teacher email", entry.TeacherEmail)
		}
		if !entry.Date.Equal(now) {
			t.Errorf("date = %v, want %v", entry.Date, now)
		}
	})

	t.Run("admin label is verbatim and admin-authored", func(t *testing.T) {
		sub := validSubmission()
		sub.Subject = ""
		entries, err := buildEntries(adminScope, sub, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		entry := entries["std-1"]
		if entry.AssignmentName != "1. Sınav" {
			t.Errorf("label = %q, want verbatim label", entry.AssignmentName)
		}
		if entry.TeacherEmail != shared.AdminAuthor {
			t.Errorf("author = %q, want %q", entry.TeacherEmail, shared.AdminAuthor)
		}
	})

	t.Run("unselected scores are never persisted", func(t *testing.T) {
		entries, err := buildEntries(teacherScope, validSubmission(), now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := entries["std-2"]; ok {
			t.Error("unselected score produced an entry")
		}
	})

	t.Run("all scores unselected rejects the batch", func(t *testing.T) {
		sub := validSubmission()
		sub.Scores = map[string]string{"std-1": "Not Seçin", "std-2": ""}
		_, err := buildEntries(teacherScope, sub, now)
		if !errors.Is(err, shared.ErrNoGrades) {
			t.Fatalf("err = %v, want ErrNoGrades", err)
		}
	})

	t.Run("teacher without subject is rejected", func(t *testing.T) {
		sub := validSubmission()
		sub.Subject = ""
		_, err := buildEntries(teacherScope, sub, now)
		var vErr shared.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
	})

	t.Run("subject outside the authorized set is rejected", func(t *testing.T) {
		sub := validSubmission()
		sub.Subject = "Fizik"
		_, err := buildEntries(teacherScope, sub, now)
		if !errors.Is(err, shared.ErrForbidden) {
			t.Fatalf("err = %v, want ErrForbidden", err)
		}
	})

	t.Run("class outside the authorized set is rejected", func(t *testing.T) {
		sub := validSubmission()
		sub.ClassName = "12-C"
		_, err := buildEntries(teacherScope, sub, now)
		if !errors.Is(err, shared.ErrForbidden) {
			t.Fatalf("err = %v, want ErrForbidden", err)
		}
	})

	t.Run("invalid score code rejects the batch", func(t *testing.T) {
		sub := validSubmission()
		sub.Scores["std-3"] = "55"
		_, err := buildEntries(teacherScope, sub, now)
		var vErr shared.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
	})

	t.Run("missing assignment name is rejected", func(t *testing.T) {
		sub := validSubmission()
		sub.AssignmentName = "   "
		_, err := buildEntries(teacherScope, sub, now)
		var vErr shared.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
	})

	t.Run("denied scope is rejected", func(t *testing.T) {
		_, err := buildEntries(access.Scope{Role: access.RoleDenied}, validSubmission(), now)
		if !errors.Is(err, shared.ErrAuthorizationAbsent) {
			t.Fatalf("err = %v, want ErrAuthorizationAbsent", err)
		}
	})

	t.Run("exempt codes are persisted as entered", func(t *testing.T) {
		sub := validSubmission()
		sub.Scores = map[string]string{"std-1": "İ", "std-2": "G"}
		entries, err := buildEntries(teacherScope, sub, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entries["std-1"].Score != "İ" {
			t.Errorf("score = %q, want İ preserved", entries["std-1"].Score)
		}
		if entries["std-2"].Score != "G" {
			t.Errorf("score = %q, want G", entries["std-2"].Score)
		}
	})
}
