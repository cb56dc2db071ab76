package access

import (
	"testing"

	"studentcontrol/internal/shared"
)

const adminEmail = "principal@okul.com"

func TestResolve(t *testing.T) {
	profile := &shared.TeacherProfile{
		Name:     "Ahmet Yılmaz",
		Email:    "ahmet@okul.com",
		Classes:  []string{"11-A", "10-B"},
		Subjects: []string{"Matematik"},
	}

	t.Run("admin email resolves to administrator", func(t *testing.T) {
		scope := Resolve(adminEmail, "principal@okul.com", nil)
		if !scope.IsAdmin() {
			t.Fatalf("expected admin scope, got role %v", scope.Role)
		}
	})

	t.Run("admin match is case-insensitive", func(t *testing.T) {
		scope := Resolve(adminEmail, "PRINCIPAL@Okul.Com", nil)
		if !scope.IsAdmin() {
			t.Fatalf("expected admin scope, got role %v", scope.Role)
		}
	})

	t.Run("admin wins over a teacher record", func(t *testing.T) {
		adminProfile := &shared.TeacherProfile{Email: adminEmail, Classes: []string{"9-C"}}
		scope := Resolve(adminEmail, adminEmail, adminProfile)
		if !scope.IsAdmin() {
			t.Fatalf("expected admin scope, got role %v", scope.Role)
		}
	})

	t.Run("teacher record yields scoped teacher", func(t *testing.T) {
		scope := Resolve(adminEmail, "Ahmet@okul.com", profile)
		if scope.Role != RoleTeacher {
			t.Fatalf("expected teacher role, got %v", scope.Role)
		}
		if scope.Email != "ahmet@okul.com" {
			t.Errorf("email not normalized: %q", scope.Email)
		}
		if len(scope.Classes) != 2 || len(scope.Subjects) != 1 {
			t.Errorf("scope lists not carried over: %+v", scope)
		}
	})

	t.Run("unknown identity is denied", func(t *testing.T) {
		scope := Resolve(adminEmail, "stranger@okul.com", nil)
		if !scope.IsDenied() {
			t.Fatalf("expected denied scope, got role %v", scope.Role)
		}
	})
}

func TestScopeChecks(t *testing.T) {
	teacher := Scope{
		Role:     RoleTeacher,
		Email:    "ahmet@okul.com",
		Classes:  []string{"11-A", "10-B"},
		Subjects: []string{"Matematik"},
	}
	admin := Scope{Role: RoleAdmin, Email: adminEmail}
	denied := Scope{Role: RoleDenied}

	t.Run("class access is exactly the authorized set", func(t *testing.T) {
		if !teacher.CanActOnClass("11-A") || !teacher.CanActOnClass("10-B") {
			t.Error("teacher denied an authorized class")
		}
		if teacher.CanActOnClass("12-C") {
			t.Error("teacher allowed a class outside the authorized set")
		}
		if !admin.CanActOnClass("12-C") {
			t.Error("admin should act on any class")
		}
		if denied.CanActOnClass("11-A") {
			t.Error("denied scope should act on nothing")
		}
	})

	t.Run("subject access", func(t *testing.T) {
		if !teacher.CanGradeSubject("Matematik") {
			t.Error("teacher denied an authorized subject")
		}
		if teacher.CanGradeSubject("Fizik") {
			t.Error("teacher allowed an unauthorized subject")
		}
		if !admin.CanGradeSubject("Fizik") {
			t.Error("admin should grade any subject")
		}
	})

	t.Run("author visibility", func(t *testing.T) {
		if !teacher.AuthorMatches("ahmet@okul.com") {
			t.Error("teacher should see own entries")
		}
		if teacher.AuthorMatches("other@okul.com") || teacher.AuthorMatches(shared.AdminAuthor) {
			t.Error("teacher should only see own entries")
		}
		if !admin.AuthorMatches("anyone@okul.com") {
			t.Error("admin should see every entry")
		}
	})

	t.Run("author identity written on entries", func(t *testing.T) {
		if got := admin.Author(); got != shared.AdminAuthor {
			t.Errorf("admin author = %q, want %q", got, shared.AdminAuthor)
		}
		if got := teacher.Author(); got != "ahmet@okul.com" {
			t.Errorf("teacher author = %q, want teacher email", got)
		}
	})
}
