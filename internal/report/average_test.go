package report

import (
	"testing"

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

func entry(score, author string) shared.GradeEntry {
	return shared.GradeEntry{AssignmentName: "Sınav", Score: score, TeacherEmail: author}
}

func TestAverage(t *testing.T) {
	t.Run("empty ledger has no data", func(t *testing.T) {
		if _, ok := Average(nil, teacherScope); ok {
			t.Error("empty ledger should have no data")
		}
		if _, ok := Average([]shared.GradeEntry{}, adminScope); ok {
			t.Error("empty ledger should have no data for admin too")
		}
	})

	t.Run("plain numeric average", func(t *testing.T) {
		avg, ok := Average([]shared.GradeEntry{
			entry("80", "ahmet@okul.com"),
			entry("60", "ahmet@okul.com"),
		}, teacherScope)
		if !ok || avg != 70 {
			t.Fatalf("avg = %v ok=%v, want 70", avg, ok)
		}
	})

	t.Run("exempt-counted lowers the average without adding score", func(t *testing.T) {
		// G counts in the denominator but contributes nothing to the sum.
		avg, ok := Average([]shared.GradeEntry{
			entry("80", "ahmet@okul.com"),
			entry("G", "ahmet@okul.com"),
		}, teacherScope)
		if !ok || avg != 40 {
			t.Fatalf("avg = %v ok=%v, want 40.00", avg, ok)
		}
	})

	t.Run("a lone exempt-counted entry is zero, not no-data", func(t *testing.T) {
		avg, ok := Average([]shared.GradeEntry{entry("G", "ahmet@okul.com")}, teacherScope)
		if !ok {
			t.Fatal("lone G should count as data")
		}
		if avg != 0 {
			t.Errorf("avg = %v, want 0 (0 summed over 1 counted)", avg)
		}
	})

	t.Run("exempt-uncounted entries are excluded entirely", func(t *testing.T) {
		if _, ok := Average([]shared.GradeEntry{
			entry("R", "ahmet@okul.com"),
			entry("İ", "ahmet@okul.com"),
		}, teacherScope); ok {
			t.Error("R and İ alone should yield no data")
		}
	})

	t.Run("unselected sentinel is excluded entirely", func(t *testing.T) {
		if _, ok := Average([]shared.GradeEntry{entry("Not Seçin", "ahmet@okul.com")}, teacherScope); ok {
			t.Error("unselected sentinel should yield no data")
		}
	})

	t.Run("teacher only sees own entries", func(t *testing.T) {
		entries := []shared.GradeEntry{
			entry("100", "other@okul.com"),
			entry("100", shared.AdminAuthor),
			entry("40", "ahmet@okul.com"),
		}
		avg, ok := Average(entries, teacherScope)
		if !ok || avg != 40 {
			t.Fatalf("avg = %v ok=%v, want 40 (only own entry)", avg, ok)
		}
	})

	t.Run("admin sees all entries", func(t *testing.T) {
		entries := []shared.GradeEntry{
			entry("100", "other@okul.com"),
			entry("40", "ahmet@okul.com"),
		}
		avg, ok := Average(entries, adminScope)
		if !ok || avg != 70 {
			t.Fatalf("avg = %v ok=%v, want 70", avg, ok)
		}
	})

	t.Run("result rounds to two decimals", func(t *testing.T) {
		entries := []shared.GradeEntry{
			entry("100", "ahmet@okul.com"),
			entry("90", "ahmet@okul.com"),
			entry("90", "ahmet@okul.com"),
		}
		avg, ok := Average(entries, teacherScope)
		if !ok || avg != 93.33 {
			t.Fatalf("avg = %v ok=%v, want 93.33", avg, ok)
		}
	})
}

func TestFormatAverage(t *testing.T) {
	if got := FormatAverage(0, false); got != "-" {
		t.Errorf("no-data format = %q, want -", got)
	}
	if got := FormatAverage(40, true); got != "40.00" {
		t.Errorf("format = %q, want 40.00", got)
	}
	if got := FormatAverage(93.33, true); got != "93.33" {
		t.Errorf("format = %q, want 93.33", got)
	}
}
