package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"studentcontrol/internal/shared"
)

func sampleClass() []shared.Student {
	when := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return []shared.Student{
		{
			StudentNumber: "101", Name: "Ayşe Yıldız", ClassName: "11-A",
			Grades: []shared.GradeEntry{
				{AssignmentName: "Matematik - 1. Sınav", Score: "80", Date: when, TeacherEmail: "ahmet@okul.com"},
				{AssignmentName: "Deneme", Score: "100", Date: when, TeacherEmail: shared.AdminAuthor},
			},
		},
		{
			StudentNumber: "102", Name: "Mehmet Demir", ClassName: "11-A",
			Grades: []shared.GradeEntry{
				{AssignmentName: "Matematik - 1. Sınav", Score: "G", Date: when, TeacherEmail: "ahmet@okul.com"},
			},
		},
		{
			StudentNumber: "103", Name: "Elif Şahin", ClassName: "11-A",
			Grades: []shared.GradeEntry{},
		},
	}
}

func TestBuildReport(t *testing.T) {
	t.Run("teacher sees only own assignment labels", func(t *testing.T) {
		rep := buildReport("11-A", sampleClass(), teacherScope)
		if len(rep.Assignments) != 1 || rep.Assignments[0] != "Matematik - 1. Sınav" {
			t.Fatalf("assignments = %v, want only the teacher's label", rep.Assignments)
		}
	})

	t.Run("admin sees every label in first-appearance order", func(t *testing.T) {
		rep := buildReport("11-A", sampleClass(), adminScope)
		want := []string{"Matematik - 1. Sınav", "Deneme"}
		if len(rep.Assignments) != len(want) {
			t.Fatalf("assignments = %v, want %v", rep.Assignments, want)
		}
		for i := range want {
			if rep.Assignments[i] != want[i] {
				t.Fatalf("assignments = %v, want %v", rep.Assignments, want)
			}
		}
	})

	t.Run("rows carry scores, no-score markers, and averages", func(t *testing.T) {
		rep := buildReport("11-A", sampleClass(), teacherScope)
		if len(rep.Rows) != 3 {
			t.Fatalf("rows = %d, want 3", len(rep.Rows))
		}

		first := rep.Rows[0]
		if first.Scores["Matematik - 1. Sınav"] != "80" || first.Average != "80.00" {
			t.Errorf("first row = %+v, want score 80 and average 80.00", first)
		}

		second := rep.Rows[1]
		if second.Scores["Matematik - 1. Sınav"] != "G" || second.Average != "0.00" {
			t.Errorf("second row = %+v, want G and average 0.00", second)
		}

		third := rep.Rows[2]
		if third.Scores["Matematik - 1. Sınav"] != NoData || third.Average != NoData {
			t.Errorf("third row = %+v, want no-score markers", third)
		}
	})

	t.Run("summary aggregates graded averages", func(t *testing.T) {
		rep := buildReport("11-A", sampleClass(), teacherScope)
		if rep.Summary == nil {
			t.Fatal("expected a summary")
		}
		if rep.Summary.Students != 3 || rep.Summary.Graded != 2 {
			t.Errorf("summary counts = %+v, want 3 students / 2 graded", rep.Summary)
		}
		if rep.Summary.Mean != 40 || rep.Summary.Max != 80 || rep.Summary.Min != 0 {
			t.Errorf("summary stats = %+v, want mean 40, min 0, max 80", rep.Summary)
		}
	})

	t.Run("empty class has no summary", func(t *testing.T) {
		rep := buildReport("9-Z", nil, adminScope)
		if rep.Summary != nil {
			t.Errorf("summary = %+v, want nil for empty class", rep.Summary)
		}
		if len(rep.Rows) != 0 || len(rep.Assignments) != 0 {
			t.Error("empty class should produce an empty report")
		}
	})
}

func TestExportFileName(t *testing.T) {
	if got := ExportFileName("10-A"); got != "10-A_Not_Raporu.xlsx" {
		t.Errorf("file name = %q, want 10-A_Not_Raporu.xlsx", got)
	}
}

func TestWriteExport(t *testing.T) {
	svc := &Service{}
	rep := buildReport("11-A", sampleClass(), adminScope)

	var buf bytes.Buffer
	if err := svc.WriteExport(&buf, rep); err != nil {
		t.Fatalf("WriteExport: %v", err)
	}

	file, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("exported workbook unreadable: %v", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Not_Raporu" {
		t.Fatalf("sheets = %v, want single Not_Raporu sheet", sheets)
	}

	rows, err := file.GetRows("Not_Raporu")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want header + 3 students", len(rows))
	}

	header := rows[0]
	if header[0] != "Okul No" || header[1] != "Ad Soyad" || header[len(header)-1] != "ORTALAMA" {
		t.Errorf("header = %v", header)
	}
	if rows[1][0] != "101" || rows[1][2] != "80" {
		t.Errorf("first data row = %v", rows[1])
	}
}
