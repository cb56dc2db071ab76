package report

import (
	"context"
	"io"
	"time"

	"github.com/montanaflynn/stats"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studentcontrol/internal/access"
	"studentcontrol/internal/shared"
	"studentcontrol/internal/xlsx"
)

// Export header labels and file naming.
const (
	sheetName    = "Not_Raporu"
	colNumber    = "Okul No"
	colName      = "Ad Soyad"
	colAverage   = "ORTALAMA"
	exportSuffix = "_Not_Raporu.xlsx"
)

// Service builds per-class grade reports.
type Service struct {
	studentsCol *mongo.Collection
}

// NewService creates a report Service instance.
func NewService(db *mongo.Database) *Service {
	return &Service{studentsCol: db.Collection(shared.ColStudents)}
}

// Row is one report line: a student, their score per visible assignment
// label, and their average.
type Row struct {
	StudentNumber string            `json:"studentNumber"`
	Name          string            `json:"name"`
	Scores        map[string]string `json:"scores"`
	Average       string            `json:"average"`
}

// Summary aggregates the per-student averages of a class.
type Summary struct {
	Students int     `json:"students"`
	Graded   int     `json:"graded"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

// Report is the full projection for one class under one caller's scope.
type Report struct {
	ClassName   string   `json:"className"`
	Assignments []string `json:"assignments"`
	Rows        []Row    `json:"rows"`
	Summary     *Summary `json:"summary,omitempty"`
}

// ClassReport loads the class roster and projects it into report rows.
// Assignment labels and every score considered are filtered to entries
// the caller's scope may see.
func (s *Service) ClassReport(ctx context.Context, scope access.Scope, className string) (*Report, error) {
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

	return buildReport(className, students, scope), nil
}

// WriteExport serializes a class report as a one-sheet xlsx workbook.
func (s *Service) WriteExport(w io.Writer, rep *Report) error {
	rows := make([][]string, 0, len(rep.Rows)+1)

	header := append([]string{colNumber, colName}, rep.Assignments...)
	header = append(header, colAverage)
	rows = append(rows, header)

	for _, row := range rep.Rows {
		cells := []string{row.StudentNumber, row.Name}
		for _, assignment := range rep.Assignments {
			cells = append(cells, row.Scores[assignment])
		}
		cells = append(cells, row.Average)
		rows = append(rows, cells)
	}

	return xlsx.WriteSheet(w, sheetName, rows)
}

// ExportFileName returns the download name for a class report export.
func ExportFileName(className string) string {
	return className + exportSuffix
}

// buildReport is the pure projection from a loaded roster to a Report.
func buildReport(className string, students []shared.Student, scope access.Scope) *Report {
	rep := &Report{ClassName: className, Rows: make([]Row, 0, len(students))}

	// Distinct assignment labels visible to the caller, in order of first
	// appearance across the ledgers.
	seen := make(map[string]bool)
	for _, student := range students {
		for _, entry := range student.Grades {
			if !scope.AuthorMatches(entry.TeacherEmail) {
				continue
			}
			if !seen[entry.AssignmentName] {
				seen[entry.AssignmentName] = true
				rep.Assignments = append(rep.Assignments, entry.AssignmentName)
			}
		}
	}

	var averages []float64
	for _, student := range students {
		row := Row{
			StudentNumber: student.StudentNumber,
			Name:          student.Name,
			Scores:        make(map[string]string, len(rep.Assignments)),
		}
		for _, assignment := range rep.Assignments {
			row.Scores[assignment] = scoreFor(student.Grades, assignment, scope)
		}

		avg, ok := Average(student.Grades, scope)
		row.Average = FormatAverage(avg, ok)
		if ok {
			averages = append(averages, avg)
		}
		rep.Rows = append(rep.Rows, row)
	}

	rep.Summary = summarize(len(students), averages)
	return rep
}

// scoreFor returns the student's score for an assignment label, or the
// no-score marker when absent. Only entries visible to the scope are
// considered, matching the author filter used for the average.
func scoreFor(entries []shared.GradeEntry, assignment string, scope access.Scope) string {
	for _, entry := range entries {
		if entry.AssignmentName == assignment && scope.AuthorMatches(entry.TeacherEmail) {
			return entry.Score
		}
	}
	return NoData
}

// summarize computes class-level statistics over the per-student
// averages. Returns nil when the class is empty.
func summarize(studentCount int, averages []float64) *Summary {
	if studentCount == 0 {
		return nil
	}
	summary := &Summary{Students: studentCount, Graded: len(averages)}
	if len(averages) == 0 {
		return summary
	}

	// Round the way the averages themselves are rendered.
	summary.Mean, _ = stats.Round(mustStat(stats.Mean(averages)), 2)
	summary.Median, _ = stats.Round(mustStat(stats.Median(averages)), 2)
	summary.Min, _ = stats.Min(averages)
	summary.Max, _ = stats.Max(averages)
	return summary
}

func mustStat(v float64, err error) float64 {
	if err != nil {
		return 0
	}
	return v
}
