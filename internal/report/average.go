// Package report projects student grade ledgers into per-class report
// rows and spreadsheet exports.
package report

import (
	"math"
	"strconv"

	"studentcontrol/internal/access"
	"studentcontrol/internal/grading"
	"studentcontrol/internal/shared"
)

// NoData is the rendering of an average with no countable entries.
const NoData = "-"

// Average computes the display average of a grade ledger under a
// caller's scope. Pure and side-effect free.
//
// Entries whose author the scope cannot see are dropped (the
// administrator sees all). Of the rest, numeric scores add to both sum
// and count; the exempt-counted code adds to the count but not the sum;
// exempt-uncounted codes and the unselected sentinel contribute to
// neither. The second return value is false when nothing was countable.
func Average(entries []shared.GradeEntry, scope access.Scope) (float64, bool) {
	var sum, count int

	for _, entry := range entries {
		if !scope.AuthorMatches(entry.TeacherEmail) {
			continue
		}
		score, err := grading.ParseScore(entry.Score)
		if err != nil {
			// Unknown stored code: excluded, same as exempt-uncounted.
			continue
		}
		switch score.Kind {
		case grading.ScoreNumeric:
			sum += score.Value
			count++
		case grading.ScoreExemptCounted:
			count++
		}
	}

	if count == 0 {
		return 0, false
	}
	avg := float64(sum) / float64(count)
	return math.Round(avg*100) / 100, true
}

// FormatAverage renders an Average result with two decimal places, or
// the no-data marker.
func FormatAverage(avg float64, ok bool) string {
	if !ok {
		return NoData
	}
	return strconv.FormatFloat(avg, 'f', 2, 64)
}
