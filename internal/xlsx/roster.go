// Package xlsx handles the spreadsheet boundary: parsing roster
// workbooks and writing report workbooks.
package xlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"studentcontrol/internal/shared"
)

// Recognized header synonyms for the roster columns. The first synonym
// present in the header wins.
var (
	numberColumns = []string{"Okul No", "No", "OkulNo"}
	nameColumns   = []string{"Ad Soyad", "Adı Soyadı", "Isim"}
)

// RosterRow is one parsed student row from a roster workbook.
type RosterRow struct {
	StudentNumber string
	Name          string
	Line          int // 1-based row number in the sheet, for error reporting
}

// ParseRoster reads the first sheet of a roster workbook. A header with
// no recognized student-number column or no recognized name column is a
// validation error before any row is returned; rows that are entirely
// blank are skipped.
func ParseRoster(r io.Reader) ([]RosterRow, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, shared.ValidationError{Field: "file", Message: "could not be opened as a workbook"}
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, shared.ValidationError{Field: "file", Message: "workbook has no sheets"}
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, shared.ValidationError{Field: "file", Message: "sheet has no data rows"}
	}

	header := rows[0]
	numberIdx, ok := findColumn(header, numberColumns)
	if !ok {
		return nil, shared.ValidationError{
			Field:   "file",
			Message: fmt.Sprintf("no student number column found (expected one of %s)", strings.Join(numberColumns, ", ")),
		}
	}
	nameIdx, ok := findColumn(header, nameColumns)
	if !ok {
		return nil, shared.ValidationError{
			Field:   "file",
			Message: fmt.Sprintf("no name column found (expected one of %s)", strings.Join(nameColumns, ", ")),
		}
	}

	var parsed []RosterRow
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		parsed = append(parsed, RosterRow{
			StudentNumber: cell(row, numberIdx),
			Name:          cell(row, nameIdx),
			Line:          i + 2,
		})
	}
	return parsed, nil
}

// findColumn returns the header index of the first matching synonym.
func findColumn(header []string, synonyms []string) (int, bool) {
	for _, synonym := range synonyms {
		for i, col := range header {
			if strings.TrimSpace(col) == synonym {
				return i, true
			}
		}
	}
	return 0, false
}

// cell returns the trimmed value at idx; GetRows trims trailing empty
// cells, so short rows are treated as blank cells.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, col := range row {
		if strings.TrimSpace(col) != "" {
			return false
		}
	}
	return true
}
