package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteSheet writes a single-sheet workbook with the given rows, first
// row being the header.
func WriteSheet(w io.Writer, sheet string, rows [][]string) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := file.SetSheetRow(sheet, cellRef, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	return file.Write(w)
}
