package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/npratt/powerdash/internal/forecast"
)

// PreviewSheet is the worksheet name used for the table preview.
const PreviewSheet = "Preview"

// XLSX writes rows as a single-sheet workbook with the preview headers.
// Numeric fields are stored as numbers, text as text, and absent fields
// as empty cells.
func XLSX(w io.Writer, rows []forecast.Row) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", PreviewSheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	for col, header := range forecast.PreviewHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(PreviewSheet, cell, header); err != nil {
			return fmt.Errorf("write header %s: %w", cell, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(forecast.PreviewHeaders), 1)
	if err := f.SetCellStyle(PreviewSheet, "A1", lastHeader, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for r, row := range rows {
		for col, field := range forecast.PreviewFields {
			v := row.Field(field)
			if v.Kind == forecast.KindAbsent {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return err
			}
			var value interface{} = v.String()
			if num, ok := v.Float(); ok {
				value = num
			}
			if err := f.SetCellValue(PreviewSheet, cell, value); err != nil {
				return fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(forecast.PreviewHeaders))
	if err := f.SetColWidth(PreviewSheet, "A", lastCol, 18); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
