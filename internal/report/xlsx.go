package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/fxreport-dev/fxreport/internal/model"
)

// SheetName is the single worksheet in the exported workbook.
const SheetName = "Rates"

// SaveXLSX writes the report rows to an XLSX workbook at path, creating
// parent directories and overwriting any prior file.
func SaveXLSX(path string, rows []model.ReportRow, places int32) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := []interface{}{"Currency Code", "Rate", "Mean Historical Rate"}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("resolving cell for row %d: %w", i+2, err)
		}
		values := []interface{}{
			string(row.Currency),
			formatValue(row.Rate, places),
			formatValue(row.Mean, places),
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4CAF50"}},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "C1", headerStyle); err != nil {
		return fmt.Errorf("styling header row: %w", err)
	}
	if err := f.SetColWidth(SheetName, "A", "C", 22); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating workbook dir: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}
