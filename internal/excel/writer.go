package excel

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"ChartAlign/internal/model"
)

// Write saves an aligned table as <name>_df.xlsx under dir, with the time
// label as the first header followed by the column names. Dates are written
// as 2006-01-02 strings; absent cells stay blank. Returns the output path.
func Write(t *model.Table, dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]interface{}, 0, len(t.Columns)+1)
	header = append(header, t.TimeLabel)
	for _, c := range t.Columns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", fmt.Errorf("row %d: %w", i, err)
		}
		vals := make([]interface{}, 0, len(row.Cells)+1)
		vals = append(vals, row.Date.Format("2006-01-02"))
		for _, c := range row.Cells {
			if c.Valid {
				vals = append(vals, c.Float64)
			} else {
				vals = append(vals, nil)
			}
		}
		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			return "", fmt.Errorf("write row %d: %w", i, err)
		}
	}

	path := filepath.Join(dir, name+"_df.xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}
