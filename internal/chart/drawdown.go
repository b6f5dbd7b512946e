package chart

import (
	"errors"
	"time"

	"ChartAlign/internal/model"
)

// Window marks an inclusive date range where the benchmark was in drawdown.
type Window struct {
	Start, End time.Time
}

// Drawdowns scans an aligned table and returns the merged windows of dates
// where the named column sits at or below (1-threshold) times its maximum
// over the trailing lookback days (inclusive of the date itself). Absent
// cells never trigger and never count toward the trailing maximum.
func Drawdowns(t *model.Table, column string, threshold float64, lookback int) ([]Window, error) {
	if threshold <= 0 || threshold >= 1 {
		return nil, errors.New("threshold must be in (0, 1)")
	}
	if lookback <= 0 {
		return nil, errors.New("lookback must be positive")
	}
	col := t.ColumnIndex(column)
	if col < 0 {
		return nil, errors.New("column " + column + " not in table")
	}

	var windows []Window
	inWindow := false
	for i, row := range t.Rows {
		c := row.Cells[col]
		hit := false
		if c.Valid {
			// Rows are daily after alignment, so the trailing window is
			// an index range.
			max := c.Float64
			for j := i - 1; j >= 0 && j >= i-lookback; j-- {
				if v := t.Rows[j].Cells[col]; v.Valid && v.Float64 > max {
					max = v.Float64
				}
			}
			hit = c.Float64 <= max*(1-threshold)
		}
		switch {
		case hit && !inWindow:
			windows = append(windows, Window{Start: row.Date, End: row.Date})
			inWindow = true
		case hit:
			windows[len(windows)-1].End = row.Date
		default:
			inWindow = false
		}
	}
	return windows, nil
}
