package align

import (
	"errors"
	"sort"
	"time"

	"ChartAlign/internal/model"
)

// Day truncates t to calendar-day granularity in UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Normalize truncates every row's date to day granularity and sorts the
// table by date. When two rows fall on the same day after truncation, the
// later row wins cell by cell: its valid cells overwrite, its absent cells
// do not erase earlier values. The time-column label is preserved.
// Running Normalize on an already-normalized table is a no-op.
func Normalize(t *model.Table) error {
	if t == nil || len(t.Rows) == 0 {
		return errors.New("table has no rows")
	}

	merged := make(map[time.Time]*model.Row, len(t.Rows))
	for _, r := range t.Rows {
		d := Day(r.Date)
		m, ok := merged[d]
		if !ok {
			row := model.Row{Date: d, Cells: make([]model.Value, len(t.Columns))}
			copy(row.Cells, r.Cells)
			merged[d] = &row
			continue
		}
		for i, c := range r.Cells {
			if i < len(m.Cells) && c.Valid {
				m.Cells[i] = c
			}
		}
	}

	rows := make([]model.Row, 0, len(merged))
	for _, r := range merged {
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	t.Rows = rows
	return nil
}
