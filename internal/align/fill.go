package align

import (
	"errors"
	"fmt"

	"ChartAlign/internal/model"
)

// Fill expands the table to one row per calendar day from its first to its
// last date inclusive, forward-filling each synthesized or absent cell with
// the most recent earlier valid value for that column. Cells before a
// column's first real observation stay absent. The input must already be
// normalized (day-granularity dates, strictly increasing); Fill errors
// rather than guess otherwise. Single pass: O(days × columns).
// Running Fill on an already-filled table is a no-op.
func Fill(t *model.Table) error {
	if t == nil || len(t.Rows) == 0 {
		return errors.New("table has no rows")
	}
	for i, r := range t.Rows {
		if !r.Date.Equal(Day(r.Date)) {
			return fmt.Errorf("row %d date %s carries a time-of-day component, normalize first", i, r.Date)
		}
		if i > 0 && !t.Rows[i-1].Date.Before(r.Date) {
			return fmt.Errorf("dates not strictly increasing at row %d (%s), normalize first", i, r.Date.Format("2006-01-02"))
		}
	}

	first := t.Rows[0].Date
	last := t.Rows[len(t.Rows)-1].Date
	days := int(last.Sub(first).Hours()/24) + 1

	out := make([]model.Row, 0, days)
	lastKnown := make([]model.Value, len(t.Columns))
	src := 0
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if src < len(t.Rows) && t.Rows[src].Date.Equal(d) {
			row := t.Rows[src]
			src++
			for i := range row.Cells {
				if row.Cells[i].Valid {
					lastKnown[i] = row.Cells[i]
				} else {
					row.Cells[i] = lastKnown[i]
				}
			}
			out = append(out, row)
			continue
		}
		cells := make([]model.Value, len(t.Columns))
		copy(cells, lastKnown)
		out = append(out, model.Row{Date: d, Cells: cells})
	}
	t.Rows = out
	return nil
}
