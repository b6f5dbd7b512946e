package model

import "time"

// Value is a single cell: a float64 that may be absent.
// Absent cells exist before alignment and, after alignment, only in the
// range preceding a column's first real observation.
type Value struct {
	Float64 float64
	Valid   bool
}

// Float returns a pointer form of the value, nil when absent.
func (v Value) Float() *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// Row holds the observations of every column on one date.
type Row struct {
	Date  time.Time // UTC midnight after normalization
	Cells []Value   // parallel to Table.Columns
}

// Table is a date-indexed series of numeric columns.
type Table struct {
	TimeLabel string // header of the time column, preserved through to output
	Columns   []string
	Rows      []Row
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{
		TimeLabel: t.TimeLabel,
		Columns:   append([]string(nil), t.Columns...),
		Rows:      make([]Row, len(t.Rows)),
	}
	for i, r := range t.Rows {
		out.Rows[i] = Row{Date: r.Date, Cells: append([]Value(nil), r.Cells...)}
	}
	return out
}
