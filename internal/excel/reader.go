package excel

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"ChartAlign/internal/model"
)

// Reader loads time-series tables from .xlsx files.
type Reader struct {
	TimeColumns []string // candidate time-column headers, matched case-insensitively
	DateFormat  string   // strict layout tried before the permissive list, optional
}

// NewReader creates a Reader with the given time-column candidates and
// optional strict date layout.
func NewReader(timeColumns []string, dateFormat string) *Reader {
	return &Reader{TimeColumns: timeColumns, DateFormat: dateFormat}
}

// Read loads the first sheet of an .xlsx file into a table. The time column
// is detected by header match against the candidate list unless timeColumn
// names it explicitly. Rows come back sorted by date; duplicate dates are
// left for Normalize to resolve. Blank numeric cells are absent; a date
// cell no layout can parse is a terminal error for the file.
func (r *Reader) Read(path, timeColumn string) (*model.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%s: read sheet %s: %w", path, sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s: sheet %s has no data rows", path, sheets[0])
	}

	header := rows[0]
	timeIdx, err := r.findTimeColumn(header, timeColumn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	t := &model.Table{TimeLabel: strings.TrimSpace(header[timeIdx])}
	valueIdx := make([]int, 0, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == timeIdx || h == "" {
			continue
		}
		t.Columns = append(t.Columns, h)
		valueIdx = append(valueIdx, i)
	}
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("%s: no value columns besides %q", path, t.TimeLabel)
	}

	for rowNum, raw := range rows[1:] {
		if isBlankRow(raw) {
			continue
		}
		if timeIdx >= len(raw) || strings.TrimSpace(raw[timeIdx]) == "" {
			return nil, fmt.Errorf("%s: row %d has no date", path, rowNum+2)
		}
		date, err := parseDate(raw[timeIdx], r.DateFormat)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, rowNum+2, err)
		}
		cells := make([]model.Value, len(valueIdx))
		for j, idx := range valueIdx {
			if idx >= len(raw) {
				continue
			}
			s := strings.TrimSpace(raw[idx])
			if s == "" {
				continue
			}
			v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
			if err != nil {
				log.Printf("[WARN] %s row %d column %s: non-numeric value %q treated as absent", path, rowNum+2, t.Columns[j], s)
				continue
			}
			cells[j] = model.Value{Float64: v, Valid: true}
		}
		t.Rows = append(t.Rows, model.Row{Date: date, Cells: cells})
	}
	if len(t.Rows) == 0 {
		return nil, fmt.Errorf("%s: sheet %s has no data rows", path, sheets[0])
	}

	sort.SliceStable(t.Rows, func(i, j int) bool { return t.Rows[i].Date.Before(t.Rows[j].Date) })
	return t, nil
}

// ReadIndexed loads a table we wrote ourselves: the first column is the
// time column regardless of its header.
func (r *Reader) ReadIndexed(path string) (*model.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	rows, err := f.GetRows(f.GetSheetList()[0])
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("%s: read sheet: %w", path, err)
	}
	if len(rows) < 1 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%s: missing header row", path)
	}
	return r.Read(path, rows[0][0])
}

func (r *Reader) findTimeColumn(header []string, explicit string) (int, error) {
	if explicit != "" {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), explicit) {
				return i, nil
			}
		}
		return 0, fmt.Errorf("time column %q not found in header %v", explicit, header)
	}
	for i, h := range header {
		h = strings.TrimSpace(h)
		for _, cand := range r.TimeColumns {
			if strings.EqualFold(h, cand) {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("no time column detected (tried %s), pass --time-column", strings.Join(r.TimeColumns, ", "))
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
