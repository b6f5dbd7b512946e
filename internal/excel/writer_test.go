package excel

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"ChartAlign/internal/model"
)

func TestWrite_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	tb := &model.Table{
		TimeLabel: "trading_date",
		Columns:   []string{"close", "volume"},
		Rows: []model.Row{
			{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Cells: []model.Value{{Float64: 10, Valid: true}, {}}},
			{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Cells: []model.Value{{Float64: 12, Valid: true}, {Float64: 900, Valid: true}}},
		},
	}

	path, err := Write(tb, dir, "spx")
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if filepath.Base(path) != "spx_df.xlsx" {
		t.Errorf("unexpected output name %s", path)
	}

	got, err := NewReader(nil, "").ReadIndexed(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got.TimeLabel != "trading_date" {
		t.Errorf("time label lost: %q", got.TimeLabel)
	}
	if len(got.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got.Rows))
	}
	if got.Rows[0].Cells[1].Valid {
		t.Error("absent cell should stay blank through a round trip")
	}
	if c := got.Rows[1].Cells[0]; c.Float64 != 12 {
		t.Errorf("expected close 12, got %v", c)
	}
}

func TestWrite_HeaderOrder(t *testing.T) {
	dir := t.TempDir()
	tb := &model.Table{
		TimeLabel: "date",
		Columns:   []string{"b", "a"},
		Rows: []model.Row{
			{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Cells: []model.Value{{Float64: 1, Valid: true}, {Float64: 2, Valid: true}}},
		},
	}
	path, err := Write(tb, dir, "order")
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	want := []string{"date", "b", "a"}
	for i, w := range want {
		if rows[0][i] != w {
			t.Errorf("header %d: expected %q, got %q", i, w, rows[0][i])
		}
	}
	if rows[1][0] != "2024-01-02" {
		t.Errorf("expected date string index, got %q", rows[1][0])
	}
}
