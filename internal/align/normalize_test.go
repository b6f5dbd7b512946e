package align

import (
	"testing"
	"time"

	"ChartAlign/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func val(f float64) model.Value { return model.Value{Float64: f, Valid: true} }

func table(cols []string, rows ...model.Row) *model.Table {
	return &model.Table{TimeLabel: "date", Columns: cols, Rows: rows}
}

func TestNormalize_TruncatesAndSorts(t *testing.T) {
	tb := table([]string{"close"},
		model.Row{Date: time.Date(2024, 1, 5, 16, 30, 0, 0, time.UTC), Cells: []model.Value{val(12)}},
		model.Row{Date: time.Date(2024, 1, 2, 9, 15, 0, 0, time.UTC), Cells: []model.Value{val(10)}},
	)
	if err := Normalize(tb); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(tb.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(tb.Rows))
	}
	if !tb.Rows[0].Date.Equal(day(2024, 1, 2)) || !tb.Rows[1].Date.Equal(day(2024, 1, 5)) {
		t.Errorf("rows not sorted by day: %v, %v", tb.Rows[0].Date, tb.Rows[1].Date)
	}
	if tb.TimeLabel != "date" {
		t.Errorf("time label not preserved: %q", tb.TimeLabel)
	}
}

func TestNormalize_DuplicateDayLastWins(t *testing.T) {
	tb := table([]string{"open", "close"},
		model.Row{Date: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), Cells: []model.Value{val(1), val(2)}},
		model.Row{Date: time.Date(2024, 1, 2, 16, 0, 0, 0, time.UTC), Cells: []model.Value{val(3), {}}},
	)
	if err := Normalize(tb); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(tb.Rows) != 1 {
		t.Fatalf("expected 1 merged row, got %d", len(tb.Rows))
	}
	cells := tb.Rows[0].Cells
	if cells[0].Float64 != 3 {
		t.Errorf("later valid cell should win, got %v", cells[0])
	}
	if !cells[1].Valid || cells[1].Float64 != 2 {
		t.Errorf("absent later cell must not erase earlier value, got %v", cells[1])
	}
}

func TestNormalize_EmptyTable(t *testing.T) {
	if err := Normalize(table([]string{"close"})); err == nil {
		t.Error("expected error for empty table")
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	tb := table([]string{"close"},
		model.Row{Date: time.Date(2024, 1, 2, 14, 0, 0, 0, time.UTC), Cells: []model.Value{val(10)}},
		model.Row{Date: time.Date(2024, 1, 4, 14, 0, 0, 0, time.UTC), Cells: []model.Value{val(11)}},
	)
	if err := Normalize(tb); err != nil {
		t.Fatalf("first normalize: %v", err)
	}
	snapshot := tb.Clone()
	if err := Normalize(tb); err != nil {
		t.Fatalf("second normalize: %v", err)
	}
	assertTablesEqual(t, snapshot, tb)
}

func assertTablesEqual(t *testing.T, want, got *model.Table) {
	t.Helper()
	if want.TimeLabel != got.TimeLabel {
		t.Fatalf("time label %q != %q", got.TimeLabel, want.TimeLabel)
	}
	if len(want.Rows) != len(got.Rows) {
		t.Fatalf("row count %d != %d", len(got.Rows), len(want.Rows))
	}
	for i := range want.Rows {
		if !want.Rows[i].Date.Equal(got.Rows[i].Date) {
			t.Fatalf("row %d date %v != %v", i, got.Rows[i].Date, want.Rows[i].Date)
		}
		for j := range want.Rows[i].Cells {
			if want.Rows[i].Cells[j] != got.Rows[i].Cells[j] {
				t.Fatalf("row %d cell %d %v != %v", i, j, got.Rows[i].Cells[j], want.Rows[i].Cells[j])
			}
		}
	}
}
