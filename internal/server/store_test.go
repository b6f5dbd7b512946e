package server

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ChartAlign/internal/chart"
	"ChartAlign/internal/excel"
	"ChartAlign/internal/model"
)

func alignedTable(vals ...float64) *model.Table {
	t := &model.Table{TimeLabel: "date", Columns: []string{"close"}}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, v := range vals {
		t.Rows = append(t.Rows, model.Row{
			Date:  start.AddDate(0, 0, i),
			Cells: []model.Value{{Float64: v, Valid: true}},
		})
	}
	return t
}

func newTestStore(t *testing.T, dir string) *Store {
	t.Helper()
	return NewStore(dir, excel.NewReader(nil, ""), chart.Options{
		LogScaleMatch:     "spx",
		DrawdownThreshold: 0.10,
		LookbackDays:      5,
	})
}

func TestStore_ReloadDetectsChanges(t *testing.T) {
	dir := t.TempDir()
	if _, err := excel.Write(alignedTable(1, 2, 3), dir, "rates"); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	s := newTestStore(t, dir)
	changed, err := s.Reload()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !changed || len(s.Payloads()) != 1 {
		t.Fatalf("expected 1 payload after first reload, got changed=%v payloads=%d", changed, len(s.Payloads()))
	}

	changed, err = s.Reload()
	if err != nil {
		t.Fatalf("second reload: %v", err)
	}
	if changed {
		t.Error("unchanged directory should not report a change")
	}

	if _, err := excel.Write(alignedTable(10, 11, 12), dir, "spx500"); err != nil {
		t.Fatalf("write second fixture: %v", err)
	}
	changed, err = s.Reload()
	if err != nil {
		t.Fatalf("third reload: %v", err)
	}
	if !changed || len(s.Payloads()) != 2 {
		t.Fatalf("expected 2 payloads after new file, got changed=%v payloads=%d", changed, len(s.Payloads()))
	}
}

func TestStore_SkipsUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := excel.Write(alignedTable(1, 2), dir, "good"); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "junk_df.xlsx"), []byte("not a workbook"), 0644); err != nil {
		t.Fatalf("write junk: %v", err)
	}

	s := newTestStore(t, dir)
	if _, err := s.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	payloads := s.Payloads()
	if len(payloads) != 1 || payloads[0].Name != "good" {
		t.Fatalf("expected only the readable series, got %v", payloads)
	}
}

func TestHandleSeries(t *testing.T) {
	dir := t.TempDir()
	if _, err := excel.Write(alignedTable(1, 2, 3), dir, "spx500"); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	store := newTestStore(t, dir)
	if _, err := store.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	srv := New(":0", store, NewHub())

	rec := httptest.NewRecorder()
	srv.handleSeries(rec, httptest.NewRequest("GET", "/api/series", nil))
	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payloads []chart.Payload
	if err := json.Unmarshal(rec.Body.Bytes(), &payloads); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payloads) != 1 || payloads[0].Name != "spx500" {
		t.Fatalf("unexpected payloads %v", payloads)
	}
	if !payloads[0].LogScale {
		t.Error("spx500 should carry the log-scale flag")
	}
}
