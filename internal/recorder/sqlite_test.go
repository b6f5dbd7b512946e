package recorder

import (
	"path/filepath"
	"testing"
)

func TestSQLiteRecorder_RecordRun(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer r.Close()

	run := &RunRecord{Files: 2, Succeeded: 1, Failed: 1}
	series := []SeriesRecord{
		{Series: "spx500", SourceFile: "spx500.xlsx", RowsRead: 2, RowsAligned: 4, RowsFilled: 2,
			FirstDate: "2024-01-02", LastDate: "2024-01-05", Status: "ok"},
		{Series: "broken", SourceFile: "broken.xlsx", Status: "failed", Error: "normalize broken: table has no rows"},
	}
	if err := r.RecordRun(run, series); err != nil {
		t.Fatalf("record run: %v", err)
	}

	var runs, results int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM align_runs`).Scan(&runs); err != nil {
		t.Fatalf("count runs: %v", err)
	}
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM series_results`).Scan(&results); err != nil {
		t.Fatalf("count results: %v", err)
	}
	if runs != 1 || results != 2 {
		t.Errorf("expected 1 run / 2 results, got %d / %d", runs, results)
	}

	var status, errMsg string
	if err := r.db.QueryRow(`SELECT status, error FROM series_results WHERE series = 'broken'`).Scan(&status, &errMsg); err != nil {
		t.Fatalf("query broken: %v", err)
	}
	if status != "failed" || errMsg == "" {
		t.Errorf("expected failed status with error, got %q / %q", status, errMsg)
	}
}
