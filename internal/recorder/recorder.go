package recorder

// RunRecord summarizes one align batch.
type RunRecord struct {
	Files     int
	Succeeded int
	Failed    int
}

// SeriesRecord holds the outcome of one series within a run.
type SeriesRecord struct {
	Series      string
	SourceFile  string
	RowsRead    int
	RowsAligned int
	RowsFilled  int
	FirstDate   string
	LastDate    string
	Status      string // "ok" or "failed"
	Error       string
}

// Recorder persists batch history for later inspection.
type Recorder interface {
	RecordRun(run *RunRecord, series []SeriesRecord) error
	Close() error
}
