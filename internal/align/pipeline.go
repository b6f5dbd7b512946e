package align

import (
	"fmt"
	"log"
	"time"

	"ChartAlign/internal/model"
)

// Result describes the outcome of one series' processing.
type Result struct {
	Name        string
	SourceFile  string
	RowsRead    int
	RowsAligned int
	RowsFilled  int // synthesized calendar rows
	First, Last time.Time
	Err         error
}

// OK reports whether the series processed successfully.
func (r Result) OK() bool { return r.Err == nil }

// Report aggregates per-series outcomes of one pipeline run.
type Report struct {
	Results []Result
}

// Succeeded returns the number of series that processed cleanly.
func (r *Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of series that did not process.
func (r *Report) Failed() int { return len(r.Results) - r.Succeeded() }

// Process runs Normalize then Fill on every table in the collection,
// independently per series: each table gets its own calendar range, and a
// failure is captured in the report without aborting the remaining series.
// One progress line is logged per series per stage.
func Process(c *model.Collection) *Report {
	rep := &Report{}
	for _, name := range c.Order {
		t := c.Tables[name]
		res := Result{Name: name, RowsRead: len(t.Rows)}

		if err := Normalize(t); err != nil {
			res.Err = fmt.Errorf("normalize %s: %w", name, err)
			log.Printf("[ERROR] %s: normalize failed: %v", name, err)
			rep.Results = append(rep.Results, res)
			continue
		}
		observed := len(t.Rows)
		log.Printf("[INFO] %s: normalized, %d distinct days", name, observed)

		if err := Fill(t); err != nil {
			res.Err = fmt.Errorf("fill %s: %w", name, err)
			log.Printf("[ERROR] %s: gap fill failed: %v", name, err)
			rep.Results = append(rep.Results, res)
			continue
		}
		res.RowsAligned = len(t.Rows)
		res.RowsFilled = len(t.Rows) - observed
		res.First = t.Rows[0].Date
		res.Last = t.Rows[len(t.Rows)-1].Date
		log.Printf("[INFO] %s: gap filled, %d rows (%d synthesized), %s to %s",
			name, res.RowsAligned, res.RowsFilled,
			res.First.Format("2006-01-02"), res.Last.Format("2006-01-02"))

		rep.Results = append(rep.Results, res)
	}
	return rep
}
