package chart

import (
	"log"
	"strings"

	"ChartAlign/internal/model"
)

// Options control chart styling shared by the static page and the dashboard.
type Options struct {
	LogScaleMatch     string  // series whose name contains this use a log Y axis
	Benchmark         string  // series whose drawdowns shade every panel
	DrawdownThreshold float64 // fractional decline, e.g. 0.10
	LookbackDays      int
}

// Column is one value series within a payload; absent cells are nil.
type Column struct {
	Name   string     `json:"name"`
	Values []*float64 `json:"values"`
}

// DateRange is a drawdown window in 2006-01-02 form.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Payload is the JSON form of one aligned series, consumed by both the
// dashboard page and the static chart builder.
type Payload struct {
	Name      string      `json:"name"`
	TimeLabel string      `json:"time_label"`
	Dates     []string    `json:"dates"`
	Columns   []Column    `json:"columns"`
	LogScale  bool        `json:"log_scale"`
	Drawdowns []DateRange `json:"drawdowns"`
}

// BuildPayloads converts every table in the collection, in order. Drawdown
// windows come from the benchmark series' first column and are attached to
// all payloads so each panel shades the same periods; a missing benchmark
// is logged and skipped, never fatal.
func BuildPayloads(c *model.Collection, opts Options) []Payload {
	var shades []DateRange
	if opts.Benchmark != "" {
		if bt, ok := c.Tables[opts.Benchmark]; ok && len(bt.Columns) > 0 {
			windows, err := Drawdowns(bt, bt.Columns[0], opts.DrawdownThreshold, opts.LookbackDays)
			if err != nil {
				log.Printf("[WARN] drawdown detection on %s: %v", opts.Benchmark, err)
			}
			for _, w := range windows {
				shades = append(shades, DateRange{
					Start: w.Start.Format("2006-01-02"),
					End:   w.End.Format("2006-01-02"),
				})
			}
		} else {
			log.Printf("[WARN] benchmark series %q not loaded, skipping drawdown shading", opts.Benchmark)
		}
	}

	payloads := make([]Payload, 0, c.Len())
	for _, name := range c.Order {
		t := c.Tables[name]
		p := Payload{
			Name:      name,
			TimeLabel: t.TimeLabel,
			Dates:     make([]string, len(t.Rows)),
			LogScale:  logScale(name, opts.LogScaleMatch),
			Drawdowns: shades,
		}
		for i, row := range t.Rows {
			p.Dates[i] = row.Date.Format("2006-01-02")
		}
		for ci, col := range t.Columns {
			values := make([]*float64, len(t.Rows))
			for ri, row := range t.Rows {
				values[ri] = row.Cells[ci].Float()
			}
			p.Columns = append(p.Columns, Column{Name: col, Values: values})
		}
		payloads = append(payloads, p)
	}
	return payloads
}

func logScale(name, match string) bool {
	return match != "" && strings.Contains(strings.ToLower(name), strings.ToLower(match))
}
