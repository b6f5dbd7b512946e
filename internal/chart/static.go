package chart

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderStatic writes the stacked chart page for the given payloads to
// htmlPath, one line-chart panel per series.
func RenderStatic(payloads []Payload, title, htmlPath string) error {
	if len(payloads) == 0 {
		return fmt.Errorf("no series to chart")
	}

	page := components.NewPage()
	page.PageTitle = title
	for _, p := range payloads {
		page.AddCharts(linePanel(p))
	}

	if dir := filepath.Dir(htmlPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create chart dir: %w", err)
		}
	}
	f, err := os.Create(htmlPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", htmlPath, err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		return fmt.Errorf("render charts: %w", err)
	}
	return nil
}

func linePanel(p Payload) *charts.Line {
	yType := "value"
	yTitle := "Value"
	if p.LogScale {
		yType = "log"
		yTitle = "Value (Log Scale)"
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "360px"}),
		charts.WithTitleOpts(opts.Title{Title: p.Name}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:        opts.Bool(true),
			Trigger:     "axis",
			AxisPointer: &opts.AxisPointer{Type: "cross"},
		}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: p.TimeLabel}),
		charts.WithYAxisOpts(opts.YAxis{Type: yType, Name: yTitle}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	line.SetXAxis(p.Dates)
	for _, col := range p.Columns {
		data := make([]opts.LineData, len(col.Values))
		for i, v := range col.Values {
			if v != nil {
				data[i] = opts.LineData{Value: *v}
			} else {
				data[i] = opts.LineData{Value: nil}
			}
		}
		line.AddSeries(fmt.Sprintf("%s - %s", p.Name, col.Name), data)
	}

	var marks []charts.SeriesOpts
	for _, w := range p.Drawdowns {
		marks = append(marks, charts.WithMarkAreaNameCoordItemOpts(opts.MarkAreaNameCoordItem{
			Name:        "drawdown",
			Coordinate0: []interface{}{w.Start},
			Coordinate1: []interface{}{w.End},
			ItemStyle:   &opts.ItemStyle{Color: "rgba(200, 60, 60, 0.10)"},
		}))
	}
	if len(marks) > 0 {
		line.SetSeriesOptions(marks...)
	}
	return line
}
