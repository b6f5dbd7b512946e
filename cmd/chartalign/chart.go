package main

import (
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"ChartAlign/internal/chart"
	"ChartAlign/internal/config"
	"ChartAlign/internal/excel"
	"ChartAlign/internal/model"
)

func newChartCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "chart",
		Short: "Render the aligned series as a static HTML page of stacked charts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runChart(cfg)
		},
	}
}

func runChart(cfg *config.Config) error {
	col, err := loadAligned(cfg)
	if err != nil {
		return err
	}
	if col.Len() == 0 {
		return fmt.Errorf("no *_df.xlsx files in %s, run align first", cfg.Output.Dir)
	}

	payloads := chart.BuildPayloads(col, chartOptions(cfg))
	if err := chart.RenderStatic(payloads, cfg.Chart.Title, cfg.Chart.HTMLPath); err != nil {
		return err
	}
	log.Printf("[INFO] wrote %s (%d series)", cfg.Chart.HTMLPath, len(payloads))
	return nil
}

// loadAligned reads every *_df.xlsx from the output directory, in name
// order, skipping unreadable files with a warning.
func loadAligned(cfg *config.Config) (*model.Collection, error) {
	paths, err := filepath.Glob(filepath.Join(cfg.Output.Dir, "*_df.xlsx"))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", cfg.Output.Dir, err)
	}
	sort.Strings(paths)

	reader := excel.NewReader(cfg.Input.TimeColumns, cfg.Input.DateFormat)
	col := model.NewCollection()
	for _, p := range paths {
		name := strings.TrimSuffix(filepath.Base(p), "_df.xlsx")
		t, err := reader.ReadIndexed(p)
		if err != nil {
			log.Printf("[WARN] skip %s: %v", p, err)
			continue
		}
		col.Add(name, t)
	}
	return col, nil
}

func chartOptions(cfg *config.Config) chart.Options {
	return chart.Options{
		LogScaleMatch:     cfg.Chart.LogScaleMatch,
		Benchmark:         cfg.Chart.Benchmark,
		DrawdownThreshold: cfg.Chart.DrawdownThreshold,
		LookbackDays:      cfg.Chart.LookbackDays,
	}
}
