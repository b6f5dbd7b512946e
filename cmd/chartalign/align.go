package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ChartAlign/internal/align"
	"ChartAlign/internal/config"
	"ChartAlign/internal/excel"
	"ChartAlign/internal/model"
	"ChartAlign/internal/prompt"
	"ChartAlign/internal/recorder"
)

func newAlignCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	var timeColumn string

	cmd := &cobra.Command{
		Use:   "align [files...]",
		Short: "Read spreadsheets, align each to a daily calendar, write <name>_df.xlsx",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runAlign(cfg, args, timeColumn)
		},
	}
	cmd.Flags().StringVar(&timeColumn, "time-column", "", "explicit time column header (skips auto-detection)")
	return cmd
}

func runAlign(cfg *config.Config, args []string, timeColumn string) error {
	var files []string
	var rejected []prompt.Rejection
	if len(args) == 0 {
		var err error
		files, err = prompt.Collect(os.Stdin, os.Stdout, cfg.Input.Extensions)
		if err != nil {
			return err
		}
	} else {
		files, rejected = prompt.Validate(args, cfg.Input.Extensions)
		for _, r := range rejected {
			log.Printf("[WARN] skipping %s", r)
		}
	}
	if len(files) == 0 && len(rejected) == 0 {
		return fmt.Errorf("no input files supplied")
	}
	if len(files) == 0 {
		return fmt.Errorf("no valid input files among %d supplied", len(rejected))
	}

	reader := excel.NewReader(cfg.Input.TimeColumns, cfg.Input.DateFormat)
	col := model.NewCollection()
	sources := make(map[string]string, len(files))
	var failures []align.Result

	for _, f := range files {
		name := seriesName(f)
		t, err := reader.Read(f, timeColumn)
		if err != nil {
			log.Printf("[ERROR] %s: %v", name, err)
			failures = append(failures, align.Result{Name: name, SourceFile: f, Err: err})
			continue
		}
		sources[name] = f
		col.Add(name, t)
		log.Printf("[INFO] %s: read %d rows from %s", name, len(t.Rows), f)
	}

	rep := align.Process(col)
	for i := range rep.Results {
		res := &rep.Results[i]
		res.SourceFile = sources[res.Name]
		if !res.OK() {
			continue
		}
		path, err := excel.Write(col.Tables[res.Name], cfg.Output.Dir, res.Name)
		if err != nil {
			res.Err = fmt.Errorf("write %s: %w", res.Name, err)
			log.Printf("[ERROR] %s: %v", res.Name, err)
			continue
		}
		log.Printf("[INFO] %s: wrote %s", res.Name, path)
	}
	rep.Results = append(rep.Results, failures...)

	// Rejections from argument validation count as failures in the report.
	for _, r := range rejected {
		rep.Results = append(rep.Results, align.Result{
			Name:       seriesName(r.Path),
			SourceFile: r.Path,
			Err:        fmt.Errorf("%s", r.Reason),
		})
	}

	recordRun(cfg, rep)
	log.Printf("[INFO] batch complete: %d succeeded, %d failed", rep.Succeeded(), rep.Failed())
	if rep.Succeeded() == 0 {
		return fmt.Errorf("all %d series failed", rep.Failed())
	}
	return nil
}

func recordRun(cfg *config.Config, rep *align.Report) {
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	series := make([]recorder.SeriesRecord, 0, len(rep.Results))
	for _, res := range rep.Results {
		s := recorder.SeriesRecord{
			Series:      res.Name,
			SourceFile:  res.SourceFile,
			RowsRead:    res.RowsRead,
			RowsAligned: res.RowsAligned,
			RowsFilled:  res.RowsFilled,
			Status:      "ok",
		}
		if !res.First.IsZero() {
			s.FirstDate = res.First.Format("2006-01-02")
			s.LastDate = res.Last.Format("2006-01-02")
		}
		if res.Err != nil {
			s.Status = "failed"
			s.Error = res.Err.Error()
		}
		series = append(series, s)
	}
	run := &recorder.RunRecord{
		Files:     len(rep.Results),
		Succeeded: rep.Succeeded(),
		Failed:    rep.Failed(),
	}
	if err := rec.RecordRun(run, series); err != nil {
		log.Printf("[WARN] record run: %v", err)
	}
}

func seriesName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
