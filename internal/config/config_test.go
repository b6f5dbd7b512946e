package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Output.Dir != "output" || cfg.Server.Addr != ":8080" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Chart.DrawdownThreshold != 0.10 || cfg.Chart.LookbackDays != 30 {
		t.Errorf("chart defaults not applied: %+v", cfg.Chart)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "output:\n  dir: processed\nchart:\n  benchmark: spx500\n  drawdown_threshold: 0.2\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SERVER_ADDR", ":9999")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Output.Dir != "processed" {
		t.Errorf("file value lost: %q", cfg.Output.Dir)
	}
	if cfg.Chart.Benchmark != "spx500" || cfg.Chart.DrawdownThreshold != 0.2 {
		t.Errorf("chart values lost: %+v", cfg.Chart)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("env override lost: %q", cfg.Server.Addr)
	}
}

func TestValidate_RejectsBadThreshold(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.Chart.DrawdownThreshold = 1.5
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for threshold >= 1")
	}
}
