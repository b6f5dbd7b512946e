package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Input struct {
		TimeColumns []string `yaml:"time_columns"`
		DateFormat  string   `yaml:"date_format"`
		Extensions  []string `yaml:"extensions"`
	} `yaml:"input"`
	Output struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`
	Chart struct {
		Title             string  `yaml:"title"`
		HTMLPath          string  `yaml:"html_path"`
		LogScaleMatch     string  `yaml:"log_scale_match"`
		Benchmark         string  `yaml:"benchmark"`
		DrawdownThreshold float64 `yaml:"drawdown_threshold"`
		LookbackDays      int     `yaml:"lookback_days"`
	} `yaml:"chart"`
	Server struct {
		Addr       string `yaml:"addr"`
		ReloadCron string `yaml:"reload_cron"`
	} `yaml:"server"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error: the defaults
// alone make a usable config.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("RELOAD_CRON"); v != "" {
		cfg.Server.ReloadCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if len(cfg.Input.TimeColumns) == 0 {
		cfg.Input.TimeColumns = []string{"date", "time", "timestamp", "datetime", "trading_date"}
	}
	if len(cfg.Input.Extensions) == 0 {
		cfg.Input.Extensions = []string{".xlsx"}
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "output"
	}
	if cfg.Chart.Title == "" {
		cfg.Chart.Title = "Aligned Charts"
	}
	if cfg.Chart.HTMLPath == "" {
		cfg.Chart.HTMLPath = "aligned_charts.html"
	}
	if cfg.Chart.LogScaleMatch == "" {
		cfg.Chart.LogScaleMatch = "spx"
	}
	if cfg.Chart.DrawdownThreshold == 0 {
		cfg.Chart.DrawdownThreshold = 0.10
	}
	if cfg.Chart.LookbackDays == 0 {
		cfg.Chart.LookbackDays = 30
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ReloadCron == "" {
		cfg.Server.ReloadCron = "*/30 * * * * *"
	}

	return cfg, nil
}

// Validate checks that all required fields are usable.
func (c *Config) Validate() error {
	if len(c.Input.TimeColumns) == 0 {
		return fmt.Errorf("input.time_columns must not be empty")
	}
	if len(c.Input.Extensions) == 0 {
		return fmt.Errorf("input.extensions must not be empty")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	if c.Chart.DrawdownThreshold <= 0 || c.Chart.DrawdownThreshold >= 1 {
		return fmt.Errorf("chart.drawdown_threshold must be in (0, 1)")
	}
	if c.Chart.LookbackDays <= 0 {
		return fmt.Errorf("chart.lookback_days must be positive")
	}
	return nil
}
