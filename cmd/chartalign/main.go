package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"ChartAlign/internal/config"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "chartalign",
		Short:         "Align spreadsheet time series and render synchronized charts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config (default configs/config.yaml, CONFIG_PATH overrides)")

	loadConfig := func() (*config.Config, error) {
		path := cfgPath
		if path == "" {
			path = "configs/config.yaml"
			if v := os.Getenv("CONFIG_PATH"); v != "" {
				path = v
			}
		}
		cfg, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	root.AddCommand(
		newAlignCmd(loadConfig),
		newChartCmd(loadConfig),
		newServeCmd(loadConfig),
	)
	return root
}
