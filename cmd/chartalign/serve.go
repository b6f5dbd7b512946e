package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"ChartAlign/internal/config"
	"ChartAlign/internal/excel"
	"ChartAlign/internal/server"
)

func newServeCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the aligned charts as a live dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runServe(cfg)
		},
	}
}

func runServe(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := excel.NewReader(cfg.Input.TimeColumns, cfg.Input.DateFormat)
	store := server.NewStore(cfg.Output.Dir, reader, chartOptions(cfg))
	if _, err := store.Reload(); err != nil {
		log.Printf("[WARN] initial load: %v", err)
	}

	hub := server.NewHub()
	go hub.Run(ctx)

	reloader, err := server.NewReloader(cfg.Server.ReloadCron, store, hub)
	if err != nil {
		return err
	}
	reloader.Start()
	defer reloader.Stop()

	srv := server.New(cfg.Server.Addr, store, hub)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Println("[INFO] dashboard stopped")
	return nil
}
