package main

import (
	"fmt"

	"github.com/jonathan/job-screening/internal/config"
	"github.com/jonathan/job-screening/internal/server"
	"github.com/jonathan/job-screening/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var (
	servePort    int
	serveMemory  bool
	serveBrowser bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for analyzing jobs and résumés, matching and interview scheduling.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveMemory, "memory", false, "Use an in-memory store instead of PostgreSQL")
	serveCmd.Flags().BoolVar(&serveBrowser, "browser", false, "Render thin job posting pages in headless Chrome")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	ctx := cmd.Context()

	store, closeStore, err := a.openStore(ctx, serveMemory)
	if err != nil {
		return err
	}
	defer closeStore()

	svc, closeSvc, err := a.newService(ctx, serviceOptions{store: store, useBrowser: serveBrowser})
	if err != nil {
		return err
	}
	defer closeSvc()

	port := a.cfg.Port
	if servePort > 0 {
		port = servePort
	}

	var jwtCfg *config.JWTConfig
	if a.cfg.AuthEnabled() {
		if jwtCfg, err = a.cfg.JWT(); err != nil {
			return fmt.Errorf("failed to configure auth: %w", err)
		}
	} else {
		a.logger.Warn("JWT_SECRET not set, API authentication is disabled")
	}

	srv := server.New(svc, server.Config{
		Port:      port,
		JWT:       jwtCfg,
		RateLimit: ratelimit.LoadConfig(),
	}, a.logger)
	return srv.Start(ctx)
}
