package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/talent-match/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes job postings, candidate profiles, account management, and candidate ranking over REST.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Port = servePort
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}

	log, err := buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	st, err := buildStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect store: %w", err)
	}

	engine, cleanup, err := buildEngine(ctx, cfg, log)
	if err != nil {
		st.Close()
		return err
	}
	defer cleanup()

	srv, err := server.New(server.Config{
		Port: cfg.Port,
		TopN: cfg.MatchTopN,
	}, st, engine, log)
	if err != nil {
		st.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
