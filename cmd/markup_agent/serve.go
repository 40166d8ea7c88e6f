package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/markup-validator/internal/logging"
	"github.com/jonathan/markup-validator/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort       int
	serveRequestLog string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server that validates, formats and previews markup, with a
websocket endpoint for live validation. Every request is logged as a JSON line.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default from config, 8080)")
	serveCmd.Flags().StringVar(&serveRequestLog, "request-log", "", "Path of the request log (default from config, log.txt)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	port := cfg.Port
	if cmd.Flags().Changed("port") {
		port = servePort
	}
	logPath := cfg.RequestLog
	if serveRequestLog != "" {
		logPath = serveRequestLog
	}

	requestLogger, closer, err := logging.NewRequestLogger(logPath)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	srv, err := server.New(server.Config{
		Port:          port,
		IndentSize:    cfg.IndentSize,
		MaxBodyBytes:  cfg.MaxBodyBytes,
		Version:       version,
		Logger:        logger,
		RequestLogger: requestLogger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("requests are logged", zap.String("path", logPath))
	return srv.Start(ctx)
}
