package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tsawler/structura/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP conversion service",
	Long: `Serve starts an HTTP service exposing POST /v1/convert for PDF bodies or
multipart uploads and GET /healthz for liveness checks. The service runs
until interrupted.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	config := server.DefaultConfig()
	if file := viper.ConfigFileUsed(); file != "" {
		loaded, err := server.LoadConfig(file)
		if err != nil {
			return exitf(exitConfig, "loading config: %v", err)
		}
		config = loaded
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		config.Addr = addr
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(config, logger).Run(ctx)
}
