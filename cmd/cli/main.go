package main

import (
	"context"
	"log/slog"
	"os"

	"zorgkaart/internal/client/api"
	"zorgkaart/internal/client/cli"
	"zorgkaart/internal/client/config"
	"zorgkaart/internal/logging"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	client := api.NewClient(cfg.ServerBaseURL)
	app := cli.NewApp(cfg, client, logger)

	app.Run(ctx)
}
