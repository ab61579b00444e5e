// Package main is the entry point of the anime catalog API server. It serves
// CRUD routes for anime, manga, users and watchlists backed by MongoDB.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/anime-api/internal/redact"
)

// version is reported in the API document.
const version = "1.0.0"

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("server exited with error", "error", redact.Error(err))
		os.Exit(1)
	}
}

// run loads configuration, connects dependencies and serves until shutdown.
// Any startup failure, including an unreachable database, is returned.
func run(ctx context.Context) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
