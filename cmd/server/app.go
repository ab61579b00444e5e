package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/anime-api/internal/auth"
	"github.com/phrazzld/anime-api/internal/config"
	"github.com/phrazzld/anime-api/internal/domain"
	"github.com/phrazzld/anime-api/internal/platform/mongodb"
	"github.com/phrazzld/anime-api/internal/resource"
	"github.com/phrazzld/anime-api/internal/store"
)

// stores holds one document store per resource collection.
type stores struct {
	anime      store.DocumentStore[domain.Anime]
	manga      store.DocumentStore[domain.Manga]
	users      store.DocumentStore[domain.User]
	watchlists store.DocumentStore[domain.WatchItem]
}

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	gateway *mongodb.Gateway
	gate    auth.Gate
	stores  stores

	// clock overrides time.Now in tests.
	clock func() time.Time
}

// newApplication connects to MongoDB, selects the authorization gate and
// builds the collection stores. The database must be reachable.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		gateway: mongodb.NewGateway(
			logger.With("component", "mongodb"),
			time.Duration(cfg.Database.ConnectTimeoutSeconds)*time.Second,
		),
	}

	if _, err := app.gateway.Connect(ctx, cfg.Database.URI, cfg.Database.Name); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	var err error
	app.gate, err = auth.NewGate(ctx, cfg.Auth, logger.With("component", "auth"))
	if err != nil {
		app.cleanup(ctx)
		return nil, fmt.Errorf("failed to initialize authorization: %w", err)
	}

	if err := app.openStores(); err != nil {
		app.cleanup(ctx)
		return nil, err
	}

	logger.Info("Application initialized successfully",
		"auth_enforced", app.gate.Enforcing())
	return app, nil
}

func (app *application) openStores() error {
	var err error
	if app.stores.anime, err = openStore[domain.Anime](app.gateway, resource.AnimeDescriptor().Collection); err != nil {
		return err
	}
	if app.stores.manga, err = openStore[domain.Manga](app.gateway, resource.MangaDescriptor().Collection); err != nil {
		return err
	}
	if app.stores.users, err = openStore[domain.User](app.gateway, resource.UserDescriptor().Collection); err != nil {
		return err
	}
	if app.stores.watchlists, err = openStore[domain.WatchItem](app.gateway, resource.WatchlistDescriptor().Collection); err != nil {
		return err
	}
	return nil
}

func openStore[R any](gw *mongodb.Gateway, collection string) (store.DocumentStore[R], error) {
	coll, err := gw.Collection(collection)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection %s: %w", collection, err)
	}
	return mongodb.NewDocumentStore[R](coll), nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router, err := app.setupRouter()
	if err != nil {
		return fmt.Errorf("failed to set up router: %w", err)
	}

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup(ctx context.Context) {
	if app.gateway != nil {
		if err := app.gateway.Close(ctx); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
