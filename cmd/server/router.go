package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/anime-api/internal/api"
	apiMiddleware "github.com/phrazzld/anime-api/internal/api/middleware"
	"github.com/phrazzld/anime-api/internal/apidoc"
	"github.com/phrazzld/anime-api/internal/domain"
	"github.com/phrazzld/anime-api/internal/resource"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() (http.Handler, error) {
	r := chi.NewRouter()

	// Trace runs first so every later response and log line carries the trace ID.
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(apiMiddleware.AccessLog)
	r.Use(apiMiddleware.Recoverer)

	// Set before any sub-router is mounted so they inherit the JSON handlers.
	r.NotFound(api.NotFound)
	r.MethodNotAllowed(api.MethodNotAllowed)

	r.Get("/healthz", api.Health)

	var opts []resource.Option
	if app.clock != nil {
		opts = append(opts, resource.WithClock(app.clock))
	}

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.gate)
	requireWrite := authMiddleware.Authenticate
	requireAdmin := authMiddleware.RequireRole(domain.RoleAdmin)

	anime := resource.NewHandler(resource.AnimeDescriptor(), app.stores.anime, opts...)
	manga := resource.NewHandler(resource.MangaDescriptor(), app.stores.manga, opts...)
	users := resource.NewHandler(resource.UserDescriptor(), app.stores.users, opts...)
	watchlists := resource.NewHandler(resource.WatchlistDescriptor(), app.stores.watchlists, opts...)

	anime.Mount(r, requireWrite)
	manga.Mount(r, requireWrite)
	users.Mount(r, requireWrite, requireAdmin)
	watchlists.Mount(r, requireWrite)

	usersDoc := users.Descriptor().Doc()
	usersDoc.WriteRole = domain.RoleAdmin

	docs, err := apidoc.Handler(apidoc.Build(apidoc.Info{
		Title:       "Anime API",
		Version:     version,
		Description: "Catalog of anime and manga with user profiles and watchlists.",
	}, []apidoc.Resource{
		anime.Descriptor().Doc(),
		manga.Descriptor().Doc(),
		usersDoc,
		watchlists.Descriptor().Doc(),
	}))
	if err != nil {
		return nil, err
	}
	r.Method(http.MethodGet, "/docs/swagger.json", docs)

	return r, nil
}
