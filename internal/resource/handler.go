package resource

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/anime-api/internal/api"
	"github.com/phrazzld/anime-api/internal/api/middleware"
	"github.com/phrazzld/anime-api/internal/api/shared"
	"github.com/phrazzld/anime-api/internal/domain"
	"github.com/phrazzld/anime-api/internal/platform/logger"
	"github.com/phrazzld/anime-api/internal/store"
	"github.com/phrazzld/anime-api/internal/validation"
)

// Handler serves the CRUD routes of one resource. P is the validated payload,
// R the stored record returned by reads.
type Handler[P, R any] struct {
	desc   Descriptor[P]
	schema *validation.Schema[P]
	store  store.DocumentStore[R]
	now    func() time.Time
}

// Option configures a Handler.
type Option func(*handlerOptions)

type handlerOptions struct {
	now func() time.Time
}

// WithClock sets the clock used for timestamps and date-relative validation.
func WithClock(now func() time.Time) Option {
	return func(o *handlerOptions) {
		o.now = now
	}
}

// NewHandler creates a Handler for desc backed by s.
func NewHandler[P, R any](desc Descriptor[P], s store.DocumentStore[R], opts ...Option) *Handler[P, R] {
	if s == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("store cannot be nil")
	}

	o := handlerOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return &Handler[P, R]{
		desc:   desc,
		schema: validation.NewSchema[P](desc.Defaults, validation.WithClock(o.now)),
		store:  s,
		now:    o.now,
	}
}

// Descriptor returns the descriptor the handler serves.
func (h *Handler[P, R]) Descriptor() Descriptor[P] {
	return h.desc
}

// Mount registers the resource routes on r. Guards wrap the create, replace and
// delete routes in order; reads are never guarded. Create and replace reject
// non-JSON bodies after the guards and before the body is read.
func (h *Handler[P, R]) Mount(r chi.Router, guards ...func(http.Handler) http.Handler) {
	r.Route(h.desc.Path, func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(guards...)
			r.With(middleware.RequireJSON).Post("/", h.Create)
			r.With(middleware.RequireJSON).Put("/{id}", h.Replace)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// List handles GET /{resource}. An empty collection yields [].
func (h *Handler[P, R]) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.FindAll(r.Context())
	if err != nil {
		api.HandleAPIError(w, r, err)
		return
	}
	if records == nil {
		records = []R{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, records)
}

// Get handles GET /{resource}/{id}.
func (h *Handler[P, R]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		api.RespondWithError(w, r, err)
		return
	}

	record, err := h.store.FindByID(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, record)
}

// Create handles POST /{resource}. It answers 201 with the new id and a
// Location header.
func (h *Handler[P, R]) Create(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}

	now := h.timestamp()
	id, err := h.store.InsertOne(r.Context(), store.NewDocument(payload, now))
	if err != nil {
		api.HandleAPIError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("document created",
		slog.String("collection", h.desc.Collection),
		slog.String("id", id.Hex()))

	w.Header().Set("Location", h.desc.Path+"/"+id.Hex())
	shared.RespondWithJSON(w, r, http.StatusCreated, map[string]string{"id": id.Hex()})
}

// Replace handles PUT /{resource}/{id}. Every client-writable field is
// overwritten; the identifier and createdAt are kept.
func (h *Handler[P, R]) Replace(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		api.RespondWithError(w, r, err)
		return
	}

	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}

	if err := h.store.ReplaceByID(r.Context(), id, payload, h.timestamp()); err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("document replaced",
		slog.String("collection", h.desc.Collection),
		slog.String("id", id.Hex()))

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /{resource}/{id}.
func (h *Handler[P, R]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		api.RespondWithError(w, r, err)
		return
	}

	if err := h.store.DeleteByID(r.Context(), id); err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("document deleted",
		slog.String("collection", h.desc.Collection),
		slog.String("id", id.Hex()))

	w.WriteHeader(http.StatusNoContent)
}

// decodePayload reads and validates the request body, writing the error
// response itself when it returns false.
func (h *Handler[P, R]) decodePayload(w http.ResponseWriter, r *http.Request) (P, bool) {
	var zero P

	raw, err := shared.DecodeJSONObject(w, r)
	if err != nil {
		api.RespondWithError(w, r, err)
		return zero, false
	}

	payload, err := h.schema.Validate(raw)
	if err != nil {
		api.RespondWithError(w, r, err)
		return zero, false
	}

	return payload, true
}

func (h *Handler[P, R]) respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		shared.RespondWithError(w, r, http.StatusNotFound, h.desc.Label+" not found")
		return
	}
	api.HandleAPIError(w, r, err)
}

// timestamp returns the current time at the precision the database stores.
func (h *Handler[P, R]) timestamp() time.Time {
	return h.now().UTC().Truncate(time.Millisecond)
}
