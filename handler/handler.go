// Package handler provides the HTTP handlers for the item service.
package handler

import (
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/stevemurr/simple-items-server/middleware"
	"github.com/stevemurr/simple-items-server/model"
	"github.com/stevemurr/simple-items-server/store"
)

// Handler holds the server dependencies and registers routes.
type Handler struct {
	store  store.Store
	ids    model.IDStrategy
	log    *slog.Logger
	router chi.Router

	// mu serialises load-modify-save sequences on the collection.
	mu sync.RWMutex
}

// Option configures a Handler.
type Option func(*Handler)

// WithIDStrategy selects how ids are assigned on create.
func WithIDStrategy(s model.IDStrategy) Option {
	return func(h *Handler) { h.ids = s }
}

// WithLogger sets the logger used for requests and storage failures.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) { h.log = l }
}

// New creates a Handler and wires up all routes.
func New(s store.Store, opts ...Option) *Handler {
	h := &Handler{
		store: s,
		ids:   model.IDFromLast,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.routes()
	return h
}

// ServeHTTP makes Handler an http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(h.log))
	r.Use(Recovery(h.log))

	r.Post("/items", h.createItem)
	r.Get("/items", h.listItems)
	r.Get("/items/{id}", h.getItem)
	r.Put("/items/{id}", h.updateItem)
	r.Delete("/items/{id}", h.deleteItem)

	// There is no 405: every unmatched method/path pair is a missing route.
	r.NotFound(h.routeNotFound)
	r.MethodNotAllowed(h.routeNotFound)

	h.router = r
}

func (h *Handler) routeNotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, msgRouteNotFound)
}
