package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/cloudnine-labs/account-service/internal/repositories"
)

// NewRouter wires the account handlers and cross-cutting middleware into
// the service's HTTP surface. Unmatched methods on known paths get chi's
// default 405.
func NewRouter(repo repositories.AccountRepository) http.Handler {
	h := NewAccountHandler(repo)

	router := chi.NewRouter()
	router.Use(RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(corsHandler())
	router.Use(SecurityHeaders)

	router.Get("/health", h.Health)
	router.Get("/", h.Index)

	router.Route("/accounts", func(r chi.Router) {
		r.With(RequireJSON).Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	return router
}

func corsHandler() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}).Handler
}
