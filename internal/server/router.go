package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"orr-overpotential/internal/electrochem"
	"orr-overpotential/internal/handlers"
	"orr-overpotential/internal/observability"
)

func NewRouter(svc *electrochem.Service) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	svc.RegisterRoutes(r)

	return r
}
