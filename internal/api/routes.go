package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// RequestTimeout bounds every request, including the snapshot reload a
// stale cache may trigger.
const RequestTimeout = 60 * time.Second

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Group(func(r chi.Router) {
		r.Use(timeoutMiddleware(RequestTimeout))
		r.Get("/", s.handleDashboard)
		r.Post("/refresh", s.handleRefresh)
		r.Route("/api", func(r chi.Router) {
			r.Get("/table", s.handleTableJSON)
			r.Get("/users/{id}/roi", s.handleUserROI)
		})
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	return r
}
