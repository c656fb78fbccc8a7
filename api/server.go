/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the form frontend

ROUTE GROUPS:
  /api/login, /api/logout  Authentication
  /api/period              Current period bounds
  /api/entries             Per-day entry fetch/save
  /api/admin/*             Reporting and export

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)

		r.Get("/period", h.GetPeriod)

		r.Route("/entries", func(r chi.Router) {
			r.Get("/", h.GetEntries)
			r.Put("/", h.SaveEntries)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/report", h.AdminReport)
			r.Get("/report/export", h.ExportReport)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Timesheet API</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Timesheet API</h1>
<ul>
<li><code>POST /api/login</code> - Log in</li>
<li><code>GET /api/entries</code> - Current period entries</li>
<li><code>GET /api/admin/report</code> - Last completed period report</li>
</ul>
</body>
</html>`))
	})

	return r
}
