/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     zerolog request line + duration histogram
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for a browser frontend

ROUTES:
  GET    /api/categories                         List categories with totals
  POST   /api/categories                         Create category
  GET    /api/categories/{name}                  Category report
  POST   /api/categories/{name}/transactions     Record a transaction
  GET    /api/categories/{name}/spending         Weekly/monthly buckets
  POST   /api/ledger/save                        Persist the ledger
  POST   /api/ledger/load                        Replace the ledger from the store
  GET    /api/scenarios                          List demo ledgers
  GET    /api/scenarios/current                  Last demo ledger loaded
  POST   /api/scenarios/load                     Replace the ledger with a demo
  GET    /healthz                                Liveness
  GET    /metrics                                Prometheus metrics

SECURITY NOTE:
  No authentication. The server is meant for a single user on localhost.

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
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger(h.Log, h.Metrics))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.ListCategories)
			r.Post("/", h.CreateCategory)
			r.Get("/{name}", h.GetCategory)
			r.Post("/{name}/transactions", h.AddTransaction)
			r.Get("/{name}/spending", h.GetSpending)
		})

		r.Route("/ledger", func(r chi.Router) {
			r.Post("/save", h.SaveLedger)
			r.Post("/load", h.LoadLedger)
		})

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", h.Metrics.Handler())

	return r
}
