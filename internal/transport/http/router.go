// Package httptransport assembles the HTTP surface: middleware chain,
// health and metrics endpoints, and the photo disclosure routes.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fotogate/internal/photo/handler"
	"fotogate/internal/platform/middleware"
	"fotogate/pkg/platform/httputil"
	"fotogate/pkg/platform/middleware/requestid"
	"fotogate/pkg/platform/middleware/requesttime"
)

// Deps carries everything the router wires together.
type Deps struct {
	Logger *slog.Logger
	Photo  *handler.Handler

	// StoreHealth reports backend reachability for /healthz; nil means the
	// backend needs no connectivity check (memory store).
	StoreHealth func(ctx context.Context) error
}

// NewRouter builds the chi router with the full middleware chain.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)

	r.Get("/healthz", handleHealth(deps.StoreHealth))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	deps.Photo.Register(r)

	return r
}

// handleHealth reports the service status per subsystem. The pipeline stages
// are stateless, so only the store can actually degrade.
func handleHealth(storeHealth func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeStatus := "operational"
		status := "healthy"
		code := http.StatusOK

		if storeHealth != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := storeHealth(ctx); err != nil {
				storeStatus = "unavailable"
				status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}

		httputil.WriteJSON(w, code, map[string]any{
			"status": status,
			"components": map[string]string{
				"validation":   "operational",
				"encryption":   "operational",
				"watermarking": "operational",
				"store":        storeStatus,
			},
		})
	}
}
