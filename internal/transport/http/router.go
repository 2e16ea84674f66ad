// Package httptransport assembles the public HTTP surface: domain routes,
// health checking and Prometheus metrics.
package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registrar is implemented by domain handlers that attach their routes to the
// shared router.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter wires the health and metrics endpoints plus every domain handler.
func NewRouter(registrars ...Registrar) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	for _, reg := range registrars {
		reg.Register(r)
	}

	return r
}
