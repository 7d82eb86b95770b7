package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	identityhandler "freightdesk/internal/identity/handler"
	"freightdesk/internal/platform/metrics"
	"freightdesk/internal/platform/middleware"
	shipmenthandler "freightdesk/internal/shipment/handler"
)

// FeatureHandler mounts a feature's routes onto the root router.
type FeatureHandler interface {
	Register(r chi.Router)
}

// NewRouter wires the base middleware stack and all feature routers.
func NewRouter(
	logger *slog.Logger,
	m *metrics.Metrics,
	identityH *identityhandler.Handler,
	shipmentH *shipmenthandler.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.ContentTypeJSON)
	r.Use(middleware.Latency(m))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	for _, h := range []FeatureHandler{identityH, shipmentH} {
		h.Register(r)
	}
	return r
}
