package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics
var (
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "coach_http_request_duration_seconds",
		Help:    "Duration of HTTP requests by route and status",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method", "status"})

	chatQueries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coach_chat_queries_total",
		Help: "Total number of chat questions answered",
	})

	matchesIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coach_grid_matches_ingested_total",
		Help: "Total number of matches ingested from GRID",
	})
)

// MetricsMiddleware records per-route request durations.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		requestDuration.WithLabelValues(route, r.Method, strconv.Itoa(ww.Status())).
			Observe(time.Since(start).Seconds())
	})
}
