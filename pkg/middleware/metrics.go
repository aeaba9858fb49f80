package middleware

import (
	"net/http"
	"time"

	"movie-catalog/pkg/metrics"

	"github.com/go-chi/chi/v5"
)

// Metrics records request count and latency per chi route pattern, so
// /movies/{partialTitle} stays one series regardless of the title searched.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		start := time.Now()
		rw := wrapResponseWriter(w)

		next.ServeHTTP(rw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		metrics.RecordHTTPRequest(r.Method, route, rw.statusCode, time.Since(start))
	})
}
