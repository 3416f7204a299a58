package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"saleor-tma-bot/pkg/metrics"
)

// Metrics counts requests by chi route pattern so path parameters do not explode
// label cardinality.
func Metrics(m *metrics.Bot) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			m.IncHTTPRequest(route, rec.code())
		})
	}
}
