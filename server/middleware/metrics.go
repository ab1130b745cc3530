package middleware

import (
	"net/http"
	"time"

	"github.com/kbukum/voicelist/observability"
)

// Metrics records in-flight count, request totals and latency for every
// request. Routes are keyed by URL path.
func Metrics(m *observability.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			start := time.Now()
			m.RecordRequestStart(ctx)

			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)

			m.RecordRequestEnd(ctx, r.URL.Path, r.Method, sw.status, time.Since(start))
		})
	}
}
