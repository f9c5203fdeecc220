package middleware

import (
	"net/http"

	"memehub-backend/pkg/observability"
)

// Tracing opens an X-Ray segment per request when tracing is enabled
func Tracing(tracer *observability.Tracer, enabled bool) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, seg := tracer.StartSegment(r.Context(), r.Method+" "+r.URL.Path)
			defer seg.Close(nil)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
