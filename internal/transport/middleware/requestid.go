package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/frahmantamala/payment-service/pkg/logger"
)

const RequestIDHeader = "X-Request-Id"

// RequestID tags every request with an id, echoes it back on the response,
// and stashes a request-scoped logger in the context so downstream log lines
// correlate.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, reqID)
		ctx := logger.With(r.Context(), "request_id", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
