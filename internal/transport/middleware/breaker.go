package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// statusRecorder lets the breaker see the handler's outcome without buffering
// the body.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// CircuitBreaker sheds traffic to a route group once it starts failing
// consistently, returning 503 until the breaker half-opens again. Only 5xx
// responses count as failures; client errors are the caller's problem.
func CircuitBreaker(name string, logger *slog.Logger) func(http.Handler) http.Handler {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 10 &&
				float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, err := cb.Execute(func() (interface{}, error) {
				rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
				next.ServeHTTP(rec, r)
				if rec.status >= http.StatusInternalServerError {
					return nil, fmt.Errorf("upstream returned %d", rec.status)
				}
				return nil, nil
			})
			if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				fmt.Fprintf(w, `{"errorCode": %d, "description": "service temporarily unavailable"}`, http.StatusServiceUnavailable)
			}
		})
	}
}
