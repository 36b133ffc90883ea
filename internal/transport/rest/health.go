package rest

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"
)

type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthUnhealthy HealthStatus = "unhealthy"
)

type HealthResponse struct {
	Status     HealthStatus          `json:"status"`
	CheckedAt  time.Time             `json:"checked_at"`
	Components map[string]CheckEntry `json:"components"`
}

type CheckEntry struct {
	Status     HealthStatus `json:"status"`
	Message    string       `json:"message,omitempty"`
	CheckedAt  time.Time    `json:"checked_at"`
	DurationMs int64        `json:"duration_ms"`
}

// RedisPinger is satisfied by the cache store; nil means redis is not part of
// the deployment and is skipped by the readiness probe.
type RedisPinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    *sql.DB
	redis RedisPinger
}

func NewHealthHandler(db *sql.DB, redis RedisPinger) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// pingHandler just says the process is up.
func (h *HealthHandler) pingHandler(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "OK"}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// healthCheckHandler checks the backing stores. Postgres decides readiness;
// redis is reported but only degrades the overall status, since the service
// works without its cache.
func (h *HealthHandler) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	components := map[string]CheckEntry{}

	pgEntry := h.check(func() error { return h.db.PingContext(ctx) })
	components["postgres"] = pgEntry

	overall := pgEntry.Status
	if h.redis != nil {
		redisEntry := h.check(func() error { return h.redis.Ping(ctx) })
		components["redis"] = redisEntry
		if redisEntry.Status == HealthUnhealthy {
			overall = HealthUnhealthy
		}
	}

	resp := HealthResponse{
		Status:     overall,
		CheckedAt:  time.Now(),
		Components: components,
	}

	statusCode := http.StatusOK
	if overall == HealthUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}

func (h *HealthHandler) check(ping func() error) CheckEntry {
	start := time.Now()
	err := ping()

	entry := CheckEntry{
		Status:     HealthHealthy,
		CheckedAt:  time.Now(),
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		entry.Status = HealthUnhealthy
		entry.Message = err.Error()
	}
	return entry
}
