package service

import (
	"log/slog"
	"net/http"

	"github.com/spliteasy/spliteasy/internal/storage"
)

// HealthService reports service liveness and storage reachability.
type HealthService struct {
	store storage.Store
}

// NewHealthService creates a new HealthService.
func NewHealthService(store storage.Store) *HealthService {
	return &HealthService{store: store}
}

// Check responds 200 when the backing store is reachable, 503 otherwise.
func (s *HealthService) Check(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		slog.Error("Health check failed", "error", err)
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
