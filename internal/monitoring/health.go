package monitoring

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Health statuses.
const (
	StatusUp   = "UP"
	StatusDown = "DOWN"
)

// Pinger is the slice of the store the health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	Status    string    `json:"status"`
	Store     string    `json:"store"`
	Timestamp time.Time `json:"timestamp"`
}

// Healthz reports whether the service and its store backend are usable.
// A failing store ping yields 503.
func Healthz(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{
			Status:    StatusUp,
			Store:     StatusUp,
			Timestamp: time.Now().UTC(),
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		code := http.StatusOK
		if err := store.Ping(ctx); err != nil {
			resp.Status = StatusDown
			resp.Store = StatusDown
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(resp)
	}
}
