package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Pinger is the part of the store the health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StatusController serves the root greeting and the health check.
type StatusController struct {
	store Pinger
	env   string
}

func NewStatusController(store Pinger, env string) *StatusController {
	return &StatusController{store: store, env: env}
}

// Home handles GET /
func (sc *StatusController) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("<h2>Posts API</h2>"))
}

// Health handles GET /status. It answers 503 when the store does not
// respond to a ping within five seconds.
func (sc *StatusController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	start := time.Now()
	storeCheck := map[string]interface{}{"status": "healthy"}
	status, code := "healthy", http.StatusOK

	if err := sc.store.Ping(ctx); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("operation", "health_check").Msg("store ping failed")
		storeCheck["status"] = "unhealthy"
		status, code = "unhealthy", http.StatusServiceUnavailable
	}
	storeCheck["response_time"] = time.Since(start).String()

	sendJSON(w, r, code, map[string]interface{}{
		"status":      status,
		"timestamp":   time.Now().UTC(),
		"environment": sc.env,
		"checks":      map[string]interface{}{"store": storeCheck},
	})
}
