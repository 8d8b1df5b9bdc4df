package handler

import (
	"context"
	"net/http"
	"time"

	"resbook/pkg/config"
	resphttp "resbook/pkg/http"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// HealthHandler serves the liveness and readiness probes. Liveness only
// proves the process answers; readiness also pings the database.
type HealthHandler struct {
	cfg *config.Config
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/health", h.Health)
	router.HandlerFunc(http.MethodGet, "/ready", h.Ready)
}

func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	resphttp.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.cfg.Client.Mongo.Ping(ctx, readpref.Primary()); err != nil {
		h.cfg.Log.Error("Readiness check failed", "error", err)
		resphttp.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"mongo":  "unreachable",
		})
		return
	}

	resphttp.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
