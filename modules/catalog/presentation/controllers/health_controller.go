package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/iota-uz/usecase-catalog/pkg/application"
	"github.com/iota-uz/usecase-catalog/pkg/composables"
	"github.com/iota-uz/usecase-catalog/pkg/httpapi"
)

const healthPingTimeout = 2 * time.Second

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}

type HealthController struct {
	app application.Application
}

func NewHealthController(app application.Application) application.Controller {
	return &HealthController{app: app}
}

func (c *HealthController) Key() string {
	return "HealthController"
}

func (c *HealthController) Register(r *mux.Router) {
	r.HandleFunc("/health", c.Health).Methods(http.MethodGet)
}

func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	db := c.app.DB()
	if db == nil {
		_ = httpapi.WriteJSON(w, http.StatusServiceUnavailable, &healthResponse{
			Status:    "unavailable",
			Timestamp: time.Now().UTC(),
			Error:     "database not configured",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		composables.UseLogger(r.Context()).WithError(err).Warn("health check ping failed")
		_ = httpapi.WriteJSON(w, http.StatusServiceUnavailable, &healthResponse{
			Status:    "unavailable",
			Timestamp: time.Now().UTC(),
			Error:     "database unreachable",
		})
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, &healthResponse{Status: "ok", Timestamp: time.Now().UTC()})
}
