package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type healthResponse struct {
	Status       string `json:"status"`
	SessionStore string `json:"session_store"`
	Backend      string `json:"backend"`
	Assets       string `json:"assets"`
	Environment  string `json:"environment"`
}

func (h HandlerSet) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{
		Status:       "ok",
		SessionStore: "ok",
		Backend:      "configured",
		Assets:       "static",
		Environment:  h.cfg.Environment,
	}

	if err := h.sessions.Ping(ctx); err != nil {
		resp.Status = "degraded"
		resp.SessionStore = "error"
		h.log.Error().Err(err).Str("store", h.cfg.Session.Store).Msg("session store ping failed")
	}

	if !h.api.Configured() {
		resp.Status = "degraded"
		resp.Backend = "unset"
	}

	if h.assets.Remote() {
		resp.Assets = "object_store"
	}

	c.JSON(http.StatusOK, resp)
}
