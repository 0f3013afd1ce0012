package health

import (
	"context"
	"net/http"

	apperror "stockledger/internal/errors"
	"stockledger/internal/pkg/logger"
	"stockledger/internal/pkg/response"
)

// StatsProvider is satisfied by *database.Store.
type StatsProvider interface {
	Stats(ctx context.Context) (map[string]interface{}, error)
}

type Handler struct {
	Store  StatsProvider
	Logger logger.Logger
}

func NewHandler(store StatsProvider, log logger.Logger) *Handler {
	return &Handler{Store: store, Logger: log}
}

type Status struct {
	Status string                 `json:"status"`
	Store  map[string]interface{} `json:"store"`
}

// PingHandler answers GET /ping with a plain "pong".
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

// HealthHandler handles GET /v1/health with the row count of each table.
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.Stats(r.Context())
	if err != nil {
		response.Error(w, r, h.Logger, apperror.NewInternalError("store unavailable", err))
		return
	}
	_ = response.JSON(w, http.StatusOK, Status{Status: "ok", Store: stats})
}
