package settings

import (
	"net/http"

	"stockledger/internal/api/request"
	apperror "stockledger/internal/errors"
	"stockledger/internal/pkg/logger"
	"stockledger/internal/pkg/response"
	"stockledger/internal/pkg/settings"
)

type Handler struct {
	Store  *settings.Store
	Logger logger.Logger
}

func NewHandler(store *settings.Store, log logger.Logger) *Handler {
	return &Handler{Store: store, Logger: log}
}

// GetSettingsHandler handles GET /v1/settings.
func (h *Handler) GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	_ = response.JSON(w, http.StatusOK, h.Store.Get())
}

// UpdateSettingsHandler handles PUT /v1/settings. The new settings are
// persisted before they take effect.
func (h *Handler) UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var next settings.Settings
	if err := request.DecodeJSON(r, &next); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	if err := next.Validate(); err != nil {
		response.Error(w, r, h.Logger, apperror.NewValidationError(err.Error()))
		return
	}
	if err := h.Store.Update(next); err != nil {
		response.Error(w, r, h.Logger, apperror.NewInternalError("failed to save settings", err))
		return
	}
	h.Logger.Info("settings updated", map[string]interface{}{"currency_symbol": string(next.CurrencySymbol)})
	_ = response.JSON(w, http.StatusOK, h.Store.Get())
}
