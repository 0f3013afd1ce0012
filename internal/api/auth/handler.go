package auth

import (
	"context"
	"net/http"

	"stockledger/internal/api/request"
	"stockledger/internal/domain"
	apperror "stockledger/internal/errors"
	"stockledger/internal/pkg/logger"
	"stockledger/internal/pkg/response"
)

type AuthService interface {
	Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
}

// Handler serves POST /v1/login. A nil Service means no admin credential
// is configured and every route is open.
type Handler struct {
	Service AuthService
	Logger  logger.Logger
}

func NewHandler(svc AuthService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// LoginHandler issues a bearer token for the admin credential.
// @Summary Log in and obtain a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param login body domain.LoginRequest true "Admin credential"
// @Success 200 {object} domain.LoginResponse
// @Failure 401 {object} domain.ErrorResponse "Invalid credentials"
// @Router /login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		response.Error(w, r, h.Logger, apperror.NewValidationError("authentication is not configured"))
		return
	}

	var req domain.LoginRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	resp, err := h.Service.Login(r.Context(), req)
	if err != nil {
		h.Logger.Warn("login failed", map[string]interface{}{"username": req.Username, "remote": r.RemoteAddr})
		response.Error(w, r, h.Logger, err)
		return
	}
	h.Logger.Info("login succeeded", map[string]interface{}{"username": req.Username})
	_ = response.JSON(w, http.StatusOK, resp)
}
