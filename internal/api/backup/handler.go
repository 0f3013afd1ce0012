package backup

import (
	"net/http"
	"path/filepath"

	"stockledger/internal/pkg/logger"
	"stockledger/internal/pkg/response"
)

// Runner is satisfied by *backup.Service.
type Runner interface {
	Run() (string, error)
}

type Handler struct {
	Backups Runner
	Logger  logger.Logger
}

func NewHandler(backups Runner, log logger.Logger) *Handler {
	return &Handler{Backups: backups, Logger: log}
}

// Result names the file written by a backup.
type Result struct {
	File string `json:"file"`
	Path string `json:"path"`
}

// CreateBackupHandler handles POST /v1/backups.
// @Summary Back up the sqlite store
// @Tags utilities
// @Produce json
// @Success 201 {object} Result
// @Failure 400 {object} domain.ErrorResponse "Store is not sqlite"
// @Router /backups [post]
func (h *Handler) CreateBackupHandler(w http.ResponseWriter, r *http.Request) {
	path, err := h.Backups.Run()
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	_ = response.JSON(w, http.StatusCreated, Result{File: filepath.Base(path), Path: path})
}
