package supplier

import (
	"context"
	"net/http"

	"stockledger/internal/api/request"
	"stockledger/internal/domain"
	"stockledger/internal/pkg/logger"
	"stockledger/internal/pkg/response"
)

type SupplierService interface {
	AddSupplier(ctx context.Context, s domain.NewSupplier) (int64, error)
	UpdateSupplier(ctx context.Context, id int64, patch domain.SupplierPatch) error
	DeleteSupplier(ctx context.Context, id int64) error
	GetSupplier(ctx context.Context, id int64) (domain.Supplier, error)
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
}

type Handler struct {
	Service SupplierService
	Logger  logger.Logger
}

func NewHandler(svc SupplierService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	if encErr := response.JSON(w, successStatus, data); encErr != nil {
		h.Logger.Error("failed to encode response", encErr)
	}
}

// @Summary List suppliers
// @Tags suppliers
// @Produce json
// @Success 200 {array} domain.Supplier
// @Router /suppliers [get]
func (h *Handler) ListSuppliersHandler(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.Service.ListSuppliers(r.Context())
	h.respond(w, r, suppliers, err, http.StatusOK)
}

func (h *Handler) CreateSupplierHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.NewSupplier
	if err := request.DecodeJSON(r, &req); err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}
	id, err := h.Service.AddSupplier(r.Context(), req)
	h.respond(w, r, map[string]int64{"id": id}, err, http.StatusCreated)
}

func (h *Handler) GetSupplierHandler(w http.ResponseWriter, r *http.Request) {
	id, err := request.PathID(r, "id")
	if err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}
	s, err := h.Service.GetSupplier(r.Context(), id)
	h.respond(w, r, s, err, http.StatusOK)
}

func (h *Handler) UpdateSupplierHandler(w http.ResponseWriter, r *http.Request) {
	id, err := request.PathID(r, "id")
	if err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}
	var patch domain.SupplierPatch
	if err := request.DecodeJSON(r, &patch); err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}
	if err := h.Service.UpdateSupplier(r.Context(), id, patch); err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}
	s, err := h.Service.GetSupplier(r.Context(), id)
	h.respond(w, r, s, err, http.StatusOK)
}

// DeleteSupplierHandler removes the supplier; purchases that referenced it
// keep their rows with no supplier.
func (h *Handler) DeleteSupplierHandler(w http.ResponseWriter, r *http.Request) {
	id, err := request.PathID(r, "id")
	if err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}
	err = h.Service.DeleteSupplier(r.Context(), id)
	h.respond(w, r, nil, err, http.StatusNoContent)
}
