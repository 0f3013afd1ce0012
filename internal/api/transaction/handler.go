// Package transaction serves the purchase and sale ledgers.
package transaction

import (
	"context"
	"net/http"
	"time"

	"stockledger/internal/api/request"
	"stockledger/internal/domain"
	apperror "stockledger/internal/errors"
	"stockledger/internal/pkg/logger"
	"stockledger/internal/pkg/response"
	"stockledger/internal/service/inventoryservice"
)

type LedgerService interface {
	RecordPurchase(ctx context.Context, req domain.PurchaseRequest) (int64, error)
	RecordSale(ctx context.Context, req domain.SaleRequest) (int64, error)
	RecentPurchases(ctx context.Context, limit int) ([]domain.PurchaseView, error)
	RecentSales(ctx context.Context, limit int) ([]domain.SaleView, error)
	ReportPurchasesBetween(ctx context.Context, start, end time.Time) ([]domain.PurchaseView, error)
	ReportSalesBetween(ctx context.Context, start, end time.Time) ([]domain.SaleView, error)
}

type Handler struct {
	Service LedgerService
	Logger  logger.Logger
}

func NewHandler(svc LedgerService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// SalesPage is the body of GET /v1/sales. Total is the sum of quantity
// times unit price over Sales.
type SalesPage struct {
	Sales []domain.SaleView `json:"sales"`
	Total string            `json:"total"`
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

// window reads ?from=&to= (both or neither) and ?limit=.
func window(r *http.Request) (ranged bool, start, end time.Time, limit int, err error) {
	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	if from != "" || to != "" {
		if from == "" || to == "" {
			return false, start, end, 0, apperror.NewValidationError("from and to must be given together")
		}
		start, end, err = inventoryservice.NormalizeRange(from, to)
		return true, start, end, 0, err
	}
	limit, err = request.QueryInt(r, "limit", inventoryservice.DefaultRecentLimit)
	return false, start, end, limit, err
}

// RecordPurchaseHandler handles POST /v1/purchases.
// @Summary Record a purchase
// @Description Inserts the purchase and adds its quantity to the product stock in one transaction.
// @Tags transactions
// @Accept json
// @Produce json
// @Param purchase body domain.PurchaseRequest true "Purchase"
// @Success 201 {object} map[string]int64
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse "Unknown product or supplier"
// @Router /purchases [post]
func (h *Handler) RecordPurchaseHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.PurchaseRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}
	id, err := h.Service.RecordPurchase(r.Context(), req)
	h.respond(w, r, map[string]int64{"id": id}, err, http.StatusCreated)
}

// ListPurchasesHandler handles GET /v1/purchases. Without a range it
// returns the most recent purchases, newest first.
func (h *Handler) ListPurchasesHandler(w http.ResponseWriter, r *http.Request) {
	ranged, start, end, limit, err := window(r)
	if err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}
	var rows []domain.PurchaseView
	if ranged {
		rows, err = h.Service.ReportPurchasesBetween(r.Context(), start, end)
	} else {
		rows, err = h.Service.RecentPurchases(r.Context(), limit)
	}
	h.respond(w, r, rows, err, http.StatusOK)
}

// RecordSaleHandler handles POST /v1/sales.
// @Summary Record a sale
// @Tags transactions
// @Accept json
// @Produce json
// @Param sale body domain.SaleRequest true "Sale"
// @Success 201 {object} map[string]int64
// @Failure 409 {object} domain.ErrorResponse "Insufficient stock"
// @Router /sales [post]
func (h *Handler) RecordSaleHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.SaleRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}
	id, err := h.Service.RecordSale(r.Context(), req)
	h.respond(w, r, map[string]int64{"id": id}, err, http.StatusCreated)
}

func (h *Handler) ListSalesHandler(w http.ResponseWriter, r *http.Request) {
	ranged, start, end, limit, err := window(r)
	if err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}
	var rows []domain.SaleView
	if ranged {
		rows, err = h.Service.ReportSalesBetween(r.Context(), start, end)
	} else {
		rows, err = h.Service.RecentSales(r.Context(), limit)
	}
	if err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}
	h.respond(w, r, SalesPage{Sales: rows, Total: inventoryservice.SalesTotal(rows).StringFixed(2)}, nil, http.StatusOK)
}
