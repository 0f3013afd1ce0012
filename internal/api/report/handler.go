package report

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	apperror "stockledger/internal/errors"
	"stockledger/internal/pkg/logger"
	"stockledger/internal/pkg/response"
	"stockledger/internal/pkg/settings"
	"stockledger/internal/report"
)

// Handler renders GET /v1/reports/{kind} as JSON, CSV or PDF.
type Handler struct {
	Source   report.Source
	Settings *settings.Store
	Logger   logger.Logger
	Now      func() time.Time
}

func NewHandler(src report.Source, store *settings.Store, log logger.Logger) *Handler {
	return &Handler{Source: src, Settings: store, Logger: log, Now: time.Now}
}

// ReportHandler serves one report.
// @Summary Inventory report
// @Tags reports
// @Produce json,text/csv,application/pdf
// @Param kind path string true "stock, low-stock, sales-summary or products"
// @Param format query string false "json (default), csv or pdf"
// @Success 200
// @Failure 400 {object} domain.ErrorResponse
// @Router /reports/{kind} [get]
func (h *Handler) ReportHandler(w http.ResponseWriter, r *http.Request) {
	kind, err := report.ParseKind(r.PathValue("kind"))
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		h.writeJSON(w, r, kind)
	case "csv":
		table, err := report.Build(r.Context(), h.Source, kind, report.PlainMoney)
		if err != nil {
			response.Error(w, r, h.Logger, err)
			return
		}
		var buf bytes.Buffer
		if err := report.WriteCSV(&buf, table); err != nil {
			response.Error(w, r, h.Logger, apperror.NewInternalError("failed to render csv", err))
			return
		}
		h.writeFile(w, "text/csv; charset=utf-8", string(kind)+".csv", buf.Bytes())
	case "pdf":
		table, err := report.Build(r.Context(), h.Source, kind, h.Settings.Currency().Format)
		if err != nil {
			response.Error(w, r, h.Logger, err)
			return
		}
		data, err := report.RenderPDF(table, h.Now())
		if err != nil {
			response.Error(w, r, h.Logger, apperror.NewInternalError("failed to render pdf", err))
			return
		}
		h.writeFile(w, "application/pdf", string(kind)+".pdf", data)
	default:
		response.Error(w, r, h.Logger, apperror.NewValidationError(fmt.Sprintf("unknown format %q, use json, csv or pdf", format)))
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, kind report.Kind) {
	var (
		data interface{}
		err  error
	)
	ctx := r.Context()
	switch kind {
	case report.KindProducts:
		data, err = h.Source.ListProducts(ctx)
	case report.KindStockLevels:
		data, err = h.Source.ReportStockLevels(ctx)
	case report.KindLowStock:
		data, err = h.Source.ReportLowStock(ctx)
	case report.KindSalesSummary:
		data, err = h.Source.ReportSalesSummary(ctx)
	}
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	if encErr := response.JSON(w, http.StatusOK, data); encErr != nil {
		h.Logger.Error("failed to encode response", encErr)
	}
}

func (h *Handler) writeFile(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.Logger.Warn("report download interrupted", map[string]interface{}{"file": filename, "error": err.Error()})
	}
}
