package product

import (
	"context"
	"net/http"

	"stockledger/internal/api/request"
	"stockledger/internal/domain"
	"stockledger/internal/pkg/logger"
	"stockledger/internal/pkg/middleware"
	"stockledger/internal/pkg/response"
)

// ProductService is the part of the inventory service the product routes use.
type ProductService interface {
	AddProduct(ctx context.Context, p domain.NewProduct) (int64, error)
	UpdateProduct(ctx context.Context, id int64, patch domain.ProductPatch) error
	DeleteProduct(ctx context.Context, id int64) error
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
	FindProduct(ctx context.Context, token string) (domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	SearchProducts(ctx context.Context, query string) ([]domain.Product, error)
	CorrectStock(ctx context.Context, id int64, quantity int) error
}

// Handler groups the product routes.
type Handler struct {
	Service ProductService
	Logger  logger.Logger
}

func NewHandler(svc ProductService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// CreatedResponse carries the id of a new record.
type CreatedResponse struct {
	ID int64 `json:"id"`
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

// ListProductsHandler handles GET /v1/products.
// @Summary List products
// @Tags products
// @Produce json
// @Success 200 {array} domain.Product
// @Router /products [get]
func (h *Handler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := h.Service.ListProducts(r.Context())
	h.respond(w, r, products, err, http.StatusOK)
}

// CreateProductHandler handles POST /v1/products.
// @Summary Create a product
// @Description Stock always starts at zero; it changes through purchases, sales and corrections.
// @Tags products
// @Accept json
// @Produce json
// @Param product body domain.NewProduct true "Product"
// @Success 201 {object} CreatedResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Duplicate name or SKU"
// @Router /products [post]
func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.NewProduct
	if err := request.DecodeJSON(r, &req); err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}

	if claims, ok := middleware.UserFromContext(r.Context()); ok {
		h.Logger.Debug("product create requested", map[string]interface{}{"user_id": claims.UserID})
	}

	id, err := h.Service.AddProduct(r.Context(), req)
	h.respond(w, r, CreatedResponse{ID: id}, err, http.StatusCreated)
}

// GetProductHandler handles GET /v1/products/{id}.
func (h *Handler) GetProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := request.PathID(r, "id")
	if err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}
	p, err := h.Service.GetProduct(r.Context(), id)
	h.respond(w, r, p, err, http.StatusOK)
}

// UpdateProductHandler handles PATCH /v1/products/{id} and returns the
// product as stored after the update.
func (h *Handler) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := request.PathID(r, "id")
	if err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}
	var patch domain.ProductPatch
	if err := request.DecodeJSON(r, &patch); err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}
	if err := h.Service.UpdateProduct(r.Context(), id, patch); err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}
	p, err := h.Service.GetProduct(r.Context(), id)
	h.respond(w, r, p, err, http.StatusOK)
}

// DeleteProductHandler handles DELETE /v1/products/{id}.
// @Summary Delete a product
// @Tags products
// @Param id path int true "Product id"
// @Success 204
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Product has purchases or sales"
// @Router /products/{id} [delete]
func (h *Handler) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := request.PathID(r, "id")
	if err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}
	err = h.Service.DeleteProduct(r.Context(), id)
	h.respond(w, r, nil, err, http.StatusNoContent)
}

// CorrectStockHandler handles PUT /v1/products/{id}/stock.
func (h *Handler) CorrectStockHandler(w http.ResponseWriter, r *http.Request) {
	id, err := request.PathID(r, "id")
	if err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}
	var req domain.StockCorrection
	if err := request.DecodeJSON(r, &req); err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}
	if err := h.Service.CorrectStock(r.Context(), id, req.Quantity); err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}
	p, err := h.Service.GetProduct(r.Context(), id)
	h.respond(w, r, p, err, http.StatusOK)
}

// SearchProductsHandler handles GET /v1/products/search?q=.
func (h *Handler) SearchProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := h.Service.SearchProducts(r.Context(), r.URL.Query().Get("q"))
	h.respond(w, r, products, err, http.StatusOK)
}

// LookupProductHandler handles GET /v1/products/lookup?token=, an exact
// match on name or SKU.
func (h *Handler) LookupProductHandler(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.FindProduct(r.Context(), r.URL.Query().Get("token"))
	h.respond(w, r, p, err, http.StatusOK)
}
