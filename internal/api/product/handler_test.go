package product_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"stockledger/internal/api/product"
	"stockledger/internal/domain"
	apperror "stockledger/internal/errors"
	"stockledger/internal/pkg/logger"
)

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) AddProduct(ctx context.Context, p domain.NewProduct) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductService) UpdateProduct(ctx context.Context, id int64, patch domain.ProductPatch) error {
	return m.Called(ctx, id, patch).Error(0)
}

func (m *MockProductService) DeleteProduct(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductService) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductService) FindProduct(ctx context.Context, token string) (domain.Product, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductService) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductService) CorrectStock(ctx context.Context, id int64, quantity int) error {
	return m.Called(ctx, id, quantity).Error(0)
}

func TestCreateProductHandler_Success(t *testing.T) {
	svc := new(MockProductService)
	svc.On("AddProduct", mock.Anything, mock.MatchedBy(func(p domain.NewProduct) bool {
		return p.Name == "Widget" && p.UnitPrice.String() == "9.5"
	})).Return(int64(7), nil).Once()

	h := product.NewHandler(svc, logger.Nop())
	req := httptest.NewRequest(http.MethodPost, "/v1/products", strings.NewReader(`{"name":"Widget","unit_price":"9.50"}`))
	rec := httptest.NewRecorder()

	h.CreateProductHandler(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":7}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestCreateProductHandler_InvalidPayload(t *testing.T) {
	svc := new(MockProductService)
	h := product.NewHandler(svc, logger.Nop())

	rec := httptest.NewRecorder()
	h.CreateProductHandler(rec, httptest.NewRequest(http.MethodPost, "/v1/products", strings.NewReader(`{"name":`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "AddProduct", mock.Anything, mock.Anything)
}

func TestCorrectStockHandler_ValidationError(t *testing.T) {
	svc := new(MockProductService)
	svc.On("CorrectStock", mock.Anything, int64(3), -1).
		Return(apperror.NewValidationError("stock quantity must not be negative")).Once()

	h := product.NewHandler(svc, logger.Nop())
	req := httptest.NewRequest(http.MethodPut, "/v1/products/3/stock", strings.NewReader(`{"quantity":-1}`))
	req.SetPathValue("id", "3")
	rec := httptest.NewRecorder()

	h.CorrectStockHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	svc.AssertNotCalled(t, "GetProduct", mock.Anything, mock.Anything)
}

func TestDeleteProductHandler_Constraint(t *testing.T) {
	svc := new(MockProductService)
	svc.On("DeleteProduct", mock.Anything, int64(4)).
		Return(apperror.NewConstraintError("product has ledger rows", nil)).Once()

	h := product.NewHandler(svc, logger.Nop())
	req := httptest.NewRequest(http.MethodDelete, "/v1/products/4", nil)
	req.SetPathValue("id", "4")
	rec := httptest.NewRecorder()

	h.DeleteProductHandler(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	svc.AssertExpectations(t)
}
