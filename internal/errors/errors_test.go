package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperror "stockledger/internal/errors"
)

func TestMapToHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		category string
	}{
		{"validation", apperror.NewValidationError("bad price"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"not found", apperror.NewNotFoundError("product 1"), http.StatusNotFound, "NOT_FOUND"},
		{"insufficient stock", apperror.NewInsufficientStockError(1, 3, -5), http.StatusConflict, "INSUFFICIENT_STOCK"},
		{"constraint", apperror.NewConstraintError("duplicate name", nil), http.StatusConflict, "CONSTRAINT_VIOLATION"},
		{"unauthorized", apperror.NewUnauthorizedError("no token"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"wrapped app error", fmt.Errorf("saving: %w", apperror.NewNotFoundError("supplier 9")), http.StatusNotFound, "NOT_FOUND"},
		{"plain error", fmt.Errorf("boom"), http.StatusInternalServerError, "UNKNOWN_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, category, _ := apperror.MapToHTTPStatus(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.category, category)
		})
	}
}

func TestInsufficientStockErrorMessage(t *testing.T) {
	err := apperror.NewInsufficientStockError(7, 3, -5)

	assert.Contains(t, err.Error(), "product 7 has 3")
	assert.True(t, apperror.IsAppError(err))
}

func TestDBErrorUnwraps(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := apperror.NewDBError("insert product", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
}

func TestMessageDropsCategoryPrefix(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", apperror.NewValidationError(`invalid start date "bad"`), `invalid start date "bad"`},
		{"wrapped not found", fmt.Errorf("lookup: %w", apperror.NewNotFoundError("product 4")), "product 4"},
		{"insufficient stock", apperror.NewInsufficientStockError(1, 3, -5), "insufficient stock: product 1 has 3, adjustment of -5 rejected"},
		{"plain error", fmt.Errorf("disk full"), "disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperror.Message(tt.err))
		})
	}
}
