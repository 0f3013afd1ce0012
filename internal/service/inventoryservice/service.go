package inventoryservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"stockledger/internal/domain"
	apperror "stockledger/internal/errors"
	"stockledger/internal/pkg/logger"
)

// DefaultRecentLimit applies when a caller asks for a non-positive number of
// recent ledger rows.
const DefaultRecentLimit = 50

// Service is the only place where cross-entity invariants are enforced:
// non-negative prices, positive quantities, stock arithmetic and existence
// checks before a reference is written.
type Service struct {
	runner domain.TxRunner
	logger logger.Logger
	Now    func() time.Time
}

func NewService(runner domain.TxRunner, logger logger.Logger) *Service {
	return &Service{runner: runner, logger: logger, Now: time.Now}
}

// wrap keeps typed errors as they are and hides anything else behind an InternalError.
func wrap(msg string, err error) error {
	if err == nil || apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternalError(msg, err)
}

// --- products ---

func (s *Service) AddProduct(ctx context.Context, p domain.NewProduct) (int64, error) {
	if strings.TrimSpace(p.Name) == "" {
		return 0, apperror.NewValidationError("product name must not be empty")
	}
	if p.UnitPrice.IsNegative() {
		return 0, apperror.NewValidationError("unit price must not be negative")
	}
	if p.ReorderLevel < 0 {
		return 0, apperror.NewValidationError("reorder level must not be negative")
	}

	id, err := s.runner.Repos().Products.Create(ctx, p)
	if err != nil {
		return 0, wrap("add product", err)
	}
	return id, nil
}

// UpdateProduct validates only the fields present in patch. The id is not
// checked up front; the repository reports an unknown id.
func (s *Service) UpdateProduct(ctx context.Context, id int64, patch domain.ProductPatch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return apperror.NewValidationError("product name must not be empty")
	}
	if patch.UnitPrice != nil && patch.UnitPrice.IsNegative() {
		return apperror.NewValidationError("unit price must not be negative")
	}
	if patch.ReorderLevel != nil && *patch.ReorderLevel < 0 {
		return apperror.NewValidationError("reorder level must not be negative")
	}
	return wrap("update product", s.runner.Repos().Products.Update(ctx, id, patch))
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return wrap("delete product", s.runner.Repos().Products.Delete(ctx, id))
}

func (s *Service) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	p, err := s.runner.Repos().Products.GetByID(ctx, id)
	return p, wrap("get product", err)
}

// FindProduct looks a product up by exact name or SKU.
func (s *Service) FindProduct(ctx context.Context, token string) (domain.Product, error) {
	if strings.TrimSpace(token) == "" {
		return domain.Product{}, apperror.NewValidationError("name or SKU is required")
	}
	p, err := s.runner.Repos().Products.GetByNameOrSKU(ctx, token)
	return p, wrap("find product", err)
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.runner.Repos().Products.ListAll(ctx)
	return products, wrap("list products", err)
}

// SearchProducts filters by a case-insensitive substring of name or SKU.
func (s *Service) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Matches(query) {
			out = append(out, p)
		}
	}
	return out, nil
}

// CorrectStock sets the stock of a product to an absolute count. It goes
// through the same adjust-stock guard as purchases and sales.
func (s *Service) CorrectStock(ctx context.Context, id int64, quantity int) error {
	if quantity < 0 {
		return apperror.NewValidationError("stock quantity must not be negative")
	}

	err := s.runner.RunInTx(ctx, func(repos domain.Repositories) error {
		p, err := repos.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		delta := quantity - p.QuantityInStock
		if delta == 0 {
			return nil
		}
		_, err = repos.Products.AdjustStock(ctx, id, delta)
		return err
	})
	if err != nil {
		return wrap("correct stock", err)
	}

	s.logger.Info("stock corrected", map[string]interface{}{"product_id": id, "quantity": quantity})
	return nil
}

// --- suppliers ---

func (s *Service) AddSupplier(ctx context.Context, sup domain.NewSupplier) (int64, error) {
	if strings.TrimSpace(sup.Name) == "" {
		return 0, apperror.NewValidationError("supplier name must not be empty")
	}
	id, err := s.runner.Repos().Suppliers.Create(ctx, sup)
	if err != nil {
		return 0, wrap("add supplier", err)
	}
	return id, nil
}

func (s *Service) UpdateSupplier(ctx context.Context, id int64, patch domain.SupplierPatch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return apperror.NewValidationError("supplier name must not be empty")
	}
	return wrap("update supplier", s.runner.Repos().Suppliers.Update(ctx, id, patch))
}

func (s *Service) DeleteSupplier(ctx context.Context, id int64) error {
	return wrap("delete supplier", s.runner.Repos().Suppliers.Delete(ctx, id))
}

func (s *Service) GetSupplier(ctx context.Context, id int64) (domain.Supplier, error) {
	sup, err := s.runner.Repos().Suppliers.GetByID(ctx, id)
	return sup, wrap("get supplier", err)
}

func (s *Service) FindSupplier(ctx context.Context, name string) (domain.Supplier, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Supplier{}, apperror.NewValidationError("supplier name is required")
	}
	sup, err := s.runner.Repos().Suppliers.GetByName(ctx, name)
	return sup, wrap("find supplier", err)
}

func (s *Service) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	suppliers, err := s.runner.Repos().Suppliers.ListAll(ctx)
	return suppliers, wrap("list suppliers", err)
}

// --- ledger ---

// RecordPurchase writes the purchase and the stock increase in one
// transaction and returns the purchase id.
func (s *Service) RecordPurchase(ctx context.Context, req domain.PurchaseRequest) (int64, error) {
	if req.Quantity <= 0 {
		return 0, apperror.NewValidationError("quantity must be positive")
	}
	if req.UnitCost.IsNegative() {
		return 0, apperror.NewValidationError("unit cost must not be negative")
	}

	var purchaseID int64
	var newQuantity int
	err := s.runner.RunInTx(ctx, func(repos domain.Repositories) error {
		if _, err := repos.Products.GetByID(ctx, req.ProductID); err != nil {
			return err
		}
		if req.SupplierID != nil {
			if _, err := repos.Suppliers.GetByID(ctx, *req.SupplierID); err != nil {
				return err
			}
		}

		id, err := repos.Purchases.Create(ctx, domain.Purchase{
			ProductID:   req.ProductID,
			SupplierID:  req.SupplierID,
			Quantity:    req.Quantity,
			UnitCost:    req.UnitCost,
			PurchasedAt: s.Now().UTC(),
		})
		if err != nil {
			return err
		}
		purchaseID = id

		newQuantity, err = repos.Products.AdjustStock(ctx, req.ProductID, req.Quantity)
		return err
	})
	if err != nil {
		s.logger.Warn("purchase rejected", map[string]interface{}{"product_id": req.ProductID, "error": err.Error()})
		return 0, wrap("record purchase", err)
	}

	s.logger.Info("purchase recorded", map[string]interface{}{
		"purchase_id":  purchaseID,
		"product_id":   req.ProductID,
		"quantity":     req.Quantity,
		"new_quantity": newQuantity,
	})
	return purchaseID, nil
}

// RecordSale writes the sale and the stock decrease in one transaction.
// Selling more than is on hand fails with InsufficientStockError and leaves
// no sale row behind.
func (s *Service) RecordSale(ctx context.Context, req domain.SaleRequest) (int64, error) {
	if req.Quantity <= 0 {
		return 0, apperror.NewValidationError("quantity must be positive")
	}
	if req.UnitPrice.IsNegative() {
		return 0, apperror.NewValidationError("unit price must not be negative")
	}

	var saleID int64
	var newQuantity int
	err := s.runner.RunInTx(ctx, func(repos domain.Repositories) error {
		if _, err := repos.Products.GetByID(ctx, req.ProductID); err != nil {
			return err
		}

		id, err := repos.Sales.Create(ctx, domain.Sale{
			ProductID:    req.ProductID,
			Quantity:     req.Quantity,
			UnitPrice:    req.UnitPrice,
			SoldAt:       s.Now().UTC(),
			CustomerName: req.CustomerName,
			Notes:        req.Notes,
		})
		if err != nil {
			return err
		}
		saleID = id

		newQuantity, err = repos.Products.AdjustStock(ctx, req.ProductID, -req.Quantity)
		return err
	})
	if err != nil {
		s.logger.Warn("sale rejected", map[string]interface{}{"product_id": req.ProductID, "error": err.Error()})
		return 0, wrap("record sale", err)
	}

	s.logger.Info("sale recorded", map[string]interface{}{
		"sale_id":      saleID,
		"product_id":   req.ProductID,
		"quantity":     req.Quantity,
		"new_quantity": newQuantity,
	})
	return saleID, nil
}

func (s *Service) RecentPurchases(ctx context.Context, limit int) ([]domain.PurchaseView, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	rows, err := s.runner.Repos().Purchases.ListRecent(ctx, limit)
	return rows, wrap("list recent purchases", err)
}

func (s *Service) RecentSales(ctx context.Context, limit int) ([]domain.SaleView, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	rows, err := s.runner.Repos().Sales.ListRecent(ctx, limit)
	return rows, wrap("list recent sales", err)
}

// --- reports ---

func (s *Service) ReportStockLevels(ctx context.Context) ([]domain.Product, error) {
	return s.ListProducts(ctx)
}

// ReportLowStock returns the products at or below their reorder level.
func (s *Service) ReportLowStock(ctx context.Context) ([]domain.Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	low := make([]domain.Product, 0)
	for _, p := range products {
		if p.IsLowStock() {
			low = append(low, p)
		}
	}
	return low, nil
}

func (s *Service) ReportSalesSummary(ctx context.Context) ([]domain.SalesSummaryRow, error) {
	rows, err := s.runner.Repos().Sales.Summary(ctx)
	return rows, wrap("summarize sales", err)
}

// ReportSalesBetween returns the sales in [start, end], oldest first.
func (s *Service) ReportSalesBetween(ctx context.Context, start, end time.Time) ([]domain.SaleView, error) {
	if end.Before(start) {
		return nil, apperror.NewValidationError("end must not be before start")
	}
	rows, err := s.runner.Repos().Sales.ListBetween(ctx, start, end)
	return rows, wrap("list sales between", err)
}

// ReportPurchasesBetween returns the purchases in [start, end], oldest first.
func (s *Service) ReportPurchasesBetween(ctx context.Context, start, end time.Time) ([]domain.PurchaseView, error) {
	if end.Before(start) {
		return nil, apperror.NewValidationError("end must not be before start")
	}
	rows, err := s.runner.Repos().Purchases.ListBetween(ctx, start, end)
	return rows, wrap("list purchases between", err)
}

// SalesTotal sums quantity times unit price over rows.
func SalesTotal(rows []domain.SaleView) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity))))
	}
	return total
}

// DateLayout is the day format accepted by NormalizeRange.
const DateLayout = "2006-01-02"

// NormalizeRange parses two YYYY-MM-DD dates as UTC days. The end is pushed
// to the last microsecond of its day so the range covers it entirely.
func NormalizeRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse(DateLayout, strings.TrimSpace(startDate))
	if err != nil {
		return time.Time{}, time.Time{}, apperror.NewValidationError(fmt.Sprintf("invalid start date %q, expected YYYY-MM-DD", startDate))
	}
	end, err := time.Parse(DateLayout, strings.TrimSpace(endDate))
	if err != nil {
		return time.Time{}, time.Time{}, apperror.NewValidationError(fmt.Sprintf("invalid end date %q, expected YYYY-MM-DD", endDate))
	}
	end = end.Add(24*time.Hour - time.Microsecond)
	if end.Before(start) {
		return time.Time{}, time.Time{}, apperror.NewValidationError("end date must not be before start date")
	}
	return start, end, nil
}
