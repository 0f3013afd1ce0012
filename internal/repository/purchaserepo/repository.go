package purchaserepo

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"stockledger/internal/domain"
	"stockledger/internal/errors"
	"stockledger/internal/pkg/database"
	"stockledger/internal/pkg/logger"
)

// PurchaseRepository appends purchases and reads them back joined with
// product and supplier names.
type PurchaseRepository struct {
	DB        database.Querier
	DBTimeout time.Duration
	logger    logger.Logger
}

func NewPurchaseRepository(db database.Querier, dbTimeout time.Duration, logger logger.Logger) *PurchaseRepository {
	return &PurchaseRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

const viewQuery = `
	SELECT pu.id, pu.product_id, pu.supplier_id, pu.quantity, pu.unit_cost, pu.purchased_at,
	       p.name AS product_name, s.name AS supplier_name
	FROM purchases pu
	JOIN products p ON p.id = pu.product_id
	LEFT JOIN suppliers s ON s.id = pu.supplier_id`

type purchaseRow struct {
	ID           int64           `db:"id"`
	ProductID    int64           `db:"product_id"`
	SupplierID   *int64          `db:"supplier_id"`
	Quantity     int             `db:"quantity"`
	UnitCost     decimal.Decimal `db:"unit_cost"`
	PurchasedAt  string          `db:"purchased_at"`
	ProductName  string          `db:"product_name"`
	SupplierName *string         `db:"supplier_name"`
}

func (row purchaseRow) toDomain() (domain.PurchaseView, error) {
	at, err := database.ParseTime(row.PurchasedAt)
	if err != nil {
		return domain.PurchaseView{}, fmt.Errorf("purchase %d purchased_at: %w", row.ID, err)
	}
	return domain.PurchaseView{
		Purchase: domain.Purchase{
			ID:          row.ID,
			ProductID:   row.ProductID,
			SupplierID:  row.SupplierID,
			Quantity:    row.Quantity,
			UnitCost:    row.UnitCost,
			PurchasedAt: at,
		},
		ProductName:  row.ProductName,
		SupplierName: row.SupplierName,
	}, nil
}

// Create inserts the ledger row. PurchasedAt is set by the caller.
func (r *PurchaseRepository) Create(ctx context.Context, p domain.Purchase) (int64, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	id, err := database.Insert(ctxTimeout, r.DB, `
		INSERT INTO purchases (product_id, supplier_id, quantity, unit_cost, purchased_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`,
		p.ProductID, p.SupplierID, p.Quantity, p.UnitCost, database.FormatTime(p.PurchasedAt),
	)
	if err != nil {
		r.logger.Error("failed to insert purchase", err)
		return 0, database.TranslateError("create purchase", err)
	}
	return id, nil
}

// ListRecent returns the newest purchases first.
func (r *PurchaseRepository) ListRecent(ctx context.Context, limit int) ([]domain.PurchaseView, error) {
	return r.list(ctx, viewQuery+` ORDER BY pu.purchased_at DESC, pu.id DESC LIMIT ?`, limit)
}

// ListBetween returns the purchases in [start, end], oldest first.
func (r *PurchaseRepository) ListBetween(ctx context.Context, start, end time.Time) ([]domain.PurchaseView, error) {
	return r.list(ctx, viewQuery+` WHERE pu.purchased_at BETWEEN ? AND ? ORDER BY pu.purchased_at ASC, pu.id ASC`,
		database.FormatTime(start), database.FormatTime(end))
}

func (r *PurchaseRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.PurchaseView, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var rows []purchaseRow
	if err := r.DB.SelectContext(ctxTimeout, &rows, r.DB.Rebind(query), args...); err != nil {
		r.logger.Error("failed to list purchases", err)
		return nil, database.TranslateError("list purchases", err)
	}

	out := make([]domain.PurchaseView, 0, len(rows))
	for _, row := range rows {
		v, err := row.toDomain()
		if err != nil {
			return nil, errors.NewInternalError("decode purchase", err)
		}
		out = append(out, v)
	}
	return out, nil
}
