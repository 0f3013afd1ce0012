package supplierrepo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"stockledger/internal/domain"
	"stockledger/internal/errors"
	"stockledger/internal/pkg/database"
	"stockledger/internal/pkg/logger"
)

const supplierColumns = `id, name, contact_name, phone, email, address, created_at`

// SupplierRepository implements CRUD for suppliers.
type SupplierRepository struct {
	DB        database.Querier
	DBTimeout time.Duration
	Now       func() time.Time
	logger    logger.Logger
}

func NewSupplierRepository(db database.Querier, dbTimeout time.Duration, logger logger.Logger) *SupplierRepository {
	return &SupplierRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		Now:       time.Now,
		logger:    logger,
	}
}

type supplierRow struct {
	ID          int64   `db:"id"`
	Name        string  `db:"name"`
	ContactName *string `db:"contact_name"`
	Phone       *string `db:"phone"`
	Email       *string `db:"email"`
	Address     *string `db:"address"`
	CreatedAt   string  `db:"created_at"`
}

func (row supplierRow) toDomain() (domain.Supplier, error) {
	createdAt, err := database.ParseTime(row.CreatedAt)
	if err != nil {
		return domain.Supplier{}, fmt.Errorf("supplier %d created_at: %w", row.ID, err)
	}
	return domain.Supplier{
		ID:          row.ID,
		Name:        row.Name,
		ContactName: row.ContactName,
		Phone:       row.Phone,
		Email:       row.Email,
		Address:     row.Address,
		CreatedAt:   createdAt,
	}, nil
}

func (r *SupplierRepository) Create(ctx context.Context, s domain.NewSupplier) (int64, error) {
	r.logger.Debug("creating supplier", map[string]interface{}{"name": s.Name})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	id, err := database.Insert(ctxTimeout, r.DB, `
		INSERT INTO suppliers (name, contact_name, phone, email, address, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`,
		strings.TrimSpace(s.Name), database.NullText(s.ContactName), database.NullText(s.Phone),
		database.NullText(s.Email), database.NullText(s.Address), database.FormatTime(r.Now()),
	)
	if err != nil {
		r.logger.Error("failed to insert supplier", err)
		return 0, database.TranslateError("create supplier", err)
	}

	r.logger.Info("supplier created", map[string]interface{}{"id": id, "name": s.Name})
	return id, nil
}

// Update applies the fields present in patch. Suppliers carry no update timestamp.
func (r *SupplierRepository) Update(ctx context.Context, id int64, patch domain.SupplierPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var sets []string
	var args []interface{}
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, strings.TrimSpace(*patch.Name))
	}
	optional := []struct {
		column string
		value  *string
	}{
		{"contact_name", patch.ContactName},
		{"phone", patch.Phone},
		{"email", patch.Email},
		{"address", patch.Address},
	}
	for _, f := range optional {
		if f.value != nil {
			sets = append(sets, f.column+" = ?")
			args = append(args, database.NullText(f.value))
		}
	}
	args = append(args, id)

	query := "UPDATE suppliers SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	n, err := database.Exec(ctxTimeout, r.DB, query, args...)
	if err != nil {
		r.logger.Error("failed to update supplier", err)
		return database.TranslateError("update supplier", err)
	}
	if n == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("supplier %d", id))
	}
	return nil
}

// Delete removes a supplier. Purchases that referenced it keep their row
// with a NULL supplier_id.
func (r *SupplierRepository) Delete(ctx context.Context, id int64) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	n, err := database.Exec(ctxTimeout, r.DB, `DELETE FROM suppliers WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("failed to delete supplier", err)
		return database.TranslateError(fmt.Sprintf("delete supplier %d", id), err)
	}
	if n == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("supplier %d", id))
	}

	r.logger.Info("supplier deleted", map[string]interface{}{"id": id})
	return nil
}

func (r *SupplierRepository) ListAll(ctx context.Context) ([]domain.Supplier, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var rows []supplierRow
	if err := r.DB.SelectContext(ctxTimeout, &rows, `SELECT `+supplierColumns+` FROM suppliers ORDER BY LOWER(name), id`); err != nil {
		r.logger.Error("failed to list suppliers", err)
		return nil, database.TranslateError("list suppliers", err)
	}

	suppliers := make([]domain.Supplier, 0, len(rows))
	for _, row := range rows {
		s, err := row.toDomain()
		if err != nil {
			return nil, errors.NewInternalError("decode supplier", err)
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, nil
}

func (r *SupplierRepository) GetByID(ctx context.Context, id int64) (domain.Supplier, error) {
	s, err := r.getOne(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return domain.Supplier{}, errors.NewNotFoundError(fmt.Sprintf("supplier %d", id))
	}
	return s, err
}

func (r *SupplierRepository) GetByName(ctx context.Context, name string) (domain.Supplier, error) {
	name = strings.TrimSpace(name)
	s, err := r.getOne(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE name = ?`, name)
	if err == sql.ErrNoRows {
		return domain.Supplier{}, errors.NewNotFoundError(fmt.Sprintf("supplier %q", name))
	}
	return s, err
}

func (r *SupplierRepository) getOne(ctx context.Context, query string, args ...interface{}) (domain.Supplier, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var row supplierRow
	err := r.DB.GetContext(ctxTimeout, &row, r.DB.Rebind(query), args...)
	if err == sql.ErrNoRows {
		return domain.Supplier{}, err
	}
	if err != nil {
		r.logger.Error("failed to read supplier", err)
		return domain.Supplier{}, database.TranslateError("read supplier", err)
	}

	s, err := row.toDomain()
	if err != nil {
		return domain.Supplier{}, errors.NewInternalError("decode supplier", err)
	}
	return s, nil
}
