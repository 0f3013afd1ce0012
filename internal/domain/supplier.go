package domain

import (
	"context"
	"time"
)

// Supplier is a vendor that purchases can reference.
type Supplier struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ContactName *string   `json:"contact_name,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Address     *string   `json:"address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type NewSupplier struct {
	Name        string  `json:"name"`
	ContactName *string `json:"contact_name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	Address     *string `json:"address,omitempty"`
}

// SupplierPatch follows the ProductPatch conventions.
type SupplierPatch struct {
	Name        *string `json:"name,omitempty"`
	ContactName *string `json:"contact_name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	Address     *string `json:"address,omitempty"`
}

func (p SupplierPatch) IsEmpty() bool {
	return p.Name == nil && p.ContactName == nil && p.Phone == nil && p.Email == nil && p.Address == nil
}

type SupplierRepository interface {
	Create(ctx context.Context, s NewSupplier) (int64, error)
	Update(ctx context.Context, id int64, patch SupplierPatch) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]Supplier, error)
	GetByID(ctx context.Context, id int64) (Supplier, error)
	GetByName(ctx context.Context, name string) (Supplier, error)
}
