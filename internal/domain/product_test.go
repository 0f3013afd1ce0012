package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductIsLowStock(t *testing.T) {
	assert.True(t, Product{QuantityInStock: 2, ReorderLevel: 5}.IsLowStock())
	assert.True(t, Product{QuantityInStock: 5, ReorderLevel: 5}.IsLowStock(), "equal counts as low")
	assert.False(t, Product{QuantityInStock: 6, ReorderLevel: 5}.IsLowStock())
}

func TestProductMatches(t *testing.T) {
	sku := "WID-001"
	p := Product{Name: "Blue Widget", SKU: &sku}

	assert.True(t, p.Matches("widget"))
	assert.True(t, p.Matches("wid-0"))
	assert.True(t, p.Matches("  "))
	assert.False(t, p.Matches("gadget"))
	assert.False(t, Product{Name: "Gear"}.Matches("wid"))
}

func TestPatchIsEmpty(t *testing.T) {
	name := "x"
	assert.True(t, ProductPatch{}.IsEmpty())
	assert.False(t, ProductPatch{Name: &name}.IsEmpty())
	assert.True(t, SupplierPatch{}.IsEmpty())
	assert.False(t, SupplierPatch{Phone: &name}.IsEmpty())
}
