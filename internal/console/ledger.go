package console

import (
	"context"

	"stockledger/internal/domain"
)

func (c *Console) recordPurchase(ctx context.Context) error {
	c.showProducts(ctx)
	var (
		req domain.PurchaseRequest
		err error
	)
	if req.ProductID, err = c.promptID("Product ID: "); err != nil {
		return err
	}
	c.showSuppliers(ctx)
	sid, err := c.promptOptionalInt("Supplier ID (optional, Enter to skip): ")
	if err != nil {
		return err
	}
	if sid != nil {
		id := int64(*sid)
		req.SupplierID = &id
	}
	if req.Quantity, err = c.promptInt("Quantity: "); err != nil {
		return err
	}
	if req.UnitCost, err = c.promptDecimal("Unit cost: "); err != nil {
		return err
	}

	if _, err := c.inv.RecordPurchase(ctx, req); err != nil {
		c.fail(err)
	} else {
		c.println("Purchase recorded and stock updated.")
	}
	return c.pause()
}

func (c *Console) recordSale(ctx context.Context) error {
	c.showProducts(ctx)
	var (
		req domain.SaleRequest
		err error
	)
	if req.ProductID, err = c.promptID("Product ID: "); err != nil {
		return err
	}
	if req.Quantity, err = c.promptInt("Quantity: "); err != nil {
		return err
	}
	if req.UnitPrice, err = c.promptDecimal("Unit price: "); err != nil {
		return err
	}
	if req.CustomerName, err = c.promptOptional("Customer name (optional): "); err != nil {
		return err
	}
	if req.Notes, err = c.promptOptional("Notes (optional): "); err != nil {
		return err
	}

	if _, err := c.inv.RecordSale(ctx, req); err != nil {
		c.fail(err)
	} else {
		c.println("Sale recorded and stock updated.")
	}
	return c.pause()
}
