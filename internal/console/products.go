package console

import (
	"context"

	"stockledger/internal/domain"
)

func (c *Console) productsMenu(ctx context.Context) error {
	return c.menu(ctx, "Manage Products", "Back", []menuItem{
		{"List products", c.listProducts},
		{"Add product", c.addProduct},
		{"Update product", c.updateProduct},
		{"Delete product", c.deleteProduct},
		{"Search/filter products", c.searchProducts},
		{"Correct stock count", c.correctStock},
	})
}

// showProducts prints the catalog before a form that asks for an id.
func (c *Console) showProducts(ctx context.Context) {
	products, err := c.inv.ListProducts(ctx)
	if err != nil {
		c.fail(err)
		return
	}
	c.printProducts(products)
}

func (c *Console) listProducts(ctx context.Context) error {
	c.showProducts(ctx)
	return c.pause()
}

func (c *Console) addProduct(ctx context.Context) error {
	var (
		p   domain.NewProduct
		err error
	)
	if p.Name, err = c.promptString("Name: "); err != nil {
		return err
	}
	if p.SKU, err = c.promptOptional("SKU (optional): "); err != nil {
		return err
	}
	if p.Description, err = c.promptOptional("Description (optional): "); err != nil {
		return err
	}
	if p.UnitPrice, err = c.promptDecimal("Unit price: "); err != nil {
		return err
	}
	if p.ReorderLevel, err = c.promptInt("Reorder level (0+): "); err != nil {
		return err
	}

	if _, err := c.inv.AddProduct(ctx, p); err != nil {
		c.fail(err)
	} else {
		c.println("Product added.")
	}
	return c.pause()
}

func (c *Console) updateProduct(ctx context.Context) error {
	c.showProducts(ctx)
	id, err := c.promptID("Product ID to update: ")
	if err != nil {
		return err
	}

	c.println("Press Enter to keep a value, or - to clear an optional one.")
	var patch domain.ProductPatch
	if patch.Name, err = c.promptOptional("New name: "); err != nil {
		return err
	}
	if patch.SKU, err = c.promptPatchText("New SKU: "); err != nil {
		return err
	}
	if patch.Description, err = c.promptPatchText("New description: "); err != nil {
		return err
	}
	if patch.UnitPrice, err = c.promptOptionalDecimal("New unit price: "); err != nil {
		return err
	}
	if patch.ReorderLevel, err = c.promptOptionalInt("New reorder level: "); err != nil {
		return err
	}

	if patch.IsEmpty() {
		c.println("Nothing to update.")
	} else if err := c.inv.UpdateProduct(ctx, id, patch); err != nil {
		c.fail(err)
	} else {
		c.println("Product updated.")
	}
	return c.pause()
}

func (c *Console) deleteProduct(ctx context.Context) error {
	c.showProducts(ctx)
	id, err := c.promptID("Product ID to delete: ")
	if err != nil {
		return err
	}
	ok, err := c.confirm("Are you sure you want to delete this product?")
	if err != nil {
		return err
	}

	if !ok {
		c.println("Cancelled.")
	} else if err := c.inv.DeleteProduct(ctx, id); err != nil {
		c.fail(err)
	} else {
		c.println("Product deleted.")
	}
	return c.pause()
}

func (c *Console) searchProducts(ctx context.Context) error {
	q, err := c.readLine("Search by name or SKU (case-insensitive): ")
	if err != nil {
		return err
	}
	products, err := c.inv.SearchProducts(ctx, q)
	if err != nil {
		c.fail(err)
	} else {
		c.printProducts(products)
	}
	return c.pause()
}

func (c *Console) correctStock(ctx context.Context) error {
	c.showProducts(ctx)
	id, err := c.promptID("Product ID to correct: ")
	if err != nil {
		return err
	}
	qty, err := c.promptInt("Counted quantity: ")
	if err != nil {
		return err
	}

	if err := c.inv.CorrectStock(ctx, id, qty); err != nil {
		c.fail(err)
	} else {
		c.println("Stock corrected.")
	}
	return c.pause()
}
