package console

import (
	"context"

	"stockledger/internal/domain"
)

func (c *Console) suppliersMenu(ctx context.Context) error {
	return c.menu(ctx, "Manage Suppliers", "Back", []menuItem{
		{"List suppliers", c.listSuppliers},
		{"Add supplier", c.addSupplier},
		{"Update supplier", c.updateSupplier},
		{"Delete supplier", c.deleteSupplier},
	})
}

func (c *Console) showSuppliers(ctx context.Context) {
	suppliers, err := c.inv.ListSuppliers(ctx)
	if err != nil {
		c.fail(err)
		return
	}
	c.printSuppliers(suppliers)
}

func (c *Console) listSuppliers(ctx context.Context) error {
	c.showSuppliers(ctx)
	return c.pause()
}

func (c *Console) addSupplier(ctx context.Context) error {
	var (
		s   domain.NewSupplier
		err error
	)
	if s.Name, err = c.promptString("Name: "); err != nil {
		return err
	}
	if s.ContactName, err = c.promptOptional("Contact name (optional): "); err != nil {
		return err
	}
	if s.Phone, err = c.promptOptional("Phone (optional): "); err != nil {
		return err
	}
	if s.Email, err = c.promptOptional("Email (optional): "); err != nil {
		return err
	}
	if s.Address, err = c.promptOptional("Address (optional): "); err != nil {
		return err
	}

	if _, err := c.inv.AddSupplier(ctx, s); err != nil {
		c.fail(err)
	} else {
		c.println("Supplier added.")
	}
	return c.pause()
}

func (c *Console) updateSupplier(ctx context.Context) error {
	c.showSuppliers(ctx)
	id, err := c.promptID("Supplier ID to update: ")
	if err != nil {
		return err
	}

	c.println("Press Enter to keep a value, or - to clear an optional one.")
	var patch domain.SupplierPatch
	if patch.Name, err = c.promptOptional("New name: "); err != nil {
		return err
	}
	if patch.ContactName, err = c.promptPatchText("New contact: "); err != nil {
		return err
	}
	if patch.Phone, err = c.promptPatchText("New phone: "); err != nil {
		return err
	}
	if patch.Email, err = c.promptPatchText("New email: "); err != nil {
		return err
	}
	if patch.Address, err = c.promptPatchText("New address: "); err != nil {
		return err
	}

	if patch.IsEmpty() {
		c.println("Nothing to update.")
	} else if err := c.inv.UpdateSupplier(ctx, id, patch); err != nil {
		c.fail(err)
	} else {
		c.println("Supplier updated.")
	}
	return c.pause()
}

func (c *Console) deleteSupplier(ctx context.Context) error {
	c.showSuppliers(ctx)
	id, err := c.promptID("Supplier ID to delete: ")
	if err != nil {
		return err
	}
	ok, err := c.confirm("Delete this supplier? Its purchases are kept without a supplier.")
	if err != nil {
		return err
	}

	if !ok {
		c.println("Cancelled.")
	} else if err := c.inv.DeleteSupplier(ctx, id); err != nil {
		c.fail(err)
	} else {
		c.println("Supplier deleted.")
	}
	return c.pause()
}
