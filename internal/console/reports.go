package console

import (
	"context"
	"time"

	"stockledger/internal/service/inventoryservice"
)

func (c *Console) reportsMenu(ctx context.Context) error {
	return c.menu(ctx, "Reports", "Back", []menuItem{
		{"Current stock levels", c.stockLevels},
		{"Low stock alert", c.lowStock},
		{"Sales summary by product", c.salesSummary},
		{"Sales between dates", c.salesBetween},
		{"Purchases between dates", c.purchasesBetween},
		{"Recent sales", c.recentSales},
		{"Recent purchases", c.recentPurchases},
	})
}

func (c *Console) stockLevels(ctx context.Context) error {
	products, err := c.inv.ReportStockLevels(ctx)
	if err != nil {
		c.fail(err)
	} else {
		c.printProducts(products)
	}
	return c.pause()
}

func (c *Console) lowStock(ctx context.Context) error {
	products, err := c.inv.ReportLowStock(ctx)
	if err != nil {
		c.fail(err)
	} else {
		c.printLowStock(products)
	}
	return c.pause()
}

func (c *Console) salesSummary(ctx context.Context) error {
	rows, err := c.inv.ReportSalesSummary(ctx)
	if err != nil {
		c.fail(err)
	} else {
		c.printSummary(rows)
	}
	return c.pause()
}

// promptRange asks for two days and returns them as an inclusive UTC range.
// ok is false when the dates were rejected and the error has been shown.
func (c *Console) promptRange() (start, end time.Time, ok bool, err error) {
	from, err := c.promptString("Start date (YYYY-MM-DD): ")
	if err != nil {
		return start, end, false, err
	}
	to, err := c.promptString("End date (YYYY-MM-DD): ")
	if err != nil {
		return start, end, false, err
	}
	start, end, rangeErr := inventoryservice.NormalizeRange(from, to)
	if rangeErr != nil {
		c.fail(rangeErr)
		return start, end, false, nil
	}
	return start, end, true, nil
}

func (c *Console) salesBetween(ctx context.Context) error {
	start, end, ok, err := c.promptRange()
	if err != nil {
		return err
	}
	if !ok {
		return c.pause()
	}

	sales, err := c.inv.ReportSalesBetween(ctx, start, end)
	switch {
	case err != nil:
		c.fail(err)
	case len(sales) == 0:
		c.println("No sales in this range.")
	default:
		c.printSales(sales)
		c.printf("Total: %s\n", c.money(inventoryservice.SalesTotal(sales)))
	}
	return c.pause()
}

func (c *Console) purchasesBetween(ctx context.Context) error {
	start, end, ok, err := c.promptRange()
	if err != nil {
		return err
	}
	if !ok {
		return c.pause()
	}

	purchases, err := c.inv.ReportPurchasesBetween(ctx, start, end)
	switch {
	case err != nil:
		c.fail(err)
	case len(purchases) == 0:
		c.println("No purchases in this range.")
	default:
		c.printPurchases(purchases)
	}
	return c.pause()
}

func (c *Console) recentSales(ctx context.Context) error {
	sales, err := c.inv.RecentSales(ctx, inventoryservice.DefaultRecentLimit)
	switch {
	case err != nil:
		c.fail(err)
	case len(sales) == 0:
		c.println("No sales yet.")
	default:
		c.printSales(sales)
	}
	return c.pause()
}

func (c *Console) recentPurchases(ctx context.Context) error {
	purchases, err := c.inv.RecentPurchases(ctx, inventoryservice.DefaultRecentLimit)
	switch {
	case err != nil:
		c.fail(err)
	case len(purchases) == 0:
		c.println("No purchases yet.")
	default:
		c.printPurchases(purchases)
	}
	return c.pause()
}
