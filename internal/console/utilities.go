package console

import (
	"context"
	"errors"

	"stockledger/internal/pkg/settings"
	"stockledger/internal/report"
)

var errUnavailable = errors.New("not available in this session")

func (c *Console) utilitiesMenu(ctx context.Context) error {
	return c.menu(ctx, "Utilities", "Back", []menuItem{
		{"Export report to CSV", c.exportCSV},
		{"Export report to PDF", c.exportPDF},
		{"Backup database", c.backupDatabase},
		{"Change currency symbol", c.changeCurrency},
		{"Database info", c.databaseInfo},
	})
}

// chooseReport asks which report to export. A nil kind means the user
// went back.
func (c *Console) chooseReport() (*report.Kind, error) {
	for {
		c.println("Which report?")
		for i, k := range report.Kinds {
			c.printf("%d) %s\n", i+1, k.Title())
		}
		c.println("0) Back")
		n, err := c.promptInt("Choose an option: ")
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, nil
		}
		if n > 0 && n <= len(report.Kinds) {
			k := report.Kinds[n-1]
			return &k, nil
		}
		c.println("Invalid option.")
	}
}

func (c *Console) exportCSV(ctx context.Context) error {
	kind, err := c.chooseReport()
	if err != nil || kind == nil {
		return err
	}
	t, err := report.Build(ctx, c.inv, *kind, report.PlainMoney)
	if err != nil {
		c.fail(err)
		return c.pause()
	}

	path, err := report.ExportCSV(c.exportDir, t)
	if err != nil {
		c.fail(err)
	} else {
		c.logger.Info("report exported", map[string]interface{}{"kind": string(*kind), "format": "csv", "path": path})
		c.printf("Exported to %s\n", path)
	}
	return c.pause()
}

func (c *Console) exportPDF(ctx context.Context) error {
	kind, err := c.chooseReport()
	if err != nil || kind == nil {
		return err
	}
	t, err := report.Build(ctx, c.inv, *kind, c.money)
	if err != nil {
		c.fail(err)
		return c.pause()
	}

	path, err := report.ExportPDF(c.exportDir, t, c.now())
	if err != nil {
		c.fail(err)
	} else {
		c.logger.Info("report exported", map[string]interface{}{"kind": string(*kind), "format": "pdf", "path": path})
		c.printf("Exported to %s\n", path)
	}
	return c.pause()
}

func (c *Console) backupDatabase(context.Context) error {
	if c.backups == nil {
		c.fail(errUnavailable)
		return c.pause()
	}
	path, err := c.backups.Run()
	if err != nil {
		c.fail(err)
	} else {
		c.printf("Backup created: %s\n", path)
	}
	return c.pause()
}

func (c *Console) changeCurrency(context.Context) error {
	if c.settings == nil {
		c.fail(errUnavailable)
		return c.pause()
	}
	c.printf("Current symbol: %s\n", c.currency)
	sym, err := c.readLine("New currency symbol (Enter to keep): ")
	if err != nil {
		return err
	}
	if sym == "" || settings.Currency(sym) == c.currency {
		c.println("No change.")
		return c.pause()
	}

	next := c.settings.Get()
	next.CurrencySymbol = settings.Currency(sym)
	if err := c.settings.Update(next); err != nil {
		c.fail(err)
	} else {
		c.currency = c.settings.Currency()
		c.println("Currency updated.")
	}
	return c.pause()
}

func (c *Console) databaseInfo(ctx context.Context) error {
	if c.stats == nil {
		c.fail(errUnavailable)
		return c.pause()
	}
	stats, err := c.stats.Stats(ctx)
	if err != nil {
		c.fail(err)
	} else {
		c.printStats(stats)
	}
	return c.pause()
}
