// Package console is the interactive menu front end. It reads commands
// from an io.Reader and renders results to an io.Writer, so it runs the
// same against a terminal or a scripted test.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"stockledger/internal/domain"
	apperror "stockledger/internal/errors"
	"stockledger/internal/pkg/logger"
	"stockledger/internal/pkg/settings"
	"stockledger/internal/report"
)

// Inventory is the service surface the menus drive.
type Inventory interface {
	report.Source

	AddProduct(ctx context.Context, p domain.NewProduct) (int64, error)
	UpdateProduct(ctx context.Context, id int64, patch domain.ProductPatch) error
	DeleteProduct(ctx context.Context, id int64) error
	SearchProducts(ctx context.Context, query string) ([]domain.Product, error)
	CorrectStock(ctx context.Context, id int64, quantity int) error

	AddSupplier(ctx context.Context, s domain.NewSupplier) (int64, error)
	UpdateSupplier(ctx context.Context, id int64, patch domain.SupplierPatch) error
	DeleteSupplier(ctx context.Context, id int64) error
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)

	RecordPurchase(ctx context.Context, req domain.PurchaseRequest) (int64, error)
	RecordSale(ctx context.Context, req domain.SaleRequest) (int64, error)
	RecentPurchases(ctx context.Context, limit int) ([]domain.PurchaseView, error)
	RecentSales(ctx context.Context, limit int) ([]domain.SaleView, error)
	ReportPurchasesBetween(ctx context.Context, start, end time.Time) ([]domain.PurchaseView, error)
	ReportSalesBetween(ctx context.Context, start, end time.Time) ([]domain.SaleView, error)
}

// BackupRunner is satisfied by *backup.Service.
type BackupRunner interface {
	Run() (string, error)
}

// StatsProvider is satisfied by *database.Store.
type StatsProvider interface {
	Stats(ctx context.Context) (map[string]interface{}, error)
}

// Options wires the console to its collaborators. Settings, Backups and
// Stats may be nil; the matching utilities then report that they are
// unavailable.
type Options struct {
	In        io.Reader
	Out       io.Writer
	Currency  settings.Currency
	Settings  *settings.Store
	Backups   BackupRunner
	Stats     StatsProvider
	ExportDir string
	Logger    logger.Logger
}

type Console struct {
	inv       Inventory
	in        *bufio.Reader
	out       io.Writer
	currency  settings.Currency
	settings  *settings.Store
	backups   BackupRunner
	stats     StatsProvider
	exportDir string
	styles    styles
	now       func() time.Time
	logger    logger.Logger
}

func New(inv Inventory, opts Options) *Console {
	cur := opts.Currency
	if cur == "" {
		cur = settings.DefaultCurrency
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	in, out := opts.In, opts.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	exportDir := opts.ExportDir
	if exportDir == "" {
		exportDir = "exports"
	}
	return &Console{
		inv:       inv,
		in:        bufio.NewReader(in),
		out:       out,
		currency:  cur,
		settings:  opts.Settings,
		backups:   opts.Backups,
		stats:     opts.Stats,
		exportDir: exportDir,
		styles:    newStyles(out),
		now:       time.Now,
		logger:    log,
	}
}

// Run shows the main menu until the user exits or the input ends.
func (c *Console) Run(ctx context.Context) error {
	err := c.menu(ctx, "Inventory Management System", "Exit", []menuItem{
		{"Manage Products", c.productsMenu},
		{"Manage Suppliers", c.suppliersMenu},
		{"Record Purchase", c.recordPurchase},
		{"Record Sale", c.recordSale},
		{"Reports", c.reportsMenu},
		{"Utilities", c.utilitiesMenu},
	})
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	c.println("Goodbye!")
	return nil
}

type menuItem struct {
	label string
	run   func(ctx context.Context) error
}

// menu loops over one level of options numbered from 1. Option 0 leaves
// the level. Only input errors end the loop early.
func (c *Console) menu(ctx context.Context, title, leave string, items []menuItem) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.println("")
		c.println(c.styles.title.Render("== " + title + " =="))
		for i, item := range items {
			c.printf("%d) %s\n", i+1, item.label)
		}
		c.printf("0) %s\n", leave)

		choice, err := c.readLine("Choose an option: ")
		if err != nil {
			return err
		}
		if choice == "0" {
			return nil
		}
		n, convErr := strconv.Atoi(choice)
		if convErr != nil || n < 1 || n > len(items) {
			c.println("Invalid option.")
			continue
		}
		if err := items[n-1].run(ctx); err != nil {
			return err
		}
	}
}

// --- output ---

func (c *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

// fail prints a business error and lets the user carry on.
func (c *Console) fail(err error) {
	c.println(c.styles.err.Render("Error: " + apperror.Message(err)))
}

func (c *Console) money(d decimal.Decimal) string {
	return c.currency.Format(d)
}

// --- input ---

// readLine prints prompt and returns the trimmed line. io.EOF is returned
// only when no more input is available.
func (c *Console) readLine(prompt string) (string, error) {
	c.printf("%s", prompt)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		c.println("")
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *Console) pause() error {
	_, err := c.readLine("Press Enter to continue...")
	return err
}

func (c *Console) confirm(question string) (bool, error) {
	answer, err := c.readLine(question + " [y/N]: ")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

func (c *Console) promptString(prompt string) (string, error) {
	for {
		s, err := c.readLine(prompt)
		if err != nil || s != "" {
			return s, err
		}
		c.println("This field cannot be empty.")
	}
}

// promptOptional returns nil for an empty answer.
func (c *Console) promptOptional(prompt string) (*string, error) {
	s, err := c.readLine(prompt)
	if err != nil || s == "" {
		return nil, err
	}
	return &s, nil
}

// promptPatchText is used by update forms: Enter keeps the value, "-"
// clears it, anything else replaces it.
func (c *Console) promptPatchText(prompt string) (*string, error) {
	s, err := c.readLine(prompt)
	if err != nil || s == "" {
		return nil, err
	}
	if s == "-" {
		s = ""
	}
	return &s, nil
}

func (c *Console) promptInt(prompt string) (int, error) {
	for {
		v, err := c.promptOptionalInt(prompt)
		if err != nil {
			return 0, err
		}
		if v != nil {
			return *v, nil
		}
		c.println("Enter a valid integer.")
	}
}

func (c *Console) promptOptionalInt(prompt string) (*int, error) {
	for {
		raw, err := c.readLine(prompt)
		if err != nil || raw == "" {
			return nil, err
		}
		v, convErr := strconv.Atoi(raw)
		if convErr == nil {
			return &v, nil
		}
		c.println("Enter a valid integer.")
	}
}

func (c *Console) promptID(prompt string) (int64, error) {
	v, err := c.promptInt(prompt)
	return int64(v), err
}

func (c *Console) promptDecimal(prompt string) (decimal.Decimal, error) {
	for {
		d, err := c.promptOptionalDecimal(prompt)
		if err != nil {
			return decimal.Zero, err
		}
		if d != nil {
			return *d, nil
		}
		c.println("Enter a valid number.")
	}
}

func (c *Console) promptOptionalDecimal(prompt string) (*decimal.Decimal, error) {
	for {
		raw, err := c.readLine(prompt)
		if err != nil || raw == "" {
			return nil, err
		}
		d, convErr := decimal.NewFromString(raw)
		if convErr == nil {
			return &d, nil
		}
		c.println("Enter a valid number.")
	}
}
