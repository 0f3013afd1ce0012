package console

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"stockledger/internal/domain"
)

var (
	accent = lipgloss.Color("#D97706")
	dim    = lipgloss.Color("#6B7280")
	danger = lipgloss.Color("#EF4444")
)

const timeLayout = "2006-01-02 15:04:05"

// styles are bound to the console's writer, so colors are dropped when the
// output is not a terminal.
type styles struct {
	title  lipgloss.Style
	err    lipgloss.Style
	border lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:  r.NewStyle().Bold(true).Foreground(accent),
		err:    r.NewStyle().Foreground(danger),
		border: r.NewStyle().Foreground(dim),
		header: r.NewStyle().Bold(true).Padding(0, 1),
		cell:   r.NewStyle().Padding(0, 1),
	}
}

// table draws rows under headers. Columns listed in right are right
// aligned.
func (st styles) table(headers []string, rows [][]string, right ...int) string {
	rightCols := make(map[int]bool, len(right))
	for _, c := range right {
		rightCols[c] = true
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.header
			}
			if rightCols[col] {
				return st.cell.Align(lipgloss.Right)
			}
			return st.cell
		})
	return t.String()
}

func text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (c *Console) printProducts(products []domain.Product) {
	if len(products) == 0 {
		c.println("No products found.")
		return
	}
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10), p.Name, text(p.SKU), c.money(p.UnitPrice),
			strconv.Itoa(p.QuantityInStock), strconv.Itoa(p.ReorderLevel),
		})
	}
	c.println(c.styles.table([]string{"ID", "Name", "SKU", "Price", "Stock", "Reorder"}, rows, 0, 3, 4, 5))
}

func (c *Console) printLowStock(products []domain.Product) {
	if len(products) == 0 {
		c.println("No low stock items.")
		return
	}
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10), p.Name, strconv.Itoa(p.QuantityInStock), strconv.Itoa(p.ReorderLevel),
		})
	}
	c.println(c.styles.table([]string{"ID", "Name", "Stock", "Reorder"}, rows, 0, 2, 3))
}

func (c *Console) printSuppliers(suppliers []domain.Supplier) {
	if len(suppliers) == 0 {
		c.println("No suppliers found.")
		return
	}
	rows := make([][]string, 0, len(suppliers))
	for _, s := range suppliers {
		rows = append(rows, []string{
			strconv.FormatInt(s.ID, 10), s.Name, text(s.ContactName), text(s.Phone), text(s.Email),
		})
	}
	c.println(c.styles.table([]string{"ID", "Name", "Contact", "Phone", "Email"}, rows, 0))
}

func (c *Console) printSummary(rows []domain.SalesSummaryRow) {
	if len(rows) == 0 {
		c.println("No sales yet.")
		return
	}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.ProductName, strconv.Itoa(r.TotalQuantitySold), c.money(r.TotalRevenue)})
	}
	c.println(c.styles.table([]string{"Product", "Qty Sold", "Revenue"}, out, 1, 2))
}

func (c *Console) printSales(sales []domain.SaleView) {
	rows := make([][]string, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, []string{
			s.SoldAt.UTC().Format(timeLayout), s.ProductName, strconv.Itoa(s.Quantity),
			c.money(s.UnitPrice), text(s.CustomerName),
		})
	}
	c.println(c.styles.table([]string{"Date & Time (UTC)", "Product", "Qty", "Unit Price", "Customer"}, rows, 2, 3))
}

func (c *Console) printPurchases(purchases []domain.PurchaseView) {
	rows := make([][]string, 0, len(purchases))
	for _, p := range purchases {
		rows = append(rows, []string{
			p.PurchasedAt.UTC().Format(timeLayout), p.ProductName, strconv.Itoa(p.Quantity),
			c.money(p.UnitCost), text(p.SupplierName),
		})
	}
	c.println(c.styles.table([]string{"Date & Time (UTC)", "Product", "Qty", "Unit Cost", "Supplier"}, rows, 2, 3))
}

func (c *Console) printStats(stats map[string]interface{}) {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, fmt.Sprint(stats[k])})
	}
	c.println(c.styles.table([]string{"Item", "Value"}, rows, 1))
}
