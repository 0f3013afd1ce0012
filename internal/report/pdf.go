package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// RenderPDF lays t out on A4 pages and returns the document bytes.
func RenderPDF(t Table, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(t.Kind.Title(), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(t, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(headerRow(t.Columns))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	if len(t.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("No records.", props.Text{Size: 9, Top: 2, Color: colorGray}),
		)))
	}
	for _, r := range t.Rows {
		m.AddRows(dataRow(t.Columns, r))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate %s pdf: %w", t.Kind, err)
	}
	return doc.GetBytes(), nil
}

// ExportPDF renders t to dir/<kind>.pdf, creating dir, and returns the path.
func ExportPDF(dir string, t Table, generatedAt time.Time) (string, error) {
	doc, err := RenderPDF(t, generatedAt)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, string(t.Kind)+".pdf")
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func titleRow(t Table, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(text.New(t.Kind.Title(), props.Text{
			Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
		})),
		col.New(4).Add(
			text.New("Generated "+generatedAt.UTC().Format("2006-01-02 15:04 UTC"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
			text.New(fmt.Sprintf("%d records", len(t.Rows)), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func headerRow(cols []Column) core.Row {
	cells := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		cells = append(cells, col.New(c.Width).Add(text.New(c.Name, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: alignOf(c), Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cells...)
}

func dataRow(cols []Column, values []string) core.Row {
	cells := make([]core.Col, 0, len(cols))
	for i, c := range cols {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		cells = append(cells, col.New(c.Width).Add(text.New(v, props.Text{
			Size: 8, Align: alignOf(c), Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(cells...)
}

func alignOf(c Column) align.Type {
	if c.Numeric {
		return align.Right
	}
	return align.Left
}
