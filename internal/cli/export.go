package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"stockledger/internal/report"
)

func newExportCmd(verbose *bool) *cobra.Command {
	var (
		kind   string
		format string
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a report to a CSV or PDF file",
		Example: `  stockledger export --kind low-stock
  stockledger export --kind sales_summary --format pdf --out /tmp/reports`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := report.ParseKind(kind)
			if err != nil {
				return err
			}
			if format != "csv" && format != "pdf" {
				return fmt.Errorf("unsupported format %q: use csv or pdf", format)
			}

			a, err := openApp(cmd, *verbose)
			if err != nil {
				return err
			}
			defer a.Close()

			dir := outDir
			if dir == "" {
				dir = a.Config.ExportDir
			}

			money := report.PlainMoney
			if format == "pdf" {
				money = a.Settings.Currency().Format
			}
			t, err := report.Build(cmd.Context(), a.Inventory, k, money)
			if err != nil {
				return err
			}

			var path string
			if format == "pdf" {
				path, err = report.ExportPDF(dir, t, time.Now())
			} else {
				path, err = report.ExportCSV(dir, t)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows to %s\n", len(t.Rows), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "report: products, stock_levels, low_stock or sales_summary")
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format: csv or pdf")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default EXPORT_DIR)")
	_ = cmd.MarkFlagRequired("kind")
	return cmd
}
