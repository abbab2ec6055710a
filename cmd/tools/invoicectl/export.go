package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/noah-isme/shipledger/internal/app"
	"github.com/noah-isme/shipledger/internal/invoice"
)

func newExportCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:     "export <invoice-id>",
		Short:   "Write an invoice as an XLSX workbook",
		Example: `  invoicectl export 6c1f4f0e-5b7e-4a40-9b0b-8f1c2f7a9e11 -o ./out`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, _, err := openDeps(cmd.Context())
			if err != nil {
				return err
			}
			defer deps.Close()

			svc, err := app.NewServices(deps)
			if err != nil {
				return err
			}
			inv, err := svc.Invoices.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			f, err := invoice.RenderXLSX(app.NewSeller(deps.Config.Seller), inv)
			if err != nil {
				return err
			}
			defer f.Close()

			path := filepath.Join(outDir, invoice.FileName(inv)+".xlsx")
			if err := f.SaveAs(path); err != nil {
				return fmt.Errorf("save %s: %w", path, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory to write the workbook to")
	return cmd
}
