package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/iota-uz/usecase-catalog/modules/catalog/domain/aggregates/usecase"
	"github.com/iota-uz/usecase-catalog/modules/catalog/services"
)

func newExportCmd(env *cliEnv) *cobra.Command {
	var (
		format  string
		outPath string
		params  usecase.FindParams
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog as a spreadsheet or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exportFormat := services.ExportFormat(format)
			if exportFormat != services.ExportXLSX && exportFormat != services.ExportJSON {
				return fmt.Errorf("invalid --format %q (expected xlsx|json)", format)
			}
			if outPath == "" {
				outPath = "usecases." + format
			}

			ctx, svc, closeFn, err := env.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			var w io.Writer = env.out
			if outPath != "-" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			n, err := svc.export.Export(ctx, w, exportFormat, &params)
			if err != nil {
				return err
			}
			if outPath == "-" {
				return nil
			}
			return env.writeJSON(map[string]any{"rows": n, "path": outPath})
		},
	}

	cmd.Flags().StringVar(&format, "format", string(services.ExportXLSX), "Output format: xlsx or json")
	cmd.Flags().StringVar(&outPath, "out", "", `Output path, "-" for stdout (default usecases.<format>)`)
	cmd.Flags().StringVar(&params.UseCase, "use-case", "", "Only export this use case")
	cmd.Flags().StringVar(&params.Product, "product", "", "Only export this product")
	return cmd
}
