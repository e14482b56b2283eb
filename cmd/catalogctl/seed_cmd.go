package main

import (
	"github.com/spf13/cobra"

	"github.com/iota-uz/usecase-catalog/modules/catalog/services"
)

func newSeedCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Insert catalog rows from a YAML or TOML file",
		Long: "Insert catalog rows from a YAML or TOML file. Rows whose use case and " +
			"product pair already exists are skipped. The whole file is applied in one transaction.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := services.LoadSeedFile(args[0])
			if err != nil {
				return err
			}
			ctx, svc, closeFn, err := env.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := svc.seed.Apply(ctx, rows)
			if err != nil {
				return err
			}
			return env.writeJSON(res)
		},
	}
}
