package main

import (
	"github.com/spf13/cobra"

	"github.com/iota-uz/usecase-catalog/migrations"
)

type migrationRow struct {
	Version int64  `json:"version"`
	Source  string `json:"source"`
	State   string `json:"state"`
}

func newMigrateCmd(env *cliEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := env.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()
			applied, err := migrations.Up(cmd.Context(), db.DB)
			if err != nil {
				return err
			}
			return env.writeJSON(map[string]int{"applied": applied})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := env.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()
			if err := migrations.Down(cmd.Context(), db.DB); err != nil {
				return err
			}
			return env.writeJSON(map[string]int{"rolled_back": 1})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := env.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()
			statuses, err := migrations.Status(cmd.Context(), db.DB)
			if err != nil {
				return err
			}
			rows := make([]migrationRow, 0, len(statuses))
			for _, s := range statuses {
				rows = append(rows, migrationRow{
					Version: s.Source.Version,
					Source:  s.Source.Path,
					State:   string(s.State),
				})
			}
			return env.writeJSON(rows)
		},
	})
	return cmd
}
