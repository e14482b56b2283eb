package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iota-uz/usecase-catalog/modules/catalog/domain/aggregates/submission"
	"github.com/iota-uz/usecase-catalog/modules/catalog/presentation/mappers"
)

func parsePendingID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid pending id %q", raw)
	}
	return id, nil
}

func newPendingCmd(env *cliEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pending",
		Short: "Review pending suggestions and proposals",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List pending items, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, svc, closeFn, err := env.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			items, err := svc.query.ListPending(ctx)
			if err != nil {
				return err
			}
			return env.writeJSON(mappers.PendingViewsToViewModels(items))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a pending item with the payload it was submitted with",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePendingID(args[0])
			if err != nil {
				return err
			}
			ctx, svc, closeFn, err := env.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			if err := svc.approval.Approve(ctx, id); err != nil {
				return err
			}
			return env.writeJSON(map[string]any{"pending_id": id, "approved": true})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reject <id>",
		Short: "Discard a pending item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePendingID(args[0])
			if err != nil {
				return err
			}
			ctx, svc, closeFn, err := env.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			removed, err := svc.approval.Reject(ctx, &submission.RejectDTO{PendingID: id})
			if err != nil {
				return err
			}
			return env.writeJSON(map[string]any{"pending_id": id, "removed": removed})
		},
	})
	return cmd
}
