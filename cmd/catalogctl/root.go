package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iota-uz/usecase-catalog/internal/database"
	"github.com/iota-uz/usecase-catalog/modules/catalog/handlers"
	"github.com/iota-uz/usecase-catalog/modules/catalog/infrastructure/persistence"
	"github.com/iota-uz/usecase-catalog/modules/catalog/services"
	"github.com/iota-uz/usecase-catalog/pkg/composables"
	"github.com/iota-uz/usecase-catalog/pkg/configuration"
	"github.com/iota-uz/usecase-catalog/pkg/eventbus"
)

// cliEnv holds what the commands need from the outside world.
type cliEnv struct {
	out    io.Writer
	logger *logrus.Logger
	openDB func(ctx context.Context) (*sqlx.DB, error)
}

func defaultEnv() *cliEnv {
	return &cliEnv{
		out: os.Stdout,
		openDB: func(ctx context.Context) (*sqlx.DB, error) {
			return database.Open(ctx, configuration.Use().Database)
		},
	}
}

func (e *cliEnv) log() *logrus.Logger {
	if e.logger == nil {
		e.logger = configuration.Use().Logger()
	}
	return e.logger
}

type catalogServices struct {
	query    *services.QueryService
	approval *services.ApprovalService
	export   *services.ExportService
	seed     *services.SeedService
}

// connect opens the database and returns a context carrying it together with
// the catalog services. The returned func closes the database.
func (e *cliEnv) connect(ctx context.Context) (context.Context, *catalogServices, func(), error) {
	db, err := e.openDB(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := e.log()
	bus := eventbus.NewEventPublisher(logger)
	audit, err := handlers.NewModerationEventsHandler(logger, prometheus.NewRegistry())
	if err != nil {
		_ = db.Close()
		return nil, nil, nil, err
	}
	unsubscribe := audit.Subscribe(bus)

	useCases := persistence.NewUseCaseRepository()
	pending := persistence.NewPendingRepository()
	svc := &catalogServices{
		query:    services.NewQueryService(useCases, pending),
		approval: services.NewApprovalService(pending, useCases, bus),
		export:   services.NewExportService(useCases),
		seed:     services.NewSeedService(useCases),
	}

	ctx = composables.WithDB(ctx, db)
	ctx = composables.WithLogger(ctx, logger.WithField("entrypoint", "catalogctl"))
	return ctx, svc, func() {
		unsubscribe()
		_ = db.Close()
	}, nil
}

func (e *cliEnv) writeJSON(v any) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newRootCmd(env *cliEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Use case catalog maintenance and moderation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newMigrateCmd(env))
	cmd.AddCommand(newSeedCmd(env))
	cmd.AddCommand(newExportCmd(env))
	cmd.AddCommand(newPendingCmd(env))
	return cmd
}

func Execute() {
	if err := newRootCmd(defaultEnv()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
