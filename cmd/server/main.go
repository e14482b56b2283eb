package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/iota-uz/usecase-catalog/internal/database"
	"github.com/iota-uz/usecase-catalog/internal/server"
	"github.com/iota-uz/usecase-catalog/migrations"
	"github.com/iota-uz/usecase-catalog/modules"
	"github.com/iota-uz/usecase-catalog/modules/catalog"
	"github.com/iota-uz/usecase-catalog/pkg/application"
	"github.com/iota-uz/usecase-catalog/pkg/configuration"
	"github.com/iota-uz/usecase-catalog/pkg/eventbus"
	"github.com/iota-uz/usecase-catalog/pkg/logging"
	"github.com/iota-uz/usecase-catalog/pkg/metrics"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	defer conf.Unload()
	logger := conf.Logger()

	if conf.OpenTelemetry.Enabled {
		tracingCleanup := logging.SetupTracing(
			context.Background(),
			conf.OpenTelemetry.ServiceName,
			conf.OpenTelemetry.ExporterURL,
		)
		defer tracingCleanup()
		logger.Info("OpenTelemetry tracing enabled, exporting to " + conf.OpenTelemetry.ExporterURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	db, err := database.Open(ctx, conf.Database)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	if conf.MigrationsAuto {
		applied, err := migrations.Up(context.Background(), db.DB)
		if err != nil {
			log.Fatalf("failed to apply migrations: %v", err)
		}
		logger.WithField("applied", applied).Info("migrations applied")
	}

	app := application.New(&application.ApplicationOptions{
		DB:       db,
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})

	submitLimiter, err := server.SubmitLimiter(conf, logger)
	if err != nil {
		log.Fatalf("failed to create rate limiter: %v", err)
	}
	if err := modules.Load(app, modules.BuiltInModules(&catalog.ModuleOptions{
		SubmitLimiter: submitLimiter,
	})...); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(metrics.PrometheusControllerOptions{
			Path: conf.Prometheus.Path,
		}))
	}

	serverInstance, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
		DB:            db,
	})
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Listening on: %s", conf.SocketAddress)
		errCh <- serverInstance.Start(conf.SocketAddress)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	case sig := <-stop:
		logger.WithField("signal", sig.String()).Info("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer shutdownCancel()
		if err := serverInstance.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("graceful shutdown failed")
		}
	}
}
