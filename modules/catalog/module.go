package catalog

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/iota-uz/usecase-catalog/modules/catalog/handlers"
	"github.com/iota-uz/usecase-catalog/modules/catalog/infrastructure/persistence"
	"github.com/iota-uz/usecase-catalog/modules/catalog/presentation/controllers"
	"github.com/iota-uz/usecase-catalog/modules/catalog/services"
	"github.com/iota-uz/usecase-catalog/pkg/application"
)

type ModuleOptions struct {
	// SubmitLimiter throttles the anonymous submission endpoints. Nil disables it.
	SubmitLimiter mux.MiddlewareFunc
	// Registerer receives the moderation counters. Defaults to prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
}

func NewModule(opts *ModuleOptions) application.Module {
	if opts == nil {
		opts = &ModuleOptions{}
	}
	return &Module{options: opts}
}

type Module struct {
	options *ModuleOptions
}

func (m *Module) Register(app application.Application) error {
	useCaseRepo := persistence.NewUseCaseRepository()
	pendingRepo := persistence.NewPendingRepository()
	publisher := app.EventPublisher()

	app.RegisterServices(
		services.NewQueryService(useCaseRepo, pendingRepo),
		services.NewSubmissionService(pendingRepo, publisher),
		services.NewApprovalService(pendingRepo, useCaseRepo, publisher),
		services.NewExportService(useCaseRepo),
		services.NewSeedService(useCaseRepo),
	)

	registerer := m.options.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	audit, err := handlers.NewModerationEventsHandler(app.Logger(), registerer)
	if err != nil {
		return err
	}
	audit.Subscribe(publisher)

	var submitMiddlewares []mux.MiddlewareFunc
	if m.options.SubmitLimiter != nil {
		submitMiddlewares = append(submitMiddlewares, m.options.SubmitLimiter)
	}
	app.RegisterControllers(
		controllers.NewHealthController(app),
		controllers.NewCatalogAPIController(app),
		controllers.NewModerationAPIController(controllers.ModerationAPIControllerConfig{
			App:               app,
			SubmitMiddlewares: submitMiddlewares,
		}),
	)
	return nil
}

func (m *Module) Name() string {
	return "catalog"
}
