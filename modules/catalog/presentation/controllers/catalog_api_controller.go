package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iota-uz/usecase-catalog/modules/catalog/domain/aggregates/usecase"
	"github.com/iota-uz/usecase-catalog/modules/catalog/presentation/mappers"
	"github.com/iota-uz/usecase-catalog/modules/catalog/services"
	"github.com/iota-uz/usecase-catalog/pkg/application"
	"github.com/iota-uz/usecase-catalog/pkg/composables"
	"github.com/iota-uz/usecase-catalog/pkg/httpapi"
	"github.com/iota-uz/usecase-catalog/pkg/metrics"
)

type CatalogAPIController struct {
	app          application.Application
	queryService *services.QueryService
}

func NewCatalogAPIController(app application.Application) application.Controller {
	return &CatalogAPIController{
		app:          app,
		queryService: app.Service(services.QueryService{}).(*services.QueryService),
	}
}

func (c *CatalogAPIController) Key() string {
	return "CatalogAPIController"
}

func (c *CatalogAPIController) Register(r *mux.Router) {
	r.Handle("/api/filters", metrics.Instrument("list-filters", c.Filters)).Methods(http.MethodGet)
	r.Handle("/api/usecases", metrics.Instrument("list-usecases", c.UseCases)).Methods(http.MethodGet)
}

func (c *CatalogAPIController) Filters(w http.ResponseWriter, r *http.Request) {
	logger := composables.UseLogger(r.Context())
	filters, err := c.queryService.Filters(r.Context())
	if err != nil {
		logger.WithError(err).Error("failed to fetch filters")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "Could not fetch filters from database")
		return
	}
	writeJSON(w, logger, mappers.FiltersToViewModel(filters))
}

func (c *CatalogAPIController) UseCases(w http.ResponseWriter, r *http.Request) {
	logger := composables.UseLogger(r.Context())
	params, err := composables.UseQuery(&usecase.FindParams{}, r)
	if err != nil {
		logger.WithError(err).Info("invalid use case query")
		_ = httpapi.WriteError(w, http.StatusBadRequest, "Invalid query parameters")
		return
	}
	items, err := c.queryService.ListUseCases(r.Context(), params)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "Could not fetch use cases from database")
		return
	}
	writeJSON(w, logger, mappers.UseCasesToViewModels(items))
}
