package metrics

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iota-uz/usecase-catalog/pkg/application"
)

const DefaultPath = "/debug/prometheus"

type PrometheusControllerOptions struct {
	Path string
	// Defaults to prometheus.DefaultGatherer, where the API request and
	// moderation event collectors register.
	Gatherer prometheus.Gatherer
}

// PrometheusController exposes the catalog's collectors for scraping.
type PrometheusController struct {
	path     string
	gatherer prometheus.Gatherer
}

func NewPrometheusController(opts PrometheusControllerOptions) application.Controller {
	if opts.Path == "" {
		opts.Path = DefaultPath
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	return &PrometheusController{path: opts.Path, gatherer: opts.Gatherer}
}

func (c *PrometheusController) Key() string {
	return "PrometheusController"
}

func (c *PrometheusController) Register(r *mux.Router) {
	handler := promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{EnableOpenMetrics: true})
	r.Handle(c.path, handler).Methods(http.MethodGet)
}
