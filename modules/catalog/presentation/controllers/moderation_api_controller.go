package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iota-uz/usecase-catalog/modules/catalog/domain/aggregates/submission"
	"github.com/iota-uz/usecase-catalog/modules/catalog/presentation/mappers"
	"github.com/iota-uz/usecase-catalog/modules/catalog/services"
	"github.com/iota-uz/usecase-catalog/pkg/application"
	"github.com/iota-uz/usecase-catalog/pkg/composables"
	"github.com/iota-uz/usecase-catalog/pkg/httpapi"
	"github.com/iota-uz/usecase-catalog/pkg/metrics"
)

type ModerationAPIControllerConfig struct {
	App application.Application
	// Applied to the two anonymous submission endpoints only.
	SubmitMiddlewares []mux.MiddlewareFunc
}

// ModerationAPIController serves the submission endpoints used by visitors
// and the review endpoints used by administrators.
type ModerationAPIController struct {
	app               application.Application
	submitMiddlewares []mux.MiddlewareFunc
	submissions       *services.SubmissionService
	approvals         *services.ApprovalService
	queries           *services.QueryService
}

func NewModerationAPIController(cfg ModerationAPIControllerConfig) application.Controller {
	return &ModerationAPIController{
		app:               cfg.App,
		submitMiddlewares: cfg.SubmitMiddlewares,
		submissions:       cfg.App.Service(services.SubmissionService{}).(*services.SubmissionService),
		approvals:         cfg.App.Service(services.ApprovalService{}).(*services.ApprovalService),
		queries:           cfg.App.Service(services.QueryService{}).(*services.QueryService),
	}
}

func (c *ModerationAPIController) Key() string {
	return "ModerationAPIController"
}

func (c *ModerationAPIController) Register(r *mux.Router) {
	r.Handle("/api/submit-suggestion",
		chain(metrics.Instrument("submit-edit-suggestion", c.SubmitSuggestion), c.submitMiddlewares),
	).Methods(http.MethodPost)
	r.Handle("/api/propose-new-criterion",
		chain(metrics.Instrument("submit-new-proposal", c.ProposeNew), c.submitMiddlewares),
	).Methods(http.MethodPost)

	r.Handle("/api/pending-criteria", metrics.Instrument("list-pending", c.Pending)).Methods(http.MethodGet)
	r.Handle("/api/reject-criterion", metrics.Instrument("reject", c.Reject)).Methods(http.MethodPost)
	r.Handle("/api/approve-criterion", metrics.Instrument("approve-edit", c.ApproveEdit)).Methods(http.MethodPost)
	r.Handle("/api/approve-new-criterion", metrics.Instrument("approve-new", c.ApproveNew)).Methods(http.MethodPost)
}

func (c *ModerationAPIController) SubmitSuggestion(w http.ResponseWriter, r *http.Request) {
	logger := composables.UseLogger(r.Context())
	dto := &submission.SuggestEditDTO{}
	if err := decodeBody(r, dto); err != nil {
		writeFailure(w, logger, err, "")
		return
	}
	if _, err := c.submissions.SubmitSuggestion(r.Context(), dto); err != nil {
		writeFailure(w, logger, err, "Could not submit suggestion")
		return
	}
	_ = httpapi.WriteSuccess(w, "")
}

func (c *ModerationAPIController) ProposeNew(w http.ResponseWriter, r *http.Request) {
	logger := composables.UseLogger(r.Context())
	dto := &submission.ProposeNewDTO{}
	if err := decodeBody(r, dto); err != nil {
		writeFailure(w, logger, err, "")
		return
	}
	if _, err := c.submissions.ProposeNew(r.Context(), dto); err != nil {
		writeFailure(w, logger, err, "Could not submit proposal")
		return
	}
	_ = httpapi.WriteSuccess(w, "Proposal submitted for review")
}

func (c *ModerationAPIController) Pending(w http.ResponseWriter, r *http.Request) {
	logger := composables.UseLogger(r.Context())
	items, err := c.queries.ListPending(r.Context())
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "Could not fetch pending criteria from database")
		return
	}
	writeJSON(w, logger, mappers.PendingViewsToViewModels(items))
}

func (c *ModerationAPIController) Reject(w http.ResponseWriter, r *http.Request) {
	logger := composables.UseLogger(r.Context())
	dto := &submission.RejectDTO{}
	if err := decodeBody(r, dto); err != nil {
		writeFailure(w, logger, err, "")
		return
	}
	removed, err := c.approvals.Reject(r.Context(), dto)
	if err != nil {
		writeFailure(w, logger, err, "Could not reject suggestion")
		return
	}
	if !removed {
		_ = httpapi.WriteSuccess(w, "Suggestion was already removed")
		return
	}
	_ = httpapi.WriteSuccess(w, "Suggestion rejected")
}

func (c *ModerationAPIController) ApproveEdit(w http.ResponseWriter, r *http.Request) {
	logger := composables.UseLogger(r.Context())
	dto := &submission.ApproveEditDTO{}
	if err := decodeBody(r, dto); err != nil {
		writeFailure(w, logger, err, "")
		return
	}
	if err := c.approvals.ApproveEdit(r.Context(), dto); err != nil {
		writeFailure(w, logger, err, "Could not approve suggestion")
		return
	}
	_ = httpapi.WriteSuccess(w, "")
}

func (c *ModerationAPIController) ApproveNew(w http.ResponseWriter, r *http.Request) {
	logger := composables.UseLogger(r.Context())
	dto := &submission.ApproveNewDTO{}
	if err := decodeBody(r, dto); err != nil {
		writeFailure(w, logger, err, "")
		return
	}
	if _, err := c.approvals.ApproveNew(r.Context(), dto); err != nil {
		writeFailure(w, logger, err, "Could not approve new use case")
		return
	}
	_ = httpapi.WriteSuccess(w, "New use case approved")
}
