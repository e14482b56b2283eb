package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/usecase-catalog/modules/catalog/domain/aggregates/submission"
	"github.com/iota-uz/usecase-catalog/pkg/eventbus"
)

const (
	eventReceived = "received"
	eventApproved = "approved"
	eventRejected = "rejected"
)

// ModerationEventsHandler writes the audit trail and counts moderation
// outcomes.
type ModerationEventsHandler struct {
	logger *logrus.Entry
	events *prometheus.CounterVec
}

func NewModerationEventsHandler(logger *logrus.Logger, registerer prometheus.Registerer) (*ModerationEventsHandler, error) {
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_moderation_events_total",
		Help: "Moderation events by event type and submission kind.",
	}, []string{"event", "kind"})
	if registerer != nil {
		if err := registerer.Register(events); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			events = are.ExistingCollector.(*prometheus.CounterVec)
		}
	}
	return &ModerationEventsHandler{
		logger: logger.WithField("component", "moderation-audit"),
		events: events,
	}, nil
}

// Subscribe wires the handler to bus and returns a func that detaches it.
func (h *ModerationEventsHandler) Subscribe(bus eventbus.EventBus) func() {
	unsubscribers := []func(){
		bus.Subscribe(h.onReceived),
		bus.Subscribe(h.onApproved),
		bus.Subscribe(h.onRejected),
	}
	return func() {
		for _, u := range unsubscribers {
			u()
		}
	}
}

func (h *ModerationEventsHandler) onReceived(event submission.ReceivedEvent) {
	kind := submission.Kind("")
	if event.Item.Submission != nil {
		kind = event.Item.Submission.Kind()
	}
	h.events.WithLabelValues(eventReceived, string(kind)).Inc()

	fields := logrus.Fields{
		"event":        eventReceived,
		"pending_id":   event.Item.ID,
		"kind":         kind,
		"submitted_at": event.Item.SubmittedAt,
	}
	switch v := event.Item.Submission.(type) {
	case submission.EditSuggestion:
		fields["use_case_id"] = v.UseCaseID
	case submission.NewProposal:
		fields["use_case"] = v.UseCaseName
		fields["product"] = v.ProductName
	}
	h.logger.WithFields(fields).Info("moderation event")
}

func (h *ModerationEventsHandler) onApproved(event submission.ApprovedEvent) {
	h.events.WithLabelValues(eventApproved, string(event.Kind)).Inc()
	h.logger.WithFields(logrus.Fields{
		"event":       eventApproved,
		"pending_id":  event.PendingID,
		"kind":        event.Kind,
		"use_case_id": event.UseCaseID,
		"at":          event.At,
	}).Info("moderation event")
}

func (h *ModerationEventsHandler) onRejected(event submission.RejectedEvent) {
	h.events.WithLabelValues(eventRejected, string(event.Kind)).Inc()
	h.logger.WithFields(logrus.Fields{
		"event":      eventRejected,
		"pending_id": event.PendingID,
		"kind":       event.Kind,
		"at":         event.At,
	}).Info("moderation event")
}
