package services

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/usecase-catalog/modules/catalog/domain/aggregates/submission"
	"github.com/iota-uz/usecase-catalog/modules/catalog/domain/aggregates/usecase"
	"github.com/iota-uz/usecase-catalog/pkg/composables"
	"github.com/iota-uz/usecase-catalog/pkg/eventbus"
	"github.com/iota-uz/usecase-catalog/pkg/serrors"
)

type SubmissionService struct {
	repo      submission.Repository
	publisher eventbus.EventBus
}

func NewSubmissionService(repo submission.Repository, publisher eventbus.EventBus) *SubmissionService {
	return &SubmissionService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *SubmissionService) SubmitSuggestion(ctx context.Context, dto *submission.SuggestEditDTO) (submission.PendingItem, error) {
	if dto == nil {
		return submission.PendingItem{}, errors.New("missing dto")
	}
	if errs, ok := dto.Ok(); !ok {
		composables.UseLogger(ctx).WithField("fields", errs).Info("edit suggestion rejected by validation")
		return submission.PendingItem{}, serrors.ValidationErrors(errs)
	}
	return s.create(ctx, dto.ToSubmission())
}

func (s *SubmissionService) ProposeNew(ctx context.Context, dto *submission.ProposeNewDTO) (submission.PendingItem, error) {
	if dto == nil {
		return submission.PendingItem{}, errors.New("missing dto")
	}
	if errs, ok := dto.Ok(); !ok {
		composables.UseLogger(ctx).WithField("fields", errs).Info("new proposal rejected by validation")
		return submission.PendingItem{}, serrors.ValidationErrors(errs)
	}
	return s.create(ctx, dto.ToSubmission())
}

func (s *SubmissionService) create(ctx context.Context, sub submission.Submission) (submission.PendingItem, error) {
	logger := composables.UseLogger(ctx).WithField("kind", sub.Kind())
	if edit, ok := sub.(submission.EditSuggestion); ok {
		logger = logger.WithField("use_case_id", edit.UseCaseID)
	}

	item, err := s.repo.Create(ctx, sub)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			logger.Info("edit suggestion targets an unknown use case")
			return submission.PendingItem{}, err
		}
		logger.WithError(err).Error("failed to store submission")
		return submission.PendingItem{}, errors.Wrap(err, "submit")
	}

	logger.WithFields(logrus.Fields{"pending_id": item.ID}).Info("submission received")
	if s.publisher != nil {
		s.publisher.Publish(submission.ReceivedEvent{Item: item})
	}
	return item, nil
}
