package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/usecase-catalog/modules/catalog/domain/aggregates/submission"
	"github.com/iota-uz/usecase-catalog/modules/catalog/domain/aggregates/usecase"
	"github.com/iota-uz/usecase-catalog/pkg/composables"
	"github.com/iota-uz/usecase-catalog/pkg/eventbus"
	"github.com/iota-uz/usecase-catalog/pkg/serrors"
)

// ApprovalService moves pending items into the catalog or discards them.
// Every approval runs its pending delete and its catalog write in one
// transaction, delete first, so a racing approval of the same item finds
// nothing to delete and changes nothing.
type ApprovalService struct {
	pending   submission.Repository
	useCases  usecase.Repository
	publisher eventbus.EventBus
	now       func() time.Time
}

func NewApprovalService(
	pending submission.Repository,
	useCases usecase.Repository,
	publisher eventbus.EventBus,
) *ApprovalService {
	return &ApprovalService{
		pending:   pending,
		useCases:  useCases,
		publisher: publisher,
		now:       time.Now,
	}
}

// Reject deletes the pending item. Rejecting an item that is already gone
// succeeds with removed == false.
func (s *ApprovalService) Reject(ctx context.Context, dto *submission.RejectDTO) (bool, error) {
	if dto == nil {
		return false, errors.New("missing dto")
	}
	logger := composables.UseLogger(ctx).WithField("pending_id", dto.PendingID)
	if errs, ok := dto.Ok(); !ok {
		logger.WithField("fields", errs).Info("reject rejected by validation")
		return false, serrors.ValidationErrors(errs)
	}

	kind, removed, err := s.pending.Delete(ctx, dto.PendingID)
	if err != nil {
		logger.WithError(err).Error("failed to reject pending item")
		return false, errors.Wrap(err, "reject")
	}
	if !removed {
		logger.Info("pending item already removed")
		return false, nil
	}

	logger.WithField("kind", kind).Info("pending item rejected")
	s.publish(submission.RejectedEvent{PendingID: dto.PendingID, Kind: kind, At: s.now()})
	return true, nil
}

func (s *ApprovalService) ApproveEdit(ctx context.Context, dto *submission.ApproveEditDTO) error {
	if dto == nil {
		return errors.New("missing dto")
	}
	logger := composables.UseLogger(ctx).WithFields(logrus.Fields{
		"pending_id":  dto.PendingID,
		"use_case_id": dto.UseCaseID,
	})
	if errs, ok := dto.Ok(); !ok {
		logger.WithField("fields", errs).Info("approve-edit rejected by validation")
		return serrors.ValidationErrors(errs)
	}

	err := composables.InTx(ctx, func(txCtx context.Context) error {
		deleted, err := s.pending.DeleteEdit(txCtx, dto.PendingID, dto.UseCaseID)
		if err != nil {
			return err
		}
		if !deleted {
			return s.explainMissing(txCtx, dto.PendingID)
		}
		n, err := s.useCases.UpdateSuccessCriterion(txCtx, dto.UseCaseID, dto.SuggestedCriterion)
		if err != nil {
			return err
		}
		if n == 0 {
			return usecase.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return s.fail(logger, "approve-edit", err)
	}

	logger.Info("edit suggestion approved")
	s.publish(submission.ApprovedEvent{
		PendingID: dto.PendingID,
		Kind:      submission.KindEdit,
		UseCaseID: dto.UseCaseID,
		At:        s.now(),
	})
	return nil
}

func (s *ApprovalService) ApproveNew(ctx context.Context, dto *submission.ApproveNewDTO) (usecase.UseCase, error) {
	if dto == nil {
		return usecase.UseCase{}, errors.New("missing dto")
	}
	logger := composables.UseLogger(ctx).WithField("pending_id", dto.PendingID)
	if errs, ok := dto.Ok(); !ok {
		logger.WithField("fields", errs).Info("approve-new rejected by validation")
		return usecase.UseCase{}, serrors.ValidationErrors(errs)
	}

	created, err := composables.InTxResult(ctx, func(txCtx context.Context) (usecase.UseCase, error) {
		deleted, err := s.pending.DeleteProposal(txCtx, dto.PendingID)
		if err != nil {
			return usecase.UseCase{}, err
		}
		if !deleted {
			return usecase.UseCase{}, s.explainMissing(txCtx, dto.PendingID)
		}
		return s.useCases.Create(txCtx, usecase.New(
			dto.UseCaseName,
			dto.ProductName,
			dto.SuccessCriterion,
			dto.Measurement,
		))
	})
	if err != nil {
		return usecase.UseCase{}, s.fail(logger, "approve-new", err)
	}

	logger.WithField("use_case_id", created.ID()).Info("new proposal approved")
	s.publish(submission.ApprovedEvent{
		PendingID: dto.PendingID,
		Kind:      submission.KindNew,
		UseCaseID: created.ID(),
		At:        s.now(),
	})
	return created, nil
}

// Approve approves a pending item with the payload it was submitted with.
func (s *ApprovalService) Approve(ctx context.Context, pendingID int64) error {
	item, err := s.pending.GetByID(ctx, pendingID)
	if err != nil {
		return err
	}
	switch v := item.Submission.(type) {
	case submission.EditSuggestion:
		return s.ApproveEdit(ctx, &submission.ApproveEditDTO{
			PendingID:          item.ID,
			UseCaseID:          v.UseCaseID,
			SuggestedCriterion: v.SuggestedText,
		})
	case submission.NewProposal:
		_, err := s.ApproveNew(ctx, &submission.ApproveNewDTO{
			PendingID:        item.ID,
			UseCaseName:      v.UseCaseName,
			ProductName:      v.ProductName,
			SuccessCriterion: v.SuccessCriterion,
			Measurement:      v.Measurement,
		})
		return err
	default:
		return errors.Errorf("unsupported submission type %T", item.Submission)
	}
}

// explainMissing runs after a conditional delete matched nothing and tells a
// consumed item apart from one of the other variant.
func (s *ApprovalService) explainMissing(ctx context.Context, pendingID int64) error {
	exists, err := s.pending.Exists(ctx, pendingID)
	if err != nil {
		return err
	}
	if exists {
		return submission.ErrKindMismatch
	}
	return submission.ErrPendingNotFound
}

func (s *ApprovalService) fail(logger *logrus.Entry, op string, err error) error {
	switch {
	case errors.Is(err, submission.ErrPendingNotFound),
		errors.Is(err, submission.ErrKindMismatch),
		errors.Is(err, usecase.ErrNotFound):
		logger.WithError(err).Info(op + " did not apply")
		return err
	default:
		logger.WithError(err).Error(op + " failed")
		return errors.Wrap(err, op)
	}
}

func (s *ApprovalService) publish(event any) {
	if s.publisher != nil {
		s.publisher.Publish(event)
	}
}
