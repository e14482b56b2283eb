package services

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/iota-uz/usecase-catalog/modules/catalog/domain/aggregates/submission"
	"github.com/iota-uz/usecase-catalog/modules/catalog/domain/aggregates/usecase"
	"github.com/iota-uz/usecase-catalog/pkg/composables"
)

type Filters struct {
	UseCases []string
	Products []string
}

type QueryService struct {
	useCases usecase.Repository
	pending  submission.Repository
}

func NewQueryService(useCases usecase.Repository, pending submission.Repository) *QueryService {
	return &QueryService{
		useCases: useCases,
		pending:  pending,
	}
}

// Filters loads the distinct UseCase and Product values concurrently.
func (s *QueryService) Filters(ctx context.Context) (Filters, error) {
	var out Filters
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		names, err := s.useCases.DistinctUseCases(gctx)
		if err != nil {
			return errors.Wrap(err, "distinct use cases")
		}
		out.UseCases = names
		return nil
	})
	g.Go(func() error {
		products, err := s.useCases.DistinctProducts(gctx)
		if err != nil {
			return errors.Wrap(err, "distinct products")
		}
		out.Products = products
		return nil
	})
	if err := g.Wait(); err != nil {
		composables.UseLogger(ctx).WithError(err).Error("failed to load filters")
		return Filters{}, err
	}
	return out, nil
}

func (s *QueryService) ListUseCases(ctx context.Context, params *usecase.FindParams) ([]usecase.UseCase, error) {
	items, err := s.useCases.List(ctx, params)
	if err != nil {
		composables.UseLogger(ctx).WithError(err).Error("failed to list use cases")
		return nil, err
	}
	return items, nil
}

func (s *QueryService) ListPending(ctx context.Context) ([]submission.PendingView, error) {
	items, err := s.pending.ListWithCatalog(ctx)
	if err != nil {
		composables.UseLogger(ctx).WithError(err).Error("failed to list pending items")
		return nil, err
	}
	for _, item := range items {
		if item.Submission == nil {
			composables.UseLogger(ctx).WithField("pending_id", item.ID).Warn("pending item payload is malformed")
		}
	}
	return items, nil
}
