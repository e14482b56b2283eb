package usecase

import (
	"context"
	"strings"

	"github.com/iota-uz/usecase-catalog/pkg/constants"
)

// FindParams filters the catalog by exact UseCase and Product values. Empty
// values and the "all" sentinel do not restrict.
type FindParams struct {
	UseCase string `form:"useCase"`
	Product string `form:"product"`
}

func normalizeFilter(v string) string {
	v = strings.TrimSpace(v)
	if v == constants.AllFilter {
		return ""
	}
	return v
}

func (p *FindParams) Normalize() {
	if p == nil {
		return
	}
	p.UseCase = normalizeFilter(p.UseCase)
	p.Product = normalizeFilter(p.Product)
}

type Repository interface {
	DistinctUseCases(ctx context.Context) ([]string, error)
	DistinctProducts(ctx context.Context) ([]string, error)
	List(ctx context.Context, params *FindParams) ([]UseCase, error)
	GetByID(ctx context.Context, id int64) (UseCase, error)
	Exists(ctx context.Context, name, product string) (bool, error)
	Create(ctx context.Context, u UseCase) (UseCase, error)
	// UpdateSuccessCriterion returns the number of rows it changed.
	UpdateSuccessCriterion(ctx context.Context, id int64, criterion string) (int64, error)
}
