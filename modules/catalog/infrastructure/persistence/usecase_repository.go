package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/iota-uz/usecase-catalog/modules/catalog/domain/aggregates/usecase"
	"github.com/iota-uz/usecase-catalog/modules/catalog/infrastructure/persistence/models"
	"github.com/iota-uz/usecase-catalog/pkg/composables"
	"github.com/iota-uz/usecase-catalog/pkg/repo"
)

const (
	useCaseSelectQuery = `SELECT id, use_case, product, success_criterion, measurement FROM use_cases`

	useCaseDistinctNamesQuery    = `SELECT DISTINCT use_case FROM use_cases ORDER BY use_case`
	useCaseDistinctProductsQuery = `SELECT DISTINCT product FROM use_cases ORDER BY product`

	useCaseExistsQuery = `SELECT 1 FROM use_cases WHERE use_case = $1 AND product = $2`

	useCaseInsertQuery = `
		INSERT INTO use_cases (use_case, product, success_criterion, measurement)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	useCaseUpdateCriterionQuery = `UPDATE use_cases SET success_criterion = $1 WHERE id = $2`
)

type UseCaseRepository struct{}

func NewUseCaseRepository() usecase.Repository {
	return &UseCaseRepository{}
}

func (r *UseCaseRepository) DistinctUseCases(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, useCaseDistinctNamesQuery)
}

func (r *UseCaseRepository) DistinctProducts(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, useCaseDistinctProductsQuery)
}

func (r *UseCaseRepository) distinct(ctx context.Context, query string) ([]string, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	values := make([]string, 0)
	if err := sqlx.SelectContext(ctx, tx, &values, query); err != nil {
		return nil, errors.Wrap(err, "failed to query distinct values")
	}
	return values, nil
}

func (r *UseCaseRepository) List(ctx context.Context, params *usecase.FindParams) ([]usecase.UseCase, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	p := usecase.FindParams{}
	if params != nil {
		p = *params
	}
	p.Normalize()

	var where []string
	var args []any
	if p.UseCase != "" {
		args = append(args, p.UseCase)
		where = append(where, fmt.Sprintf("use_case = $%d", len(args)))
	}
	if p.Product != "" {
		args = append(args, p.Product)
		where = append(where, fmt.Sprintf("product = $%d", len(args)))
	}

	query := repo.Join(
		useCaseSelectQuery,
		repo.JoinWhere(where...),
		"ORDER BY use_case, product, id",
	)

	var rows []models.UseCase
	if err := sqlx.SelectContext(ctx, tx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "failed to list use cases")
	}
	out := make([]usecase.UseCase, 0, len(rows))
	for _, row := range rows {
		out = append(out, ToDomainUseCase(row))
	}
	return out, nil
}

func (r *UseCaseRepository) GetByID(ctx context.Context, id int64) (usecase.UseCase, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return usecase.UseCase{}, errors.Wrap(err, "failed to get transaction")
	}
	var row models.UseCase
	query := repo.Join(useCaseSelectQuery, repo.JoinWhere("id = $1"))
	if err := sqlx.GetContext(ctx, tx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return usecase.UseCase{}, usecase.ErrNotFound
		}
		return usecase.UseCase{}, errors.Wrapf(err, "failed to get use case %d", id)
	}
	return ToDomainUseCase(row), nil
}

func (r *UseCaseRepository) Exists(ctx context.Context, name, product string) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, errors.Wrap(err, "failed to get transaction")
	}
	var exists bool
	if err := sqlx.GetContext(ctx, tx, &exists, repo.Exists(useCaseExistsQuery), name, product); err != nil {
		return false, errors.Wrap(err, "failed to check use case existence")
	}
	return exists, nil
}

func (r *UseCaseRepository) Create(ctx context.Context, u usecase.UseCase) (usecase.UseCase, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return usecase.UseCase{}, errors.Wrap(err, "failed to get transaction")
	}
	var id int64
	if err := sqlx.GetContext(ctx, tx, &id, useCaseInsertQuery,
		u.Name(), u.Product(), u.SuccessCriterion(), u.Measurement(),
	); err != nil {
		return usecase.UseCase{}, errors.Wrap(err, "failed to insert use case")
	}
	return usecase.Hydrate(id, u.Name(), u.Product(), u.SuccessCriterion(), u.Measurement()), nil
}

func (r *UseCaseRepository) UpdateSuccessCriterion(ctx context.Context, id int64, criterion string) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get transaction")
	}
	res, err := tx.ExecContext(ctx, useCaseUpdateCriterionQuery, criterion, id)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to update success criterion of use case %d", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "failed to read affected rows")
	}
	return n, nil
}
