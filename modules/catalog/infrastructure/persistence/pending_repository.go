package persistence

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/iota-uz/usecase-catalog/modules/catalog/domain/aggregates/submission"
	"github.com/iota-uz/usecase-catalog/modules/catalog/domain/aggregates/usecase"
	"github.com/iota-uz/usecase-catalog/modules/catalog/infrastructure/persistence/models"
	"github.com/iota-uz/usecase-catalog/pkg/composables"
	"github.com/iota-uz/usecase-catalog/pkg/repo"
)

const pgForeignKeyViolation = "23503"

const (
	pendingSelectQuery = `SELECT id, use_case_id, original_criterion, suggested_criterion, submitted_at FROM pending_criteria`

	pendingInsertQuery = `
		INSERT INTO pending_criteria (use_case_id, original_criterion, suggested_criterion)
		VALUES ($1, $2, $3)
		RETURNING id, submitted_at`

	pendingExistsQuery = `SELECT 1 FROM pending_criteria WHERE id = $1`

	pendingListWithCatalogQuery = `
		SELECT
			p.id, p.use_case_id, p.original_criterion, p.suggested_criterion, p.submitted_at,
			u.use_case AS catalog_use_case,
			u.product AS catalog_product,
			u.measurement AS catalog_measurement
		FROM pending_criteria p
		LEFT JOIN use_cases u ON u.id = p.use_case_id
		ORDER BY p.submitted_at DESC, p.id DESC`

	pendingDeleteQuery         = `DELETE FROM pending_criteria WHERE id = $1 RETURNING use_case_id`
	pendingDeleteEditQuery     = `DELETE FROM pending_criteria WHERE id = $1 AND use_case_id = $2 RETURNING id`
	pendingDeleteProposalQuery = `DELETE FROM pending_criteria WHERE id = $1 AND use_case_id IS NULL RETURNING id`
)

type PendingRepository struct{}

func NewPendingRepository() submission.Repository {
	return &PendingRepository{}
}

func (r *PendingRepository) Create(ctx context.Context, s submission.Submission) (submission.PendingItem, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return submission.PendingItem{}, errors.Wrap(err, "failed to get transaction")
	}
	row, err := EncodeSubmission(s)
	if err != nil {
		return submission.PendingItem{}, err
	}

	var created models.PendingCriterion
	if err := sqlx.GetContext(ctx, tx, &created, pendingInsertQuery,
		toNullInt64(row.UseCaseID), row.OriginalCriterion, row.SuggestedCriterion,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return submission.PendingItem{}, usecase.ErrNotFound
		}
		return submission.PendingItem{}, errors.Wrap(err, "failed to insert pending item")
	}
	return submission.PendingItem{
		ID:          created.ID,
		SubmittedAt: created.SubmittedAt,
		Submission:  s,
	}, nil
}

func (r *PendingRepository) GetByID(ctx context.Context, id int64) (submission.PendingItem, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return submission.PendingItem{}, errors.Wrap(err, "failed to get transaction")
	}
	var row models.PendingCriterion
	query := repo.Join(pendingSelectQuery, repo.JoinWhere("id = $1"))
	if err := sqlx.GetContext(ctx, tx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return submission.PendingItem{}, submission.ErrPendingNotFound
		}
		return submission.PendingItem{}, errors.Wrapf(err, "failed to get pending item %d", id)
	}
	return ToDomainPendingItem(row)
}

func (r *PendingRepository) Exists(ctx context.Context, id int64) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, errors.Wrap(err, "failed to get transaction")
	}
	var exists bool
	if err := sqlx.GetContext(ctx, tx, &exists, repo.Exists(pendingExistsQuery), id); err != nil {
		return false, errors.Wrap(err, "failed to check pending item existence")
	}
	return exists, nil
}

func (r *PendingRepository) ListWithCatalog(ctx context.Context) ([]submission.PendingView, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	var rows []models.PendingWithCatalog
	if err := sqlx.SelectContext(ctx, tx, &rows, pendingListWithCatalogQuery); err != nil {
		return nil, errors.Wrap(err, "failed to list pending items")
	}
	out := make([]submission.PendingView, 0, len(rows))
	for _, row := range rows {
		out = append(out, ToDomainPendingView(row))
	}
	return out, nil
}

func (r *PendingRepository) Delete(ctx context.Context, id int64) (submission.Kind, bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return "", false, errors.Wrap(err, "failed to get transaction")
	}
	var useCaseID sql.NullInt64
	if err := sqlx.GetContext(ctx, tx, &useCaseID, pendingDeleteQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, "failed to delete pending item %d", id)
	}
	if useCaseID.Valid {
		return submission.KindEdit, true, nil
	}
	return submission.KindNew, true, nil
}

func (r *PendingRepository) DeleteEdit(ctx context.Context, id, useCaseID int64) (bool, error) {
	return r.deleteReturning(ctx, pendingDeleteEditQuery, id, useCaseID)
}

func (r *PendingRepository) DeleteProposal(ctx context.Context, id int64) (bool, error) {
	return r.deleteReturning(ctx, pendingDeleteProposalQuery, id)
}

func (r *PendingRepository) deleteReturning(ctx context.Context, query string, args ...any) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, errors.Wrap(err, "failed to get transaction")
	}
	var deleted int64
	if err := sqlx.GetContext(ctx, tx, &deleted, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, errors.Wrap(err, "failed to delete pending item")
	}
	return true, nil
}
