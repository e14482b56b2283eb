package persistence

import (
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/iota-uz/usecase-catalog/modules/catalog/domain/aggregates/submission"
	"github.com/iota-uz/usecase-catalog/modules/catalog/domain/aggregates/usecase"
	"github.com/iota-uz/usecase-catalog/modules/catalog/infrastructure/persistence/models"
)

func ToDomainUseCase(m models.UseCase) usecase.UseCase {
	return usecase.Hydrate(m.ID, m.UseCase, m.Product, m.SuccessCriterion, m.Measurement)
}

// proposalTarget and proposalOutcome are the JSON pairs a new proposal keeps
// in original_criterion and suggested_criterion.
type proposalTarget struct {
	UseCaseName string `json:"useCaseName"`
	ProductName string `json:"productName"`
}

type proposalOutcome struct {
	SuccessCriterion string `json:"successCriterion"`
	Measurement      string `json:"measurement"`
}

// EncodeSubmission flattens a submission into the pending row layout.
func EncodeSubmission(s submission.Submission) (submission.Row, error) {
	switch v := s.(type) {
	case submission.EditSuggestion:
		id := v.UseCaseID
		return submission.Row{
			UseCaseID:          &id,
			OriginalCriterion:  v.OriginalText,
			SuggestedCriterion: v.SuggestedText,
		}, nil
	case submission.NewProposal:
		target, err := json.Marshal(proposalTarget{UseCaseName: v.UseCaseName, ProductName: v.ProductName})
		if err != nil {
			return submission.Row{}, errors.Wrap(err, "encode proposal target")
		}
		outcome, err := json.Marshal(proposalOutcome{SuccessCriterion: v.SuccessCriterion, Measurement: v.Measurement})
		if err != nil {
			return submission.Row{}, errors.Wrap(err, "encode proposal outcome")
		}
		return submission.Row{
			OriginalCriterion:  string(target),
			SuggestedCriterion: string(outcome),
		}, nil
	default:
		return submission.Row{}, errors.Errorf("unsupported submission type %T", s)
	}
}

// DecodeSubmission is the inverse of EncodeSubmission. Rows are interpreted by
// the nullability of use_case_id before anything else.
func DecodeSubmission(row submission.Row) (submission.Submission, error) {
	if row.UseCaseID != nil {
		return submission.EditSuggestion{
			UseCaseID:     *row.UseCaseID,
			OriginalText:  row.OriginalCriterion,
			SuggestedText: row.SuggestedCriterion,
		}, nil
	}

	var target proposalTarget
	if err := json.Unmarshal([]byte(row.OriginalCriterion), &target); err != nil {
		return nil, errors.Wrapf(submission.ErrMalformedPayload, "original_criterion: %v", err)
	}
	var outcome proposalOutcome
	if err := json.Unmarshal([]byte(row.SuggestedCriterion), &outcome); err != nil {
		return nil, errors.Wrapf(submission.ErrMalformedPayload, "suggested_criterion: %v", err)
	}
	return submission.NewProposal{
		UseCaseName:      target.UseCaseName,
		ProductName:      target.ProductName,
		SuccessCriterion: outcome.SuccessCriterion,
		Measurement:      outcome.Measurement,
	}, nil
}

func toRow(m models.PendingCriterion) submission.Row {
	row := submission.Row{
		OriginalCriterion:  m.OriginalCriterion,
		SuggestedCriterion: m.SuggestedCriterion,
	}
	if m.UseCaseID.Valid {
		id := m.UseCaseID.Int64
		row.UseCaseID = &id
	}
	return row
}

func toNullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func ToDomainPendingItem(m models.PendingCriterion) (submission.PendingItem, error) {
	s, err := DecodeSubmission(toRow(m))
	if err != nil {
		return submission.PendingItem{}, errors.Wrapf(err, "pending item %d", m.ID)
	}
	return submission.PendingItem{
		ID:          m.ID,
		SubmittedAt: m.SubmittedAt,
		Submission:  s,
	}, nil
}

// ToDomainPendingView keeps undecodable rows visible with a nil Submission.
func ToDomainPendingView(m models.PendingWithCatalog) submission.PendingView {
	row := toRow(m.PendingCriterion)
	s, err := DecodeSubmission(row)
	if err != nil {
		s = nil
	}
	return submission.PendingView{
		ID:          m.ID,
		SubmittedAt: m.SubmittedAt,
		Row:         row,
		Submission:  s,
		UseCase:     nullStringPtr(m.CatalogUseCase),
		Product:     nullStringPtr(m.CatalogProduct),
		Measurement: nullStringPtr(m.CatalogMeasurement),
	}
}
