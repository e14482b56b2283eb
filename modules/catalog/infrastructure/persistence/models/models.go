package models

import (
	"database/sql"
	"time"
)

type UseCase struct {
	ID               int64  `db:"id"`
	UseCase          string `db:"use_case"`
	Product          string `db:"product"`
	SuccessCriterion string `db:"success_criterion"`
	Measurement      string `db:"measurement"`
}

type PendingCriterion struct {
	ID                 int64         `db:"id"`
	UseCaseID          sql.NullInt64 `db:"use_case_id"`
	OriginalCriterion  string        `db:"original_criterion"`
	SuggestedCriterion string        `db:"suggested_criterion"`
	SubmittedAt        time.Time     `db:"submitted_at"`
}

type PendingWithCatalog struct {
	PendingCriterion
	CatalogUseCase     sql.NullString `db:"catalog_use_case"`
	CatalogProduct     sql.NullString `db:"catalog_product"`
	CatalogMeasurement sql.NullString `db:"catalog_measurement"`
}
