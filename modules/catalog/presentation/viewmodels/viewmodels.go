package viewmodels

import "time"

type UseCase struct {
	ID               int64  `json:"id"`
	UseCase          string `json:"UseCase"`
	Product          string `json:"Product"`
	SuccessCriterion string `json:"SuccessCriterion"`
	Measurement      string `json:"Measurement"`
}

type FilterUseCase struct {
	UseCase string `json:"UseCase"`
}

type FilterProduct struct {
	Product string `json:"Product"`
}

type Filters struct {
	UseCases []FilterUseCase `json:"useCases"`
	Products []FilterProduct `json:"products"`
}

type Proposal struct {
	UseCaseName      string `json:"useCaseName"`
	ProductName      string `json:"productName"`
	SuccessCriterion string `json:"successCriterion"`
	Measurement      string `json:"measurement"`
}

// PendingItem keeps the stored row's keys first so existing admin clients
// can read it unchanged.
type PendingItem struct {
	ID                 int64     `json:"id"`
	UseCaseID          *int64    `json:"use_case_id"`
	OriginalCriterion  string    `json:"original_criterion"`
	SuggestedCriterion string    `json:"suggested_criterion"`
	SubmittedAt        time.Time `json:"submitted_at"`
	UseCase            *string   `json:"UseCase"`
	Product            *string   `json:"Product"`
	Measurement        *string   `json:"Measurement"`
	Kind               string    `json:"kind"`
	Proposal           *Proposal `json:"proposal,omitempty"`
}
