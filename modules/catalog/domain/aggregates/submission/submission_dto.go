package submission

import (
	"github.com/go-playground/validator/v10"

	"github.com/iota-uz/usecase-catalog/pkg/constants"
	"github.com/iota-uz/usecase-catalog/pkg/serrors"
)

type SuggestEditDTO struct {
	UseCaseID int64 `json:"use_case_id" validate:"required,gt=0"`
	// A pointer so a missing field fails validation while "" stays valid.
	OriginalCriterion  *string `json:"original_criterion" validate:"required"`
	SuggestedCriterion string  `json:"suggested_criterion" validate:"required,notblank"`
}

func (d *SuggestEditDTO) Ok() (map[string]string, bool) {
	return validate(d)
}

func (d *SuggestEditDTO) ToSubmission() EditSuggestion {
	var original string
	if d.OriginalCriterion != nil {
		original = *d.OriginalCriterion
	}
	return EditSuggestion{
		UseCaseID:     d.UseCaseID,
		OriginalText:  original,
		SuggestedText: d.SuggestedCriterion,
	}
}

type ProposeNewDTO struct {
	UseCaseName      string `json:"useCaseName" validate:"required,notblank"`
	ProductName      string `json:"productName" validate:"required,notblank"`
	SuccessCriterion string `json:"successCriterion" validate:"required,notblank"`
	Measurement      string `json:"measurement" validate:"required,notblank"`
}

func (d *ProposeNewDTO) Ok() (map[string]string, bool) {
	return validate(d)
}

func (d *ProposeNewDTO) ToSubmission() NewProposal {
	return NewProposal{
		UseCaseName:      d.UseCaseName,
		ProductName:      d.ProductName,
		SuccessCriterion: d.SuccessCriterion,
		Measurement:      d.Measurement,
	}
}

type RejectDTO struct {
	PendingID int64 `json:"pending_id" validate:"required,gt=0"`
}

func (d *RejectDTO) Ok() (map[string]string, bool) {
	return validate(d)
}

type ApproveEditDTO struct {
	PendingID          int64  `json:"pending_id" validate:"required,gt=0"`
	UseCaseID          int64  `json:"use_case_id" validate:"required,gt=0"`
	SuggestedCriterion string `json:"suggested_criterion" validate:"required,notblank"`
}

func (d *ApproveEditDTO) Ok() (map[string]string, bool) {
	return validate(d)
}

type ApproveNewDTO struct {
	PendingID        int64  `json:"pending_id" validate:"required,gt=0"`
	UseCaseName      string `json:"useCaseName" validate:"required,notblank"`
	ProductName      string `json:"productName" validate:"required,notblank"`
	SuccessCriterion string `json:"successCriterion" validate:"required,notblank"`
	Measurement      string `json:"measurement" validate:"required,notblank"`
}

func (d *ApproveNewDTO) Ok() (map[string]string, bool) {
	return validate(d)
}

func validate(dto any) (map[string]string, bool) {
	errs := constants.Validate.Struct(dto)
	if errs == nil {
		return map[string]string{}, true
	}
	var validatorErrs validator.ValidationErrors
	if ve, ok := errs.(validator.ValidationErrors); ok {
		validatorErrs = ve
	}
	return serrors.ProcessValidatorErrors(validatorErrs), false
}
