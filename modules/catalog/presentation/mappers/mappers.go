package mappers

import (
	"github.com/iota-uz/usecase-catalog/modules/catalog/domain/aggregates/submission"
	"github.com/iota-uz/usecase-catalog/modules/catalog/domain/aggregates/usecase"
	"github.com/iota-uz/usecase-catalog/modules/catalog/presentation/viewmodels"
	"github.com/iota-uz/usecase-catalog/modules/catalog/services"
)

func UseCaseToViewModel(u usecase.UseCase) viewmodels.UseCase {
	return viewmodels.UseCase{
		ID:               u.ID(),
		UseCase:          u.Name(),
		Product:          u.Product(),
		SuccessCriterion: u.SuccessCriterion(),
		Measurement:      u.Measurement(),
	}
}

func UseCasesToViewModels(items []usecase.UseCase) []viewmodels.UseCase {
	out := make([]viewmodels.UseCase, 0, len(items))
	for _, u := range items {
		out = append(out, UseCaseToViewModel(u))
	}
	return out
}

func FiltersToViewModel(f services.Filters) viewmodels.Filters {
	out := viewmodels.Filters{
		UseCases: make([]viewmodels.FilterUseCase, 0, len(f.UseCases)),
		Products: make([]viewmodels.FilterProduct, 0, len(f.Products)),
	}
	for _, name := range f.UseCases {
		out.UseCases = append(out.UseCases, viewmodels.FilterUseCase{UseCase: name})
	}
	for _, product := range f.Products {
		out.Products = append(out.Products, viewmodels.FilterProduct{Product: product})
	}
	return out
}

func PendingViewToViewModel(v submission.PendingView) viewmodels.PendingItem {
	vm := viewmodels.PendingItem{
		ID:                 v.ID,
		UseCaseID:          v.Row.UseCaseID,
		OriginalCriterion:  v.Row.OriginalCriterion,
		SuggestedCriterion: v.Row.SuggestedCriterion,
		SubmittedAt:        v.SubmittedAt,
		UseCase:            v.UseCase,
		Product:            v.Product,
		Measurement:        v.Measurement,
		Kind:               string(v.Row.Kind()),
	}
	if p, ok := v.Submission.(submission.NewProposal); ok {
		vm.Proposal = &viewmodels.Proposal{
			UseCaseName:      p.UseCaseName,
			ProductName:      p.ProductName,
			SuccessCriterion: p.SuccessCriterion,
			Measurement:      p.Measurement,
		}
	}
	return vm
}

func PendingViewsToViewModels(items []submission.PendingView) []viewmodels.PendingItem {
	out := make([]viewmodels.PendingItem, 0, len(items))
	for _, v := range items {
		out = append(out, PendingViewToViewModel(v))
	}
	return out
}
