package usecase

import "github.com/iota-uz/usecase-catalog/pkg/serrors"

var ErrNotFound = serrors.NewError("USE_CASE_NOT_FOUND", "use case not found")
