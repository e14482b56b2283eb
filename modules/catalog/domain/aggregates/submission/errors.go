package submission

import "github.com/iota-uz/usecase-catalog/pkg/serrors"

var (
	ErrPendingNotFound = serrors.NewError("PENDING_NOT_FOUND", "pending item not found")
	// ErrKindMismatch means the pending item exists but is the other variant,
	// or targets a different catalog row than the approval named.
	ErrKindMismatch     = serrors.NewError("PENDING_KIND_MISMATCH", "pending item does not match the requested approval")
	ErrMalformedPayload = serrors.NewError("PENDING_MALFORMED", "pending item payload is malformed")
)
