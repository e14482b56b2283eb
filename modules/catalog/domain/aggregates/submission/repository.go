package submission

import "context"

type Repository interface {
	Create(ctx context.Context, s Submission) (PendingItem, error)
	GetByID(ctx context.Context, id int64) (PendingItem, error)
	Exists(ctx context.Context, id int64) (bool, error)
	// ListWithCatalog returns every pending item, newest first.
	ListWithCatalog(ctx context.Context) ([]PendingView, error)
	// Delete removes the item whatever its variant and reports the variant it had.
	Delete(ctx context.Context, id int64) (kind Kind, removed bool, err error)
	// DeleteEdit removes id only if it is an edit suggestion for useCaseID.
	DeleteEdit(ctx context.Context, id, useCaseID int64) (bool, error)
	// DeleteProposal removes id only if it is a new proposal.
	DeleteProposal(ctx context.Context, id int64) (bool, error)
}
