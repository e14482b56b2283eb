package submission

import "time"

type Kind string

const (
	KindEdit Kind = "edit"
	KindNew  Kind = "new"
)

// Submission is either an EditSuggestion or a NewProposal.
type Submission interface {
	Kind() Kind
	isSubmission()
}

// EditSuggestion proposes a new SuccessCriterion for an existing catalog row.
// OriginalText is the criterion the submitter saw; it may be empty and is
// never checked against the catalog.
type EditSuggestion struct {
	UseCaseID     int64
	OriginalText  string
	SuggestedText string
}

func (EditSuggestion) Kind() Kind { return KindEdit }
func (EditSuggestion) isSubmission() {}

// NewProposal proposes an entirely new catalog row.
type NewProposal struct {
	UseCaseName      string
	ProductName      string
	SuccessCriterion string
	Measurement      string
}

func (NewProposal) Kind() Kind { return KindNew }
func (NewProposal) isSubmission() {}

type PendingItem struct {
	ID          int64
	SubmittedAt time.Time
	Submission  Submission
}

// Row is the stored shape of a pending item. A nil UseCaseID marks a new
// proposal whose two text columns hold serialized payload pairs.
type Row struct {
	UseCaseID          *int64
	OriginalCriterion  string
	SuggestedCriterion string
}

func (r Row) Kind() Kind {
	if r.UseCaseID == nil {
		return KindNew
	}
	return KindEdit
}

// PendingView is a pending item joined with the catalog row it targets.
// Catalog fields are nil for new proposals and for edits whose row is gone.
type PendingView struct {
	ID          int64
	SubmittedAt time.Time
	Row         Row
	// Nil when the stored payload could not be decoded.
	Submission  Submission
	UseCase     *string
	Product     *string
	Measurement *string
}
