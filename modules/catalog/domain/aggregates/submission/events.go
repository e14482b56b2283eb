package submission

import "time"

type ReceivedEvent struct {
	Item PendingItem
}

type ApprovedEvent struct {
	PendingID int64
	Kind      Kind
	UseCaseID int64
	At        time.Time
}

type RejectedEvent struct {
	PendingID int64
	Kind      Kind
	At        time.Time
}
