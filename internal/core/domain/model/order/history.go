package order

import (
	"time"

	"yumexpress/internal/core/domain/model/kernel"
)

// StatusHistory is the persisted audit record of one status transition.
// Exactly one row is written per transition, in the same transaction that
// saves the order, so the trail can never disagree with the order itself.
type StatusHistory struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	FromStatus  Status
	ToStatus    Status
	ChangedBy   ActorRole
	ChangedByID *kernel.UUID
	Note        string
	CreatedAt   time.Time
}

// NewStatusHistory derives an audit record from a transition event,
// assigning it a fresh identifier.
func NewStatusHistory(event TransitionEvent) StatusHistory {
	return StatusHistory{
		ID:          kernel.NewUUID(),
		OrderID:     event.OrderID,
		FromStatus:  event.From,
		ToStatus:    event.To,
		ChangedBy:   event.Actor,
		ChangedByID: event.ActorID,
		Note:        event.Note,
		CreatedAt:   event.OccurredAt,
	}
}
