package model

import (
	"time"

	"github.com/google/uuid"
)

// Subscription is a directed follow edge: subscriber follows target.
type Subscription struct {
	ID           uuid.UUID `json:"id"`
	SubscriberID uuid.UUID `json:"subscriber_id"`
	TargetID     uuid.UUID `json:"target_id"`
	CreatedAt    time.Time `json:"created_at"`
}
