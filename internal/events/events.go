// Package events defines the event contract of the booking service and the
// consumers reacting to events from neighboring services.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics shared with the rest of the platform.
const (
	TopicBookingEvents = "booking.events"
	TopicItemEvents    = "item.events"
)

// Event types published on booking.events.
const (
	BookingCreated  = "booking.created"
	BookingApproved = "booking.approved"
	BookingRejected = "booking.rejected"
	BookingDeleted  = "booking.deleted"
)

// Event types consumed from item.events.
const (
	ItemRetired = "item.retired"
)

// BookingEvent is the payload for every booking lifecycle event.
type BookingEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	ItemID     uuid.UUID `json:"item_id"`
	BookerID   uuid.UUID `json:"booker_id"`
	Status     string    `json:"status"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ItemRetiredEvent is published by the catalogue service when an item is
// withdrawn from the marketplace.
type ItemRetiredEvent struct {
	ItemID     uuid.UUID `json:"item_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
