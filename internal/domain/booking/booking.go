package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shareit-platform/service-booking/internal/domain/apperr"
)

// Booking is the aggregate root for the booking domain. It references its
// item and booker by id only; the entities themselves live with the
// catalogue service.
type Booking struct {
	id       uuid.UUID
	itemID   uuid.UUID
	bookerID uuid.UUID
	start    time.Time
	end      time.Time
	status   BookingStatus

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new Booking with status=WAITING. The interval is
// half-open [start,end); equal or inverted bounds are rejected.
func NewBooking(bookerID, itemID uuid.UUID, start, end time.Time) (*Booking, error) {
	if bookerID == uuid.Nil {
		return nil, apperr.New(apperr.KindValidation, "booker ID is required")
	}
	if itemID == uuid.Nil {
		return nil, apperr.New(apperr.KindValidation, "item ID is required")
	}
	if !end.After(start) {
		return nil, apperr.New(apperr.KindInvalidRange, "booking end must be after start")
	}

	now := time.Now().UTC()
	return &Booking{
		id:        uuid.New(),
		itemID:    itemID,
		bookerID:  bookerID,
		start:     start.UTC(),
		end:       end.UTC(),
		status:    StatusWaiting,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id uuid.UUID,
	itemID uuid.UUID,
	bookerID uuid.UUID,
	start time.Time,
	end time.Time,
	status BookingStatus,
	version int64,
	createdAt time.Time,
	updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		itemID:    itemID,
		bookerID:  bookerID,
		start:     start,
		end:       end,
		status:    status,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// ItemID returns the id of the booked item.
func (b *Booking) ItemID() uuid.UUID { return b.itemID }

// BookerID returns the id of the user who made the booking.
func (b *Booking) BookerID() uuid.UUID { return b.bookerID }

// Start returns the inclusive start of the booking interval.
func (b *Booking) Start() time.Time { return b.start }

// End returns the exclusive end of the booking interval.
func (b *Booking) End() time.Time { return b.end }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// IsActive reports whether the booking still blocks its interval.
// Rejected bookings release the slot.
func (b *Booking) IsActive() bool {
	return b.status != StatusRejected
}

// --- Behavior ---

// Decide transitions the booking from WAITING to APPROVED or REJECTED.
// A booking is decided exactly once.
func (b *Booking) Decide(approved bool) error {
	target := StatusRejected
	if approved {
		target = StatusApproved
	}
	if !b.status.CanTransitionTo(target) {
		return apperr.New(apperr.KindAlreadyDecided, "booking has already been approved or rejected")
	}
	b.status = target
	b.updatedAt = time.Now().UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.updatedAt = time.Now().UTC()
}
