package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Scope is the role perspective of a listing query: bookings the user made,
// or bookings made against items the user owns.
type Scope string

const (
	ScopeBooker Scope = "booker"
	ScopeOwner  Scope = "owner"
)

// Page holds offset/limit pagination. Offset is an exact row offset, not a
// page index.
type Page struct {
	Offset int
	Limit  int
}

// BookingRepository defines the persistence contract for booking aggregates.
type BookingRepository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindForUser retrieves bookings for a user under the given scope and
	// state filter, evaluated against now, ordered by start descending.
	FindForUser(ctx context.Context, scope Scope, userID uuid.UUID, filter StateFilter, now time.Time, page Page) ([]*Booking, error)

	// FindActiveByItemID retrieves the WAITING and APPROVED bookings of an
	// item. This is the conflict set for the overlap check; rejected
	// bookings release their interval.
	FindActiveByItemID(ctx context.Context, itemID uuid.UUID) ([]*Booking, error)

	// FindApprovedByItemID retrieves the APPROVED bookings of an item,
	// used to assemble the last/next booking overview.
	FindApprovedByItemID(ctx context.Context, itemID uuid.UUID) ([]*Booking, error)

	// FindWaitingByItemID retrieves the WAITING bookings of an item.
	FindWaitingByItemID(ctx context.Context, itemID uuid.UUID) ([]*Booking, error)

	// HasCompletedBooking reports whether the booker has an APPROVED
	// booking on the item that ended before now.
	HasCompletedBooking(ctx context.Context, bookerID, itemID uuid.UUID, now time.Time) (bool, error)

	// Save persists a new booking.
	Save(ctx context.Context, booking *Booking) error

	// Update persists changes to an existing booking with optimistic locking.
	Update(ctx context.Context, booking *Booking) error

	// Delete removes a booking by id.
	Delete(ctx context.Context, id uuid.UUID) error
}
