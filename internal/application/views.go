package application

import (
	"time"

	"github.com/google/uuid"
	bookingDomain "github.com/shareit-platform/service-booking/internal/domain/booking"
	itemDomain "github.com/shareit-platform/service-booking/internal/domain/item"
	userDomain "github.com/shareit-platform/service-booking/internal/domain/user"
)

// ShortItemDTO is the minimal item view embedded in a booking.
type ShortItemDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ShortUserDTO is the minimal user view embedded in a booking.
type ShortUserDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// BookingDTO is the full outward-facing representation of a booking.
type BookingDTO struct {
	ID     uuid.UUID    `json:"id"`
	Start  time.Time    `json:"start"`
	End    time.Time    `json:"end"`
	Status string       `json:"status"`
	ItemID uuid.UUID    `json:"itemId"`
	Item   ShortItemDTO `json:"item"`
	Booker ShortUserDTO `json:"booker"`
}

// ShortBookingDTO is the reduced booking view embedded in item listings.
type ShortBookingDTO struct {
	ID       uuid.UUID `json:"id"`
	BookerID uuid.UUID `json:"bookerId"`
}

// ItemOverviewDTO carries the last and next approved booking of an item
// for display inside item views.
type ItemOverviewDTO struct {
	LastBooking *ShortBookingDTO `json:"lastBooking"`
	NextBooking *ShortBookingDTO `json:"nextBooking"`
}

// CompletedDTO reports whether a booker has a completed rental of an item.
type CompletedDTO struct {
	Completed bool `json:"completed"`
}

func toBookingDTO(bk *bookingDomain.Booking, it *itemDomain.Item, booker *userDomain.User) BookingDTO {
	return BookingDTO{
		ID:     bk.ID(),
		Start:  bk.Start(),
		End:    bk.End(),
		Status: string(bk.Status()),
		ItemID: bk.ItemID(),
		Item:   ShortItemDTO{ID: it.ID(), Name: it.Name()},
		Booker: ShortUserDTO{ID: booker.ID(), Name: booker.Name()},
	}
}

func toShortBookingDTO(bk *bookingDomain.Booking) *ShortBookingDTO {
	return &ShortBookingDTO{ID: bk.ID(), BookerID: bk.BookerID()}
}

// assembleOverview reduces an item's APPROVED bookings to its last and next
// booking relative to now. Last is the booking with the greatest end among
// those started before now; next is the one with the smallest start among
// those starting after now. Each is computed independently.
func assembleOverview(approved []*bookingDomain.Booking, now time.Time) ItemOverviewDTO {
	var last, next *bookingDomain.Booking
	for _, bk := range approved {
		if bk.Start().Before(now) {
			if last == nil || bk.End().After(last.End()) {
				last = bk
			}
		}
		if bk.Start().After(now) {
			if next == nil || bk.Start().Before(next.Start()) {
				next = bk
			}
		}
	}

	overview := ItemOverviewDTO{}
	if last != nil {
		overview.LastBooking = toShortBookingDTO(last)
	}
	if next != nil {
		overview.NextBooking = toShortBookingDTO(next)
	}
	return overview
}
