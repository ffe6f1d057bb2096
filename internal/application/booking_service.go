package application

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shareit-platform/service-booking/internal/cache"
	"github.com/shareit-platform/service-booking/internal/domain/apperr"
	bookingDomain "github.com/shareit-platform/service-booking/internal/domain/booking"
	itemDomain "github.com/shareit-platform/service-booking/internal/domain/item"
	userDomain "github.com/shareit-platform/service-booking/internal/domain/user"
	"github.com/shareit-platform/service-booking/internal/events"
	"github.com/shareit-platform/service-booking/internal/kafka"
	"go.uber.org/zap"
)

const eventSource = "service-booking"

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	ItemID uuid.UUID `json:"itemId" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// EventPublisher publishes CloudEvents to the platform's topics.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// BookingService is the application service orchestrating the booking
// lifecycle: creation with the availability check, the approval decision,
// deletion, and the role-scoped listings.
type BookingService struct {
	bookings  bookingDomain.BookingRepository
	items     itemDomain.ItemRepository
	users     userDomain.UserRepository
	overviews *cache.OverviewCache
	producer  EventPublisher
	logger    *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.BookingRepository,
	items itemDomain.ItemRepository,
	users userDomain.UserRepository,
	overviews *cache.OverviewCache,
	producer EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		items:     items,
		users:     users,
		overviews: overviews,
		producer:  producer,
		logger:    logger,
	}
}

// Create books an item for the caller. The booking starts WAITING and
// must not overlap any WAITING or APPROVED booking of the same item.
func (s *BookingService) Create(ctx context.Context, callerID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	if !req.End.After(req.Start) {
		return nil, apperr.New(apperr.KindInvalidRange, "booking end must be after start")
	}

	it, err := s.items.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !it.Available() {
		return nil, apperr.New(apperr.KindItemUnavailable, "item is not available for booking")
	}

	booker, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if it.IsOwnedBy(callerID) {
		return nil, apperr.New(apperr.KindSelfBooking, "owner cannot book their own item")
	}

	existing, err := s.bookings.FindActiveByItemID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if bookingDomain.ConflictsWith(existing, req.Start, req.End) {
		return nil, apperr.New(apperr.KindBookingUnavailable, "booking time is not available")
	}

	bk, err := bookingDomain.NewBooking(callerID, req.ItemID, req.Start, req.End)
	if err != nil {
		return nil, err
	}
	if err := s.bookings.Save(ctx, bk); err != nil {
		return nil, err
	}

	s.logger.Debug("booking created",
		zap.String("booking_id", bk.ID().String()),
		zap.String("item_id", bk.ItemID().String()),
	)
	s.publishBookingEvent(ctx, events.BookingCreated, bk)

	result := toBookingDTO(bk, it, booker)
	return &result, nil
}

// Get retrieves a single booking. Only the booker and the item's owner may
// see it.
func (s *BookingService) Get(ctx context.Context, callerID, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	it, err := s.items.FindByID(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if bk.BookerID() != callerID && !it.IsOwnedBy(callerID) {
		return nil, apperr.New(apperr.KindNotOwner, "caller is neither the booker nor the item owner")
	}

	booker, err := s.users.FindByID(ctx, bk.BookerID())
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk, it, booker)
	return &result, nil
}

// Decide approves or rejects a WAITING booking. Only the item's owner may
// decide, and a booking is decided exactly once.
func (s *BookingService) Decide(ctx context.Context, callerID, bookingID uuid.UUID, approved bool) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	it, err := s.items.FindByID(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(callerID) {
		return nil, apperr.New(apperr.KindNotOwner, "only the item owner can decide a booking")
	}

	if err := bk.Decide(approved); err != nil {
		return nil, err
	}

	// Resolve the booker before persisting; a failed lookup must not turn
	// an already-stored decision into an error.
	booker, err := s.users.FindByID(ctx, bk.BookerID())
	if err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}

	eventType := events.BookingRejected
	if approved {
		eventType = events.BookingApproved
	}
	s.publishBookingEvent(ctx, eventType, bk)
	s.invalidateOverview(ctx, bk.ItemID())

	result := toBookingDTO(bk, it, booker)
	return &result, nil
}

// Delete removes a booking. Only the user who made the booking may delete
// it, regardless of its state.
func (s *BookingService) Delete(ctx context.Context, callerID, bookingID uuid.UUID) error {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if bk.BookerID() != callerID {
		return apperr.New(apperr.KindNotOwner, "only the booker can delete a booking")
	}
	if err := s.bookings.Delete(ctx, bookingID); err != nil {
		return err
	}

	s.publishBookingEvent(ctx, events.BookingDeleted, bk)
	s.invalidateOverview(ctx, bk.ItemID())
	return nil
}

// ListForBooker retrieves the caller's own bookings under the given state
// filter, ordered by start descending.
func (s *BookingService) ListForBooker(ctx context.Context, callerID uuid.UUID, filter bookingDomain.StateFilter, page bookingDomain.Page) ([]BookingDTO, error) {
	return s.list(ctx, bookingDomain.ScopeBooker, callerID, filter, page)
}

// ListForOwner retrieves the bookings made against items the caller owns,
// under the given state filter, ordered by start descending.
func (s *BookingService) ListForOwner(ctx context.Context, callerID uuid.UUID, filter bookingDomain.StateFilter, page bookingDomain.Page) ([]BookingDTO, error) {
	return s.list(ctx, bookingDomain.ScopeOwner, callerID, filter, page)
}

func (s *BookingService) list(ctx context.Context, scope bookingDomain.Scope, userID uuid.UUID, filter bookingDomain.StateFilter, page bookingDomain.Page) ([]BookingDTO, error) {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("User", userID.String())
	}

	bookings, err := s.bookings.FindForUser(ctx, scope, userID, filter, time.Now().UTC(), page)
	if err != nil {
		return nil, err
	}
	return s.assembleBookingDTOs(ctx, bookings)
}

// ItemOverview computes the last and next approved booking of an item.
// Only the item's owner sees the populated view; other callers receive an
// empty overview.
func (s *BookingService) ItemOverview(ctx context.Context, callerID, itemID uuid.UUID) (*ItemOverviewDTO, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(callerID) {
		return &ItemOverviewDTO{}, nil
	}

	if payload, hit, err := s.overviews.Get(ctx, itemID); err != nil {
		s.logger.Warn("overview cache read failed", zap.Error(err))
	} else if hit {
		var cached ItemOverviewDTO
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
		s.logger.Warn("discarding unreadable overview cache entry",
			zap.String("item_id", itemID.String()),
		)
	}

	approved, err := s.bookings.FindApprovedByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	overview := assembleOverview(approved, time.Now().UTC())

	if payload, err := json.Marshal(overview); err == nil {
		if err := s.overviews.Set(ctx, itemID, payload); err != nil {
			s.logger.Warn("overview cache write failed", zap.Error(err))
		}
	}
	return &overview, nil
}

// HasCompleted reports whether the booker has an approved booking of the
// item that already ended. The comment service consults this before
// accepting a review.
func (s *BookingService) HasCompleted(ctx context.Context, bookerID, itemID uuid.UUID) (*CompletedDTO, error) {
	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		return nil, err
	}
	completed, err := s.bookings.HasCompletedBooking(ctx, bookerID, itemID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return &CompletedDTO{Completed: completed}, nil
}

// RejectPendingForItem rejects all WAITING bookings of an item. Invoked
// when the catalogue retires the item. Returns the number of bookings
// rejected.
func (s *BookingService) RejectPendingForItem(ctx context.Context, itemID uuid.UUID) (int, error) {
	waiting, err := s.bookings.FindWaitingByItemID(ctx, itemID)
	if err != nil {
		return 0, err
	}

	rejected := 0
	for _, bk := range waiting {
		if err := bk.Decide(false); err != nil {
			continue
		}
		bk.IncrementVersion()
		if err := s.bookings.Update(ctx, bk); err != nil {
			// A concurrent decision won; skip this booking.
			if apperr.IsKind(err, apperr.KindConflict) {
				continue
			}
			return rejected, err
		}
		s.publishBookingEvent(ctx, events.BookingRejected, bk)
		rejected++
	}

	s.invalidateOverview(ctx, itemID)
	return rejected, nil
}

// --- Helpers ---

// assembleBookingDTOs resolves item and booker references for a page of
// bookings, memoizing lookups within the request.
func (s *BookingService) assembleBookingDTOs(ctx context.Context, bookings []*bookingDomain.Booking) ([]BookingDTO, error) {
	itemsByID := make(map[uuid.UUID]*itemDomain.Item)
	usersByID := make(map[uuid.UUID]*userDomain.User)

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		it, ok := itemsByID[bk.ItemID()]
		if !ok {
			var err error
			it, err = s.items.FindByID(ctx, bk.ItemID())
			if err != nil {
				return nil, err
			}
			itemsByID[bk.ItemID()] = it
		}

		booker, ok := usersByID[bk.BookerID()]
		if !ok {
			var err error
			booker, err = s.users.FindByID(ctx, bk.BookerID())
			if err != nil {
				return nil, err
			}
			usersByID[bk.BookerID()] = booker
		}

		dtos[i] = toBookingDTO(bk, it, booker)
	}
	return dtos, nil
}

func (s *BookingService) invalidateOverview(ctx context.Context, itemID uuid.UUID) {
	if err := s.overviews.Invalidate(ctx, itemID); err != nil {
		s.logger.Warn("overview cache invalidation failed",
			zap.String("item_id", itemID.String()),
			zap.Error(err),
		)
	}
}

func (s *BookingService) publishBookingEvent(ctx context.Context, eventType string, bk *bookingDomain.Booking) {
	evt := events.BookingEvent{
		BookingID:  bk.ID(),
		ItemID:     bk.ItemID(),
		BookerID:   bk.BookerID(),
		Status:     string(bk.Status()),
		Start:      bk.Start(),
		End:        bk.End(),
		OccurredAt: time.Now().UTC(),
	}

	cloudEvent, err := kafka.NewCloudEvent(eventSource, eventType, evt)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	if err := s.producer.PublishEvent(ctx, events.TopicBookingEvents, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", events.TopicBookingEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
