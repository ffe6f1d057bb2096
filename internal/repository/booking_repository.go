package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shareit-platform/service-booking/internal/domain/apperr"
	bookingDomain "github.com/shareit-platform/service-booking/internal/domain/booking"
	"gorm.io/gorm"
)

// pgExclusionViolation is raised by the (item_id, interval) exclusion
// constraint when two non-rejected bookings would overlap.
const pgExclusionViolation = "23P01"

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID    uuid.UUID `gorm:"type:uuid;index;not null"`
	BookerID  uuid.UUID `gorm:"type:uuid;index;not null"`
	StartAt   time.Time `gorm:"not null;index"`
	EndAt     time.Time `gorm:"not null"`
	Status    string    `gorm:"not null;size:20;index"`
	Version   int64     `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindForUser retrieves a page of bookings for the user under the given
// scope and state filter, ordered by start descending. One predicate
// builder covers every scope/filter combination.
func (r *GormBookingRepository) FindForUser(
	ctx context.Context,
	scope bookingDomain.Scope,
	userID uuid.UUID,
	filter bookingDomain.StateFilter,
	now time.Time,
	page bookingDomain.Page,
) ([]*bookingDomain.Booking, error) {
	query := r.db.WithContext(ctx).Model(&BookingModel{})

	switch scope {
	case bookingDomain.ScopeOwner:
		query = query.
			Joins("JOIN items ON items.id = bookings.item_id").
			Where("items.owner_id = ?", userID)
	default:
		query = query.Where("bookings.booker_id = ?", userID)
	}

	switch filter {
	case bookingDomain.FilterCurrent:
		query = query.Where("bookings.start_at < ? AND bookings.end_at > ?", now, now)
	case bookingDomain.FilterPast:
		query = query.Where("bookings.end_at < ?", now)
	case bookingDomain.FilterFuture:
		query = query.Where("bookings.start_at > ?", now)
	case bookingDomain.FilterWaiting:
		query = query.Where("bookings.status = ?", string(bookingDomain.StatusWaiting))
	case bookingDomain.FilterRejected:
		query = query.Where("bookings.status = ?", string(bookingDomain.StatusRejected))
	case bookingDomain.FilterAll:
		// no predicate
	default:
		return nil, apperr.Newf(apperr.KindUnknownState, "Unknown state: %s", filter)
	}

	var models []BookingModel
	if err := query.
		Order("bookings.start_at DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings for user: %w", err)
	}

	return toDomainBookings(models)
}

// FindActiveByItemID retrieves the WAITING and APPROVED bookings of an item.
func (r *GormBookingRepository) FindActiveByItemID(ctx context.Context, itemID uuid.UUID) ([]*bookingDomain.Booking, error) {
	return r.findByItemAndStatuses(ctx, itemID,
		string(bookingDomain.StatusWaiting), string(bookingDomain.StatusApproved))
}

// FindApprovedByItemID retrieves the APPROVED bookings of an item.
func (r *GormBookingRepository) FindApprovedByItemID(ctx context.Context, itemID uuid.UUID) ([]*bookingDomain.Booking, error) {
	return r.findByItemAndStatuses(ctx, itemID, string(bookingDomain.StatusApproved))
}

// FindWaitingByItemID retrieves the WAITING bookings of an item.
func (r *GormBookingRepository) FindWaitingByItemID(ctx context.Context, itemID uuid.UUID) ([]*bookingDomain.Booking, error) {
	return r.findByItemAndStatuses(ctx, itemID, string(bookingDomain.StatusWaiting))
}

func (r *GormBookingRepository) findByItemAndStatuses(ctx context.Context, itemID uuid.UUID, statuses ...string) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("item_id = ? AND status IN ?", itemID, statuses).
		Order("start_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by item: %w", err)
	}
	return toDomainBookings(models)
}

// HasCompletedBooking reports whether the booker has an APPROVED booking on
// the item that ended before now.
func (r *GormBookingRepository) HasCompletedBooking(ctx context.Context, bookerID, itemID uuid.UUID, now time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("booker_id = ? AND item_id = ? AND end_at < ? AND status = ?",
			bookerID, itemID, now, string(bookingDomain.StatusApproved)).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count completed bookings: %w", err)
	}
	return count > 0, nil
}

// Save persists a new booking. An exclusion-constraint violation means a
// concurrent booking claimed the interval first.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation {
			return apperr.New(apperr.KindBookingUnavailable, "booking time is not available")
		}
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// Update persists changes to an existing booking with optimistic locking.
// A version mismatch means another transaction decided first.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)

	// IncrementVersion was called on the aggregate, so the row must still
	// hold the previous version.
	expectedVersion := bk.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.New(apperr.KindConflict, "booking was modified by another transaction")
	}
	return nil
}

// Delete removes a booking by id.
func (r *GormBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&BookingModel{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:        bk.ID(),
		ItemID:    bk.ItemID(),
		BookerID:  bk.BookerID(),
		StartAt:   bk.Start(),
		EndAt:     bk.End(),
		Status:    string(bk.Status()),
		Version:   bk.Version(),
		CreatedAt: bk.CreatedAt(),
		UpdatedAt: bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}
	return bookingDomain.ReconstructBooking(
		m.ID,
		m.ItemID,
		m.BookerID,
		m.StartAt,
		m.EndAt,
		status,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}
