package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shareit-platform/service-booking/internal/domain/apperr"
	itemDomain "github.com/shareit-platform/service-booking/internal/domain/item"
	"gorm.io/gorm"
)

// ItemModel is the GORM model for the items read table, replicated from the
// catalogue service. The booking engine never writes to it.
type ItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null;size:255"`
	OwnerID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Available bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for the GORM model.
func (ItemModel) TableName() string {
	return "items"
}

// GormItemRepository is the GORM-based read facade over items.
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository.
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID retrieves an item by its unique identifier.
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*itemDomain.Item, error) {
	var model ItemModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Item", id.String())
		}
		return nil, fmt.Errorf("failed to find item by ID: %w", err)
	}
	return itemDomain.Reconstruct(model.ID, model.Name, model.OwnerID, model.Available), nil
}
