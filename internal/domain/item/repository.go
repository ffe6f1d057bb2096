package item

import (
	"context"

	"github.com/google/uuid"
)

// ItemRepository defines read-only lookups against the catalogue's items.
type ItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
}
