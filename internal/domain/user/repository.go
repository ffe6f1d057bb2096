package user

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines read-only lookups against the user service's accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}
