// Package user holds the read model for marketplace users. User accounts
// are owned by the user service; the booking engine only resolves them for
// authorization and display.
package user

import (
	"github.com/google/uuid"
)

// User is a read-only projection of a marketplace user.
type User struct {
	id   uuid.UUID
	name string
}

// Reconstruct rebuilds a User from persistence data.
func Reconstruct(id uuid.UUID, name string) *User {
	return &User{id: id, name: name}
}

// ID returns the user's unique identifier.
func (u *User) ID() uuid.UUID { return u.id }

// Name returns the user's display name.
func (u *User) Name() string { return u.name }
