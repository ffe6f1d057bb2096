// Package item holds the read model for catalogue items. Items are owned
// by the catalogue service; the booking engine only ever reads them.
package item

import (
	"github.com/google/uuid"
)

// Item is a read-only projection of a catalogue item.
type Item struct {
	id        uuid.UUID
	name      string
	ownerID   uuid.UUID
	available bool
}

// Reconstruct rebuilds an Item from persistence data.
func Reconstruct(id uuid.UUID, name string, ownerID uuid.UUID, available bool) *Item {
	return &Item{
		id:        id,
		name:      name,
		ownerID:   ownerID,
		available: available,
	}
}

// ID returns the item's unique identifier.
func (i *Item) ID() uuid.UUID { return i.id }

// Name returns the item's display name.
func (i *Item) Name() string { return i.name }

// OwnerID returns the id of the user who owns the item.
func (i *Item) OwnerID() uuid.UUID { return i.ownerID }

// Available reports whether the item is open for booking.
func (i *Item) Available() bool { return i.available }

// IsOwnedBy reports whether the given user owns the item.
func (i *Item) IsOwnedBy(userID uuid.UUID) bool { return i.ownerID == userID }
