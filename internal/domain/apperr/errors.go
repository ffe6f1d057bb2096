package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error. Handlers map kinds to HTTP status
// codes; services and domain code only ever deal in kinds.
type Kind string

const (
	// KindInvalidRange indicates a booking interval with end <= start.
	KindInvalidRange Kind = "invalid_range"
	// KindNotFound indicates an absent user, item or booking.
	KindNotFound Kind = "not_found"
	// KindItemUnavailable indicates the item is not open for booking.
	KindItemUnavailable Kind = "item_unavailable"
	// KindSelfBooking indicates a user tried to book their own item.
	KindSelfBooking Kind = "self_booking"
	// KindBookingUnavailable indicates a temporal overlap with an existing booking.
	KindBookingUnavailable Kind = "booking_unavailable"
	// KindNotOwner indicates the caller lacks the required role for a mutation.
	KindNotOwner Kind = "not_owner"
	// KindAlreadyDecided indicates a decision on a booking that is no longer waiting.
	KindAlreadyDecided Kind = "already_decided"
	// KindUnknownState indicates an unrecognized state filter token.
	KindUnknownState Kind = "unknown_state"
	// KindConflict indicates a concurrent modification was lost.
	KindConflict Kind = "conflict"
	// KindValidation indicates malformed input outside the dedicated kinds above.
	KindValidation Kind = "validation"
)

// Error is the application error carried across layer boundaries.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates an application error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an application error with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a not-found error for an entity and its identifier.
func NotFound(entity, id string) *Error {
	return Newf(KindNotFound, "%s with id %s not found", entity, id)
}

// KindOf extracts the Kind from err, or an empty Kind if err is not an
// application error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
