package booking

import (
	"github.com/shareit-platform/service-booking/internal/domain/apperr"
)

// StateFilter selects a temporal or status subset of a user's bookings.
type StateFilter string

const (
	FilterAll      StateFilter = "ALL"
	FilterCurrent  StateFilter = "CURRENT"
	FilterPast     StateFilter = "PAST"
	FilterFuture   StateFilter = "FUTURE"
	FilterWaiting  StateFilter = "WAITING"
	FilterRejected StateFilter = "REJECTED"
)

var knownFilters = map[StateFilter]struct{}{
	FilterAll:      {},
	FilterCurrent:  {},
	FilterPast:     {},
	FilterFuture:   {},
	FilterWaiting:  {},
	FilterRejected: {},
}

// IsValid returns true if the filter is one of the recognized tokens.
func (f StateFilter) IsValid() bool {
	_, exists := knownFilters[f]
	return exists
}

// String returns the string representation of the filter.
func (f StateFilter) String() string {
	return string(f)
}

// ParseStateFilter converts a query token to a StateFilter. Unrecognized
// tokens fail rather than silently defaulting to ALL.
func ParseStateFilter(s string) (StateFilter, error) {
	filter := StateFilter(s)
	if !filter.IsValid() {
		return "", apperr.Newf(apperr.KindUnknownState, "Unknown state: %s", s)
	}
	return filter, nil
}
