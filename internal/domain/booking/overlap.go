package booking

import "time"

// Overlaps reports whether two half-open [start,end) intervals share at
// least one instant. Touching endpoints (existingEnd == candidateStart)
// are not an overlap.
func Overlaps(existingStart, existingEnd, candidateStart, candidateEnd time.Time) bool {
	return existingStart.Before(candidateEnd) && candidateStart.Before(existingEnd)
}

// ConflictsWith reports whether the candidate interval overlaps any of the
// given bookings.
func ConflictsWith(existing []*Booking, candidateStart, candidateEnd time.Time) bool {
	for _, b := range existing {
		if Overlaps(b.Start(), b.End(), candidateStart, candidateEnd) {
			return true
		}
	}
	return false
}
