package reservation

import "github.com/google/uuid"

// Hold is an existing confirmed stay on a room, as seen by the overlap
// guard. The guard is a pure predicate: the caller loads the holds and
// performs the admission check and the write inside one transaction.
type Hold struct {
	ReservationID uuid.UUID
	CustomerName  string
	Stay          StayPeriod
}

// Conflicts returns every hold the candidate stay collides with, preserving
// input order so callers can surface them for user-facing messaging.
// Cancelled reservations must not be passed in; they never block a room.
func Conflicts(candidate StayPeriod, holds []Hold) []Hold {
	var conflicts []Hold
	for _, h := range holds {
		if candidate.Overlaps(h.Stay) {
			conflicts = append(conflicts, h)
		}
	}
	return conflicts
}

// ConflictsExcluding is the edit-path variant: the reservation being
// rescheduled must not conflict with itself.
func ConflictsExcluding(candidate StayPeriod, holds []Hold, exclude uuid.UUID) []Hold {
	var conflicts []Hold
	for _, h := range holds {
		if h.ReservationID == exclude {
			continue
		}
		if candidate.Overlaps(h.Stay) {
			conflicts = append(conflicts, h)
		}
	}
	return conflicts
}

// Admissible reports whether the candidate may be booked against the holds.
func Admissible(candidate StayPeriod, holds []Hold) bool {
	return len(Conflicts(candidate, holds)) == 0
}
