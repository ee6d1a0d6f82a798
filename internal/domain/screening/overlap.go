package screening

import (
	"time"

	"github.com/google/uuid"
)

// Conflict reports the existing screening a candidate collides with.
type Conflict struct {
	Existing *Screening
}

// FindConflict decides whether a candidate screening can share its room with
// the given screenings. A full cleaning gap is required on either side of a
// screening, so the buffer widens both intervals being compared. Screenings
// occupying the candidate's own slot are skipped, which makes the check
// usable for updates as well as creates.
//
// runtimes maps movie IDs to their runtime in minutes and must cover the
// candidate and every existing screening.
func FindConflict(candidate *Screening, existing []*Screening, runtimes map[uuid.UUID]int, bufferMin int) (*Conflict, error) {
	if bufferMin < 0 {
		return nil, ErrNegativeBuffer
	}

	candRuntime, ok := runtimes[candidate.MovieID()]
	if !ok {
		return nil, ErrUnknownRuntime
	}
	if candRuntime <= 0 {
		return nil, ErrInvalidRuntime
	}

	buffer := time.Duration(bufferMin) * time.Minute
	candStart := candidate.StartTime()
	candEnd := candidate.End(candRuntime)

	for _, other := range existing {
		if other.SameSlot(candidate) {
			continue
		}

		otherRuntime, ok := runtimes[other.MovieID()]
		if !ok {
			return nil, ErrUnknownRuntime
		}
		if otherRuntime <= 0 {
			return nil, ErrInvalidRuntime
		}

		otherStart := other.StartTime()
		otherEnd := other.End(otherRuntime)

		if overlaps(candStart, candEnd, otherStart, otherEnd, buffer) {
			return &Conflict{Existing: other}, nil
		}
	}

	return nil, nil
}

// overlaps is deliberately symmetric: swapping the two intervals never
// changes the answer.
func overlaps(aStart, aEnd, bStart, bEnd time.Time, buffer time.Duration) bool {
	if aStart.Before(bEnd.Add(buffer)) && aEnd.After(bStart) {
		return true
	}
	if bStart.Before(aEnd.Add(buffer)) && bEnd.After(aStart) {
		return true
	}
	return false
}
