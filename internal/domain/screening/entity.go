package screening

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingRoom     = errors.New("screening requires a room")
	ErrMissingMovie    = errors.New("screening requires a movie")
	ErrZeroStartTime   = errors.New("screening requires a start time")
	ErrNotPrivate      = errors.New("only private screenings can be published")
	ErrUnknownRuntime  = errors.New("movie runtime unknown")
	ErrInvalidRuntime  = errors.New("movie runtime must be positive")
	ErrNegativeBuffer  = errors.New("cleaning buffer must not be negative")
	ErrStartInThePast  = errors.New("screening start must be in the future")
	ErrInvalidVisState = errors.New("invalid visibility state")
)

type Visibility string

const (
	VisibilityPrivate  Visibility = "private"
	VisibilityPublic   Visibility = "public"
	VisibilityInactive Visibility = "inactive"
)

func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityPrivate, VisibilityPublic, VisibilityInactive:
		return true
	default:
		return false
	}
}

// Screening is a scheduled showing, identified by (room, start time).
type Screening struct {
	roomID     uuid.UUID
	startTime  time.Time
	movieID    uuid.UUID
	visibility Visibility
}

// NewScreening builds a staff-created screening in the private state.
func NewScreening(roomID uuid.UUID, startTime time.Time, movieID uuid.UUID, now time.Time) (*Screening, error) {
	if roomID == uuid.Nil {
		return nil, ErrMissingRoom
	}
	if movieID == uuid.Nil {
		return nil, ErrMissingMovie
	}
	if startTime.IsZero() {
		return nil, ErrZeroStartTime
	}
	if !startTime.After(now) {
		return nil, ErrStartInThePast
	}

	return &Screening{
		roomID:     roomID,
		startTime:  startTime,
		movieID:    movieID,
		visibility: VisibilityPrivate,
	}, nil
}

func Reconstruct(roomID uuid.UUID, startTime time.Time, movieID uuid.UUID, visibility Visibility) *Screening {
	return &Screening{
		roomID:     roomID,
		startTime:  startTime,
		movieID:    movieID,
		visibility: visibility,
	}
}

func (s *Screening) RoomID() uuid.UUID      { return s.roomID }
func (s *Screening) StartTime() time.Time   { return s.startTime }
func (s *Screening) MovieID() uuid.UUID     { return s.movieID }
func (s *Screening) Visibility() Visibility { return s.visibility }

// End returns the moment the movie finishes, before any cleaning buffer.
func (s *Screening) End(runtimeMin int) time.Time {
	return s.startTime.Add(time.Duration(runtimeMin) * time.Minute)
}

func (s *Screening) SameSlot(other *Screening) bool {
	return s.roomID == other.roomID && s.startTime.Equal(other.startTime)
}

func (s *Screening) Publish() error {
	if s.visibility != VisibilityPrivate {
		return ErrNotPrivate
	}
	s.visibility = VisibilityPublic
	return nil
}

// Deactivate marks a screening whose end time has passed. Owned by the
// maintenance sweep, idempotent.
func (s *Screening) Deactivate() {
	s.visibility = VisibilityInactive
}
