//go:build unit

package screening_test

import (
	"testing"
	"time"

	"cinebox/internal/domain/screening"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func mustScreening(t *testing.T, roomID uuid.UUID, start time.Time, movieID uuid.UUID) *screening.Screening {
	t.Helper()
	return screening.Reconstruct(roomID, start, movieID, screening.VisibilityPrivate)
}

func TestFindConflict(t *testing.T) {
	roomID := uuid.New()
	movieA := uuid.New() // 120 min
	movieB := uuid.New() // 90 min
	runtimes := map[uuid.UUID]int{movieA: 120, movieB: 90}

	day := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	at := func(hour, min int) time.Time {
		return day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
	}

	// Existing screening: movieA 20:00-22:00, so with a 30 minute buffer the
	// room is unusable before 22:30.
	existing := []*screening.Screening{mustScreening(t, roomID, at(20, 0), movieA)}

	tests := []struct {
		name      string
		candStart time.Time
		candMovie uuid.UUID
		buffer    int
		wantClash bool
	}{
		{"starts during the screening", at(21, 30), movieB, 30, true},
		{"starts inside the cleaning buffer", at(22, 15), movieB, 30, true},
		{"starts exactly at buffer end", at(22, 30), movieB, 30, false},
		{"starts well after", at(23, 0), movieB, 30, false},
		{"ends inside the earlier screening", at(19, 0), movieB, 30, true},
		{"ends exactly at the earlier start minus buffer", at(18, 0), movieB, 30, false},
		{"ends inside the buffer before the earlier start", at(18, 15), movieB, 30, true},
		{"no buffer, back to back", at(22, 0), movieB, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand := mustScreening(t, roomID, tt.candStart, tt.candMovie)
			conflict, err := screening.FindConflict(cand, existing, runtimes, tt.buffer)
			require.NoError(t, err)
			if tt.wantClash {
				require.NotNil(t, conflict)
				require.True(t, conflict.Existing.SameSlot(existing[0]))
			} else {
				require.Nil(t, conflict)
			}
		})
	}
}

func TestFindConflictIsSymmetric(t *testing.T) {
	roomID := uuid.New()
	movieA := uuid.New()
	movieB := uuid.New()
	runtimes := map[uuid.UUID]int{movieA: 120, movieB: 90}

	start := time.Date(2026, 9, 12, 20, 0, 0, 0, time.UTC)
	a := mustScreening(t, roomID, start, movieA)
	b := mustScreening(t, roomID, start.Add(90*time.Minute), movieB)

	confAB, err := screening.FindConflict(a, []*screening.Screening{b}, runtimes, 30)
	require.NoError(t, err)
	confBA, err := screening.FindConflict(b, []*screening.Screening{a}, runtimes, 30)
	require.NoError(t, err)

	require.NotNil(t, confAB)
	require.NotNil(t, confBA)
}

func TestFindConflictSkipsOwnSlot(t *testing.T) {
	roomID := uuid.New()
	movieA := uuid.New()
	movieB := uuid.New()
	runtimes := map[uuid.UUID]int{movieA: 120, movieB: 90}
	start := time.Date(2026, 9, 12, 20, 0, 0, 0, time.UTC)

	// Same slot, different movie: an update in place must not conflict with
	// itself.
	cand := mustScreening(t, roomID, start, movieB)
	old := mustScreening(t, roomID, start, movieA)

	conflict, err := screening.FindConflict(cand, []*screening.Screening{old}, runtimes, 30)
	require.NoError(t, err)
	require.Nil(t, conflict)
}

func TestFindConflictErrors(t *testing.T) {
	roomID := uuid.New()
	movieA := uuid.New()
	start := time.Date(2026, 9, 12, 20, 0, 0, 0, time.UTC)
	cand := mustScreening(t, roomID, start, movieA)

	t.Run("unknown candidate runtime", func(t *testing.T) {
		_, err := screening.FindConflict(cand, nil, map[uuid.UUID]int{}, 30)
		require.ErrorIs(t, err, screening.ErrUnknownRuntime)
	})

	t.Run("unknown existing runtime", func(t *testing.T) {
		other := mustScreening(t, roomID, start.Add(3*time.Hour), uuid.New())
		_, err := screening.FindConflict(cand, []*screening.Screening{other}, map[uuid.UUID]int{cand.MovieID(): 120}, 30)
		require.ErrorIs(t, err, screening.ErrUnknownRuntime)
	})

	t.Run("non-positive runtime", func(t *testing.T) {
		_, err := screening.FindConflict(cand, nil, map[uuid.UUID]int{cand.MovieID(): 0}, 30)
		require.ErrorIs(t, err, screening.ErrInvalidRuntime)
	})

	t.Run("negative buffer", func(t *testing.T) {
		_, err := screening.FindConflict(cand, nil, map[uuid.UUID]int{cand.MovieID(): 120}, -1)
		require.ErrorIs(t, err, screening.ErrNegativeBuffer)
	})
}

func TestPublish(t *testing.T) {
	now := time.Date(2026, 9, 12, 10, 0, 0, 0, time.UTC)
	scr, err := screening.NewScreening(uuid.New(), now.Add(24*time.Hour), uuid.New(), now)
	require.NoError(t, err)
	require.Equal(t, screening.VisibilityPrivate, scr.Visibility())

	require.NoError(t, scr.Publish())
	require.Equal(t, screening.VisibilityPublic, scr.Visibility())

	require.ErrorIs(t, scr.Publish(), screening.ErrNotPrivate)
}

func TestNewScreeningRejectsPastStart(t *testing.T) {
	now := time.Date(2026, 9, 12, 10, 0, 0, 0, time.UTC)

	_, err := screening.NewScreening(uuid.New(), now.Add(-time.Minute), uuid.New(), now)
	require.ErrorIs(t, err, screening.ErrStartInThePast)

	_, err = screening.NewScreening(uuid.New(), now, uuid.New(), now)
	require.ErrorIs(t, err, screening.ErrStartInThePast)
}
