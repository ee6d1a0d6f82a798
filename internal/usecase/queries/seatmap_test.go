//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinebox/internal/domain/screening"
	"cinebox/internal/domain/user"
	"cinebox/internal/infra"
	"cinebox/internal/pkg/errs"
	"cinebox/internal/usecase/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSeatMapStore struct {
	seats []*queries.SeatView
	err   error
}

func (f *fakeSeatMapStore) FindByScreening(context.Context, uuid.UUID, time.Time) ([]*queries.SeatView, error) {
	return f.seats, f.err
}

type fakeScreeningFinder struct {
	scr *screening.Screening
}

func (f *fakeScreeningFinder) FindByKey(context.Context, uuid.UUID, time.Time) (*screening.Screening, error) {
	if f.scr == nil {
		return nil, infra.WrapRepoErr("screening not found", nil, infra.KindNotFound)
	}
	return f.scr, nil
}

type fakeReaper struct {
	calls int
	err   error
}

func (f *fakeReaper) ReapExpired(context.Context) (int64, error) {
	f.calls++
	return 0, f.err
}

func TestGetSeatMap(t *testing.T) {
	ctx := context.Background()
	roomID := uuid.New()
	start := time.Date(2026, 9, 12, 20, 0, 0, 0, time.UTC)

	seats := []*queries.SeatView{
		{Row: "A", Number: 1, Tariff: "accessible", PriceCents: 1500, Held: true},
		{Row: "A", Number: 2, Tariff: "accessible", PriceCents: 1500, Held: false},
	}

	t.Run("reaps before reading", func(t *testing.T) {
		reaper := &fakeReaper{}
		q := queries.NewSeatMapQueries(
			&fakeSeatMapStore{seats: seats},
			&fakeScreeningFinder{scr: screening.Reconstruct(roomID, start, uuid.New(), screening.VisibilityPublic)},
			reaper,
		)

		view, err := q.GetSeatMap(ctx, roomID, start, user.RoleCustomer)
		require.NoError(t, err)
		assert.Equal(t, 1, reaper.calls)

		want := &queries.SeatMapView{RoomID: roomID, StartTime: start, Seats: seats}
		assert.Empty(t, cmp.Diff(want, view))
	})

	t.Run("a failed reap only costs freshness", func(t *testing.T) {
		q := queries.NewSeatMapQueries(
			&fakeSeatMapStore{seats: seats},
			&fakeScreeningFinder{scr: screening.Reconstruct(roomID, start, uuid.New(), screening.VisibilityPublic)},
			&fakeReaper{err: errors.New("db down")},
		)

		_, err := q.GetSeatMap(ctx, roomID, start, user.RoleCustomer)
		assert.NoError(t, err)
	})

	t.Run("unpublished screenings hide from customers", func(t *testing.T) {
		q := queries.NewSeatMapQueries(
			&fakeSeatMapStore{seats: seats},
			&fakeScreeningFinder{scr: screening.Reconstruct(roomID, start, uuid.New(), screening.VisibilityPrivate)},
			&fakeReaper{},
		)

		_, err := q.GetSeatMap(ctx, roomID, start, user.RoleCustomer)
		assert.ErrorIs(t, err, errs.ErrScreeningNotFound)
	})

	t.Run("staff see unpublished screenings", func(t *testing.T) {
		q := queries.NewSeatMapQueries(
			&fakeSeatMapStore{seats: seats},
			&fakeScreeningFinder{scr: screening.Reconstruct(roomID, start, uuid.New(), screening.VisibilityPrivate)},
			&fakeReaper{},
		)

		view, err := q.GetSeatMap(ctx, roomID, start, user.RoleStaff)
		require.NoError(t, err)
		assert.Len(t, view.Seats, 2)
	})

	t.Run("unknown screening", func(t *testing.T) {
		q := queries.NewSeatMapQueries(&fakeSeatMapStore{}, &fakeScreeningFinder{}, &fakeReaper{})

		_, err := q.GetSeatMap(ctx, roomID, start, user.RoleCustomer)
		assert.ErrorIs(t, err, errs.ErrScreeningNotFound)
	})
}
