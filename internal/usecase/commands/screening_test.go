//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinebox/internal/domain/reservation"
	"cinebox/internal/domain/screening"
	"cinebox/internal/infra/repository"
	"cinebox/internal/pkg/errs"
	"cinebox/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) screeningCommands() commands.ScreeningCommands {
	return commands.NewScreeningCommands(&fakeUoW{store: f.store}, f.clock)
}

func TestCreateScreening(t *testing.T) {
	ctx := context.Background()

	t.Run("schedules a private screening", func(t *testing.T) {
		f := newFixture(t)
		start := f.start.Add(6 * time.Hour)

		scr, err := f.screeningCommands().Create(ctx, f.room.ID, start, f.movie.ID)
		require.NoError(t, err)
		assert.Equal(t, screening.VisibilityPrivate, scr.Visibility())
		assert.Len(t, f.store.screenings, 2)
	})

	t.Run("unknown room", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.screeningCommands().Create(ctx, uuid.New(), f.start.Add(6*time.Hour), f.movie.ID)
		assert.ErrorIs(t, err, errs.ErrRoomNotFound)
	})

	t.Run("unknown movie", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.screeningCommands().Create(ctx, f.room.ID, f.start.Add(6*time.Hour), uuid.New())
		assert.ErrorIs(t, err, errs.ErrMovieNotFound)
	})

	t.Run("start in the past", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.screeningCommands().Create(ctx, f.room.ID, baseTime.Add(-time.Hour), f.movie.ID)
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
	})

	t.Run("overlapping slot is rejected with the conflicting screening", func(t *testing.T) {
		f := newFixture(t)
		// Existing screening runs 20:00-22:00; default buffer is 30 minutes.
		_, err := f.screeningCommands().Create(ctx, f.room.ID, f.start.Add(2*time.Hour), f.movie.ID)
		require.ErrorIs(t, err, errs.ErrScreeningOverlap)

		var overlap *commands.OverlapError
		require.True(t, errors.As(err, &overlap))
		assert.Equal(t, f.room.ID, overlap.RoomID)
		assert.True(t, f.start.Equal(overlap.ExistingStart))
		assert.Equal(t, f.movie.ID, overlap.ExistingMovie)
	})

	t.Run("a shorter buffer admits the same slot", func(t *testing.T) {
		f := newFixture(t)
		f.store.params[repository.ParamCleaningBufferMin] = 10

		_, err := f.screeningCommands().Create(ctx, f.room.ID, f.start.Add(2*time.Hour+10*time.Minute), f.movie.ID)
		assert.NoError(t, err)
	})

	t.Run("same room and start already taken", func(t *testing.T) {
		f := newFixture(t)
		// An exact-slot duplicate is invisible to the overlap check, which
		// skips the candidate's own slot; the primary key catches it instead.
		_, err := f.screeningCommands().Create(ctx, f.room.ID, f.start, f.movie.ID)
		assert.ErrorIs(t, err, errs.ErrScreeningExists)
	})

	t.Run("other rooms do not constrain the slot", func(t *testing.T) {
		f := newFixture(t)
		otherRoom := &repository.Room{ID: uuid.New(), Name: "Screen 2", CreatedAt: baseTime}
		f.store.rooms = append(f.store.rooms, otherRoom)

		_, err := f.screeningCommands().Create(ctx, otherRoom.ID, f.start, f.movie.ID)
		assert.NoError(t, err)
	})
}

func TestUpdateScreening(t *testing.T) {
	ctx := context.Background()

	t.Run("reschedules and keeps visibility", func(t *testing.T) {
		f := newFixture(t)
		newStart := f.start.Add(3 * time.Hour)

		scr, err := f.screeningCommands().Update(ctx, f.room.ID, f.start, f.room.ID, newStart, f.movie.ID)
		require.NoError(t, err)
		assert.Equal(t, screening.VisibilityPublic, scr.Visibility())
		assert.True(t, newStart.Equal(scr.StartTime()))

		_, err = (&fakeScreeningRepo{f.store}).FindByKey(ctx, f.room.ID, f.start)
		assert.Error(t, err)
	})

	t.Run("a screening with held seats cannot move", func(t *testing.T) {
		f := newFixture(t)
		f.seedReservation(f.customer.ID(), reservation.StatusActive, seatKeys("A1"), baseTime)

		_, err := f.screeningCommands().Update(ctx, f.room.ID, f.start, f.room.ID, f.start.Add(time.Hour), f.movie.ID)
		assert.ErrorIs(t, err, errs.ErrScreeningReserved)
	})

	t.Run("released seats unblock the move", func(t *testing.T) {
		f := newFixture(t)
		key := f.seedReservation(f.customer.ID(), reservation.StatusActive, seatKeys("A1"), baseTime)
		rec := f.store.findRecord(key)
		rec.status = reservation.StatusCancelled
		rec.held = false

		_, err := f.screeningCommands().Update(ctx, f.room.ID, f.start, f.room.ID, f.start.Add(time.Hour), f.movie.ID)
		assert.NoError(t, err)
	})

	t.Run("keeping the same slot does not self-conflict", func(t *testing.T) {
		f := newFixture(t)
		other := &repository.Movie{ID: uuid.New(), Title: "Ran", RuntimeMin: 160, CreatedAt: baseTime}
		f.store.movies = append(f.store.movies, other)

		scr, err := f.screeningCommands().Update(ctx, f.room.ID, f.start, f.room.ID, f.start, other.ID)
		require.NoError(t, err)
		assert.Equal(t, other.ID, scr.MovieID())
	})

	t.Run("moving into another screening's window fails", func(t *testing.T) {
		f := newFixture(t)
		second := screening.Reconstruct(f.room.ID, f.start.Add(5*time.Hour), f.movie.ID, screening.VisibilityPrivate)
		f.store.screenings = append(f.store.screenings, second)

		_, err := f.screeningCommands().Update(ctx, f.room.ID, f.start, f.room.ID, f.start.Add(4*time.Hour), f.movie.ID)
		assert.ErrorIs(t, err, errs.ErrScreeningOverlap)
	})

	t.Run("unknown screening", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.screeningCommands().Update(ctx, f.room.ID, f.start.Add(time.Minute), f.room.ID, f.start.Add(time.Hour), f.movie.ID)
		assert.ErrorIs(t, err, errs.ErrScreeningNotFound)
	})
}

func TestPublishScreening(t *testing.T) {
	ctx := context.Background()

	t.Run("private becomes public", func(t *testing.T) {
		f := newFixture(t)
		start := f.start.Add(6 * time.Hour)
		_, err := f.screeningCommands().Create(ctx, f.room.ID, start, f.movie.ID)
		require.NoError(t, err)

		require.NoError(t, f.screeningCommands().Publish(ctx, f.room.ID, start))

		scr, err := (&fakeScreeningRepo{f.store}).FindByKey(ctx, f.room.ID, start)
		require.NoError(t, err)
		assert.Equal(t, screening.VisibilityPublic, scr.Visibility())
	})

	t.Run("already public", func(t *testing.T) {
		f := newFixture(t)
		err := f.screeningCommands().Publish(ctx, f.room.ID, f.start)
		assert.ErrorIs(t, err, errs.ErrNotPrivate)
	})

	t.Run("unknown screening", func(t *testing.T) {
		f := newFixture(t)
		err := f.screeningCommands().Publish(ctx, f.room.ID, f.start.Add(time.Minute))
		assert.ErrorIs(t, err, errs.ErrScreeningNotFound)
	})
}
