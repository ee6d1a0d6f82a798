//go:build unit

package commands_test

import (
	"context"
	"testing"

	"cinebox/internal/domain/seat"
	"cinebox/internal/infra/repository"
	"cinebox/internal/pkg/errs"
	"cinebox/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) catalogCommands() commands.CatalogCommands {
	return commands.NewCatalogCommands(&fakeUoW{store: f.store}, f.clock)
}

func TestCreateMovie(t *testing.T) {
	ctx := context.Background()

	t.Run("trims the title", func(t *testing.T) {
		f := newFixture(t)
		movie, err := f.catalogCommands().CreateMovie(ctx, "  Stalker  ", 161)
		require.NoError(t, err)
		assert.Equal(t, "Stalker", movie.Title)
		assert.Equal(t, 161, movie.RuntimeMin)
	})

	t.Run("empty title", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.catalogCommands().CreateMovie(ctx, "   ", 90)
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
	})

	t.Run("non-positive runtime", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.catalogCommands().CreateMovie(ctx, "Short", 0)
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
	})
}

func TestCreateRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("writes the room with its seat map", func(t *testing.T) {
		f := newFixture(t)
		room, err := f.catalogCommands().CreateRoom(ctx, "Screen 9", 5, 10)
		require.NoError(t, err)

		seats := f.store.seats[room.ID]
		require.Len(t, seats, 50)
		assert.Equal(t, seat.TariffAccessible, seats[0].TariffID)
		assert.Equal(t, seat.TariffPremium, seats[len(seats)-1].TariffID)
	})

	t.Run("name taken", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.catalogCommands().CreateRoom(ctx, "Screen 1", 5, 10)
		assert.ErrorIs(t, err, errs.ErrRoomExists)
	})

	t.Run("invalid dimensions never reach the store", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.catalogCommands().CreateRoom(ctx, "Screen 9", 0, 10)
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
		assert.Len(t, f.store.rooms, 1)
	})
}

func TestSetParameter(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a tunable", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.catalogCommands().SetParameter(ctx, repository.ParamCleaningBufferMin, 45))
		assert.Equal(t, 45, f.store.params[repository.ParamCleaningBufferMin])
	})

	t.Run("unknown parameter id", func(t *testing.T) {
		f := newFixture(t)
		err := f.catalogCommands().SetParameter(ctx, 99, 10)
		assert.ErrorIs(t, err, errs.ErrParameterNotFound)
	})

	t.Run("non-positive value", func(t *testing.T) {
		f := newFixture(t)
		err := f.catalogCommands().SetParameter(ctx, repository.ParamReservationHoldMin, 0)
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
	})
}
