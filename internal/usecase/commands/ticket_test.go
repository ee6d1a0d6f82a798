//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"cinebox/internal/domain/reservation"
	"cinebox/internal/domain/user"
	"cinebox/internal/pkg/errs"
	"cinebox/internal/pkg/ticketcode"
	"cinebox/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) ticketCommands() commands.TicketCommands {
	return commands.NewTicketCommands(&fakeUoW{store: f.store}, f.codec, f.clock)
}

func TestIssueTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("active reservation gets a scannable code", func(t *testing.T) {
		f := newFixture(t)
		key := f.seedReservation(f.customer.ID(), reservation.StatusActive, seatKeys("A1"), baseTime)

		ticket, err := f.ticketCommands().Issue(ctx, key, f.customer.ID(), user.RoleCustomer)
		require.NoError(t, err)
		assert.NotEmpty(t, ticket.QRPNG)

		payload, err := f.codec.Decode(ticket.Code)
		require.NoError(t, err)
		assert.Equal(t, key.RoomID, payload.RoomID)
		assert.Equal(t, key.CustomerID, payload.CustomerID)
		assert.True(t, key.StartTime.Equal(payload.StartTime))
		assert.True(t, key.CreatedAt.Equal(payload.CreatedAt))
	})

	t.Run("pending reservation has no ticket yet", func(t *testing.T) {
		f := newFixture(t)
		key := f.seedReservation(f.customer.ID(), reservation.StatusPending, seatKeys("A1"), baseTime)

		_, err := f.ticketCommands().Issue(ctx, key, f.customer.ID(), user.RoleCustomer)
		assert.ErrorIs(t, err, errs.ErrNotActive)
	})

	t.Run("another customer may not issue", func(t *testing.T) {
		f := newFixture(t)
		key := f.seedReservation(f.customer.ID(), reservation.StatusActive, seatKeys("A1"), baseTime)

		_, err := f.ticketCommands().Issue(ctx, key, f.other.ID(), user.RoleCustomer)
		assert.ErrorIs(t, err, errs.ErrNotOwner)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newFixture(t)
		key := reservation.NewKey(f.room.ID, f.start, f.customer.ID(), baseTime)

		_, err := f.ticketCommands().Issue(ctx, key, f.customer.ID(), user.RoleCustomer)
		assert.ErrorIs(t, err, errs.ErrReservationNotFound)
	})
}

func TestRedeemTicket(t *testing.T) {
	ctx := context.Background()

	issue := func(t *testing.T, f *fixture, key reservation.Key) string {
		t.Helper()
		ticket, err := f.ticketCommands().Issue(ctx, key, f.customer.ID(), user.RoleCustomer)
		require.NoError(t, err)
		return ticket.Code
	}

	t.Run("scan at the gate", func(t *testing.T) {
		f := newFixture(t)
		key := f.seedReservation(f.customer.ID(), reservation.StatusActive, seatKeys("A1", "A2"), baseTime)
		code := issue(t, f, key)
		f.clock.Set(f.start.Add(-5 * time.Minute))

		att, err := f.ticketCommands().Redeem(ctx, code)
		require.NoError(t, err)
		assert.Equal(t, "Heat", att.MovieTitle)
		assert.Equal(t, "Screen 1", att.RoomName)
		assert.Equal(t, "Alice", att.CustomerName)
		assert.Equal(t, []string{"A1", "A2"}, att.Seats)
		assert.True(t, f.start.Equal(att.StartTime))

		rec := f.store.findRecord(key)
		assert.Equal(t, reservation.StatusAttended, rec.status)
		assert.False(t, rec.held)
	})

	t.Run("garbage code", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.ticketCommands().Redeem(ctx, "not-a-ticket")
		assert.ErrorIs(t, err, errs.ErrTicketMalformed)
	})

	t.Run("valid code for a deleted reservation", func(t *testing.T) {
		f := newFixture(t)
		key := f.seedReservation(f.customer.ID(), reservation.StatusActive, seatKeys("A1"), baseTime)
		code := issue(t, f, key)
		require.NoError(t, (&fakeReservationRepo{f.store}).Delete(ctx, key))
		f.clock.Set(f.start)

		_, err := f.ticketCommands().Redeem(ctx, code)
		assert.ErrorIs(t, err, errs.ErrReservationNotFound)
	})

	t.Run("before the attendance window", func(t *testing.T) {
		f := newFixture(t)
		key := f.seedReservation(f.customer.ID(), reservation.StatusActive, seatKeys("A1"), baseTime)
		code := issue(t, f, key)
		f.clock.Set(f.start.Add(-16 * time.Minute))

		_, err := f.ticketCommands().Redeem(ctx, code)
		assert.ErrorIs(t, err, errs.ErrTicketNotStarted)
	})

	t.Run("after the screening ended", func(t *testing.T) {
		f := newFixture(t)
		key := f.seedReservation(f.customer.ID(), reservation.StatusActive, seatKeys("A1"), baseTime)
		code := issue(t, f, key)
		f.clock.Set(f.start.Add(121 * time.Minute))

		_, err := f.ticketCommands().Redeem(ctx, code)
		assert.ErrorIs(t, err, errs.ErrTicketAlreadyEnded)
	})

	t.Run("second scan of the same ticket", func(t *testing.T) {
		f := newFixture(t)
		key := f.seedReservation(f.customer.ID(), reservation.StatusActive, seatKeys("A1"), baseTime)
		code := issue(t, f, key)
		f.clock.Set(f.start)

		_, err := f.ticketCommands().Redeem(ctx, code)
		require.NoError(t, err)
		_, err = f.ticketCommands().Redeem(ctx, code)
		assert.ErrorIs(t, err, errs.ErrTicketAlreadyUsed)
	})

	t.Run("cancelled after issuing", func(t *testing.T) {
		f := newFixture(t)
		key := f.seedReservation(f.customer.ID(), reservation.StatusActive, seatKeys("A1"), baseTime)
		code := issue(t, f, key)
		require.NoError(t, f.reservationCommands().Cancel(ctx, key, f.customer.ID(), user.RoleCustomer))
		f.clock.Set(f.start)

		_, err := f.ticketCommands().Redeem(ctx, code)
		assert.ErrorIs(t, err, errs.ErrTicketCancelled)
	})

	t.Run("forged customer in the code", func(t *testing.T) {
		f := newFixture(t)
		f.seedReservation(f.customer.ID(), reservation.StatusActive, seatKeys("A1"), baseTime)
		f.clock.Set(f.start)

		// A syntactically valid code naming a reservation that was never made.
		forged, err := f.codec.Encode(ticketcode.Payload{
			RoomID:     f.room.ID,
			StartTime:  f.start,
			CustomerID: uuid.New(),
			CreatedAt:  baseTime,
		})
		require.NoError(t, err)

		_, err = f.ticketCommands().Redeem(ctx, forged)
		assert.ErrorIs(t, err, errs.ErrReservationNotFound)
	})
}
