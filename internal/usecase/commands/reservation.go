package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"cinebox/internal/domain/reservation"
	"cinebox/internal/domain/screening"
	"cinebox/internal/domain/seat"
	"cinebox/internal/domain/user"
	"cinebox/internal/infra"
	"cinebox/internal/infra/mailer"
	"cinebox/internal/infra/repository"
	"cinebox/internal/pkg/clock"
	"cinebox/internal/pkg/errs"
	"cinebox/internal/pkg/ticketcode"
	"cinebox/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationCommands interface {
	Create(ctx context.Context, customerID, roomID uuid.UUID, start time.Time, seats []seat.Key) (*reservation.Reservation, error)
	Confirm(ctx context.Context, key reservation.Key) error
	Cancel(ctx context.Context, key reservation.Key, actorID uuid.UUID, actorRole user.Role) error
	DeletePending(ctx context.Context, key reservation.Key, actorID uuid.UUID, actorRole user.Role) error
}

type reservationCommandsImpl struct {
	uow    shared.UnitOfWork
	codec  *ticketcode.Codec
	mailer mailer.Mailer
	clock  clock.Clock
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	codec *ticketcode.Codec,
	m mailer.Mailer,
	clk clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:    uow,
		codec:  codec,
		mailer: m,
		clock:  clk,
	}
}

// Create runs the whole seat lock as one transaction: every check and the
// insert commit or roll back together. The seat_assignments primary key
// backstops the availability pre-check, so two racing requests for the same
// seat cannot both commit.
func (c *reservationCommandsImpl) Create(
	ctx context.Context,
	customerID, roomID uuid.UUID,
	start time.Time,
	requested []seat.Key,
) (*reservation.Reservation, error) {
	keys, err := dedupeSeats(requested)
	if err != nil {
		return nil, err
	}

	var created *reservation.Reservation
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Users().FindByID(ctx, customerID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrCustomerNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		// One pending hold per customer: starting a new selection abandons
		// the previous one, seats included.
		purged, err := tx.Reservations().DeletePendingByCustomer(ctx, customerID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if purged > 0 {
			slog.Info("purged previous pending reservation", "customer_id", customerID, "count", purged)
		}

		scr, err := tx.Screenings().FindByKey(ctx, roomID, start)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrScreeningNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if scr.Visibility() != screening.VisibilityPublic {
			return errs.Mark(errs.New("screening is not open for reservation"), errs.ErrScreeningNotFound)
		}

		now := c.clock.Now()
		if !scr.StartTime().After(now) {
			return errs.Mark(errs.New("reservation after screening start"), errs.ErrScreeningStarted)
		}

		found, err := tx.Seats().FindByKeys(ctx, roomID, keys)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if len(found) != len(keys) {
			return errs.Mark(errs.New("requested seat not in room map"), errs.ErrSeatNotFound)
		}

		held, err := tx.Reservations().AssignedSeats(ctx, roomID, start, keys)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if len(held) > 0 {
			return errs.Mark(errs.New("seat already assigned: "+held[0].Label()), errs.ErrSeatUnavailable)
		}

		var priceCents int64
		for _, s := range found {
			priceCents += s.PriceCents
		}

		key := reservation.NewKey(roomID, scr.StartTime(), customerID, now)
		res, err := reservation.NewPending(key, keys, priceCents)
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		if err := tx.Reservations().Create(ctx, res); err != nil {
			// A concurrent transaction took one of the seats between the
			// pre-check and the insert. The primary key caught it.
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrSeatUnavailable)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		created = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Confirm is the payment collaborator's success signal. A pending hold that
// has already outlived the hold timeout confirms as not found, matching what
// the reaper would have done moments later.
func (c *reservationCommandsImpl) Confirm(ctx context.Context, key reservation.Key) error {
	var mail *mailer.TicketMail
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := findReservation(ctx, tx, key)
		if err != nil {
			return err
		}

		holdMin, err := tx.Parameters().GetOrDefault(ctx, repository.ParamReservationHoldMin, repository.DefaultHoldMin)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		now := c.clock.Now()
		if res.ExpiredAt(now, holdMin) {
			if err := tx.Reservations().Delete(ctx, key); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			return errs.Mark(errs.New("pending hold expired"), errs.ErrReservationNotFound)
		}

		if err := res.Confirm(); err != nil {
			return errs.Mark(err, errs.ErrNotPending)
		}
		if err := tx.Reservations().UpdateStatus(ctx, key, res.Status(), nil); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		mail, err = c.buildTicketMail(ctx, tx, res)
		if err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Delivery is best-effort and never rolls back the confirmation.
	go func(m mailer.TicketMail) {
		if err := c.mailer.SendTicket(m); err != nil {
			slog.Error("ticket email delivery failed", "to", m.To, "error", err.Error())
		}
	}(*mail)

	return nil
}

func (c *reservationCommandsImpl) buildTicketMail(ctx context.Context, tx shared.Tx, res *reservation.Reservation) (*mailer.TicketMail, error) {
	key := res.Key()

	customer, err := tx.Users().FindByID(ctx, key.CustomerID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	scr, err := tx.Screenings().FindByKey(ctx, key.RoomID, key.StartTime)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	movie, err := tx.Movies().FindByID(ctx, scr.MovieID())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	room, err := tx.Rooms().FindByID(ctx, key.RoomID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	code, err := c.codec.Encode(ticketcode.Payload{
		RoomID:     key.RoomID,
		StartTime:  key.StartTime,
		CustomerID: key.CustomerID,
		CreatedAt:  key.CreatedAt,
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode ticket")
	}

	labels := make([]string, 0, len(res.Seats()))
	for _, s := range res.Seats() {
		labels = append(labels, s.Label())
	}

	return &mailer.TicketMail{
		To:         customer.Email(),
		MovieTitle: movie.Title,
		RoomName:   room.Name,
		StartTime:  key.StartTime,
		Seats:      labels,
		PriceCents: res.PriceCents(),
		Code:       code,
	}, nil
}

func (c *reservationCommandsImpl) Cancel(ctx context.Context, key reservation.Key, actorID uuid.UUID, actorRole user.Role) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := findReservation(ctx, tx, key)
		if err != nil {
			return err
		}
		if err := requireOwner(key, actorID, actorRole); err != nil {
			return err
		}

		if err := res.Cancel(c.clock.Now()); err != nil {
			switch {
			case errors.Is(err, reservation.ErrCancelTooLate):
				return errs.Mark(err, errs.ErrCancelTooLate)
			default:
				return errs.Mark(err, errs.ErrNotActive)
			}
		}

		if err := tx.Reservations().UpdateStatus(ctx, key, res.Status(), res.CancelledAt()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		// Cancelled reservations keep their row but give their seats back.
		if err := tx.Reservations().DeleteAssignments(ctx, key); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// DeletePending lets a customer abandon their own hold before paying.
func (c *reservationCommandsImpl) DeletePending(ctx context.Context, key reservation.Key, actorID uuid.UUID, actorRole user.Role) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := findReservation(ctx, tx, key)
		if err != nil {
			return err
		}
		if err := requireOwner(key, actorID, actorRole); err != nil {
			return err
		}
		if res.Status() != reservation.StatusPending {
			return errs.Mark(errs.New("only pending reservations can be deleted"), errs.ErrNotPending)
		}
		if err := tx.Reservations().Delete(ctx, key); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func findReservation(ctx context.Context, tx shared.Tx, key reservation.Key) (*reservation.Reservation, error) {
	res, err := tx.Reservations().FindByKey(ctx, key)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrReservationNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return res, nil
}

func requireOwner(key reservation.Key, actorID uuid.UUID, actorRole user.Role) error {
	if actorID == key.CustomerID || actorRole.AtLeast(user.RoleStaff) {
		return nil
	}
	return errs.Mark(errs.New("actor does not own reservation"), errs.ErrNotOwner)
}

func dedupeSeats(requested []seat.Key) ([]seat.Key, error) {
	if len(requested) == 0 {
		return nil, errs.Mark(errs.New("empty seat selection"), errs.ErrNoSeatsRequested)
	}
	seen := make(map[seat.Key]struct{}, len(requested))
	out := make([]seat.Key, 0, len(requested))
	for _, k := range requested {
		if _, ok := seen[k]; ok {
			return nil, errs.Mark(errs.New("duplicate seat in selection: "+k.Label()), errs.ErrDomainValidation)
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out, nil
}
