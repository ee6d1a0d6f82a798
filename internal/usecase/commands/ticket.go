package commands

import (
	"context"
	"errors"
	"time"

	"cinebox/internal/domain/reservation"
	"cinebox/internal/domain/user"
	"cinebox/internal/infra"
	"cinebox/internal/pkg/clock"
	"cinebox/internal/pkg/errs"
	"cinebox/internal/pkg/ticketcode"
	"cinebox/internal/usecase/shared"

	"github.com/google/uuid"
)

// Attendance is what the gate scanner sees after a successful redemption.
type Attendance struct {
	MovieTitle   string
	RoomName     string
	StartTime    time.Time
	CustomerName string
	Seats        []string
}

// IssuedTicket is the customer-facing credential: the opaque code plus its
// QR rendering.
type IssuedTicket struct {
	Code  string
	QRPNG []byte
}

type TicketCommands interface {
	Issue(ctx context.Context, key reservation.Key, actorID uuid.UUID, actorRole user.Role) (*IssuedTicket, error)
	Redeem(ctx context.Context, code string) (*Attendance, error)
}

type ticketCommandsImpl struct {
	uow   shared.UnitOfWork
	codec *ticketcode.Codec
	clock clock.Clock
}

func NewTicketCommands(uow shared.UnitOfWork, codec *ticketcode.Codec, clk clock.Clock) TicketCommands {
	return &ticketCommandsImpl{uow: uow, codec: codec, clock: clk}
}

// Issue seals the reservation's key into a fresh code. Only the owner (or
// staff) of an active reservation gets one.
func (t *ticketCommandsImpl) Issue(ctx context.Context, key reservation.Key, actorID uuid.UUID, actorRole user.Role) (*IssuedTicket, error) {
	var ticket *IssuedTicket
	err := t.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := findReservation(ctx, tx, key)
		if err != nil {
			return err
		}
		if err := requireOwner(key, actorID, actorRole); err != nil {
			return err
		}
		if res.Status() != reservation.StatusActive {
			return errs.Mark(errs.New("ticket requires an active reservation"), errs.ErrNotActive)
		}

		code, err := t.codec.Encode(ticketcode.Payload{
			RoomID:     key.RoomID,
			StartTime:  key.StartTime,
			CustomerID: key.CustomerID,
			CreatedAt:  key.CreatedAt,
		})
		if err != nil {
			return errs.Wrap(err, "failed to encode ticket")
		}
		png, err := ticketcode.QRPNG(code, 256)
		if err != nil {
			return errs.Wrap(err, "failed to render ticket QR")
		}

		ticket = &IssuedTicket{Code: code, QRPNG: png}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// Redeem validates a scanned code at the venue gate: decrypt, look the
// reservation up, check the attendance window, then the state. The window is
// checked before the state so a scan outside it reports the window problem
// even for already-used tickets.
func (t *ticketCommandsImpl) Redeem(ctx context.Context, code string) (*Attendance, error) {
	payload, err := t.codec.Decode(code)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrTicketMalformed)
	}
	key := reservation.NewKey(payload.RoomID, payload.StartTime, payload.CustomerID, payload.CreatedAt)

	var att *Attendance
	err = t.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := findReservation(ctx, tx, key)
		if err != nil {
			return err
		}

		scr, err := tx.Screenings().FindByKey(ctx, key.RoomID, key.StartTime)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrScreeningNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		movie, err := tx.Movies().FindByID(ctx, scr.MovieID())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := res.Redeem(t.clock.Now(), movie.RuntimeMin); err != nil {
			return markRedeemError(err)
		}
		if err := tx.Reservations().UpdateStatus(ctx, key, res.Status(), res.CancelledAt()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		// Seats stop being held the moment the ticket is used.
		if err := tx.Reservations().DeleteAssignments(ctx, key); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		room, err := tx.Rooms().FindByID(ctx, key.RoomID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		customer, err := tx.Users().FindByID(ctx, key.CustomerID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		labels := make([]string, 0, len(res.Seats()))
		for _, s := range res.Seats() {
			labels = append(labels, s.Label())
		}
		att = &Attendance{
			MovieTitle:   movie.Title,
			RoomName:     room.Name,
			StartTime:    key.StartTime,
			CustomerName: customer.DisplayName(),
			Seats:        labels,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return att, nil
}

func markRedeemError(err error) error {
	switch {
	case errors.Is(err, reservation.ErrNotStarted):
		return errs.Mark(err, errs.ErrTicketNotStarted)
	case errors.Is(err, reservation.ErrAlreadyEnded):
		return errs.Mark(err, errs.ErrTicketAlreadyEnded)
	case errors.Is(err, reservation.ErrAlreadyUsed):
		return errs.Mark(err, errs.ErrTicketAlreadyUsed)
	case errors.Is(err, reservation.ErrCancelled):
		return errs.Mark(err, errs.ErrTicketCancelled)
	default:
		return errs.Mark(err, errs.ErrNotActive)
	}
}
