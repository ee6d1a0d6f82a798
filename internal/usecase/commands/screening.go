package commands

import (
	"context"
	"fmt"
	"time"

	"cinebox/internal/domain/screening"
	"cinebox/internal/infra"
	"cinebox/internal/infra/repository"
	"cinebox/internal/pkg/clock"
	"cinebox/internal/pkg/errs"
	"cinebox/internal/usecase/shared"

	"github.com/google/uuid"
)

// OverlapError carries the slot the candidate collided with so the handler
// can tell the scheduler which screening is in the way.
type OverlapError struct {
	RoomID        uuid.UUID
	ExistingStart time.Time
	ExistingMovie uuid.UUID
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("screening overlaps existing screening at %s", e.ExistingStart.Format(time.RFC3339))
}

type ScreeningCommands interface {
	Create(ctx context.Context, roomID uuid.UUID, start time.Time, movieID uuid.UUID) (*screening.Screening, error)
	Update(ctx context.Context, oldRoomID uuid.UUID, oldStart time.Time, roomID uuid.UUID, start time.Time, movieID uuid.UUID) (*screening.Screening, error)
	Publish(ctx context.Context, roomID uuid.UUID, start time.Time) error
}

type screeningCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewScreeningCommands(uow shared.UnitOfWork, clk clock.Clock) ScreeningCommands {
	return &screeningCommandsImpl{uow: uow, clock: clk}
}

func (c *screeningCommandsImpl) Create(ctx context.Context, roomID uuid.UUID, start time.Time, movieID uuid.UUID) (*screening.Screening, error) {
	var created *screening.Screening
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Rooms().FindByID(ctx, roomID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrRoomNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if _, err := tx.Movies().FindByID(ctx, movieID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrMovieNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		cand, err := screening.NewScreening(roomID, start, movieID, c.clock.Now())
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		if err := c.validateNoOverlap(ctx, tx, cand, nil); err != nil {
			return err
		}

		if err := tx.Screenings().Create(ctx, cand); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrScreeningExists)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		created = cand
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update reschedules a screening to a new room, start or movie. The new slot
// is overlap-validated against the target room minus the screening itself,
// and a screening with seats held cannot be moved.
func (c *screeningCommandsImpl) Update(
	ctx context.Context,
	oldRoomID uuid.UUID, oldStart time.Time,
	roomID uuid.UUID, start time.Time, movieID uuid.UUID,
) (*screening.Screening, error) {
	var updated *screening.Screening
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		old, err := tx.Screenings().FindByKey(ctx, oldRoomID, oldStart)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrScreeningNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		held, err := tx.Reservations().CountHeldByScreening(ctx, oldRoomID, oldStart)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if held > 0 {
			return errs.Mark(errs.New("screening has held seats"), errs.ErrScreeningReserved)
		}

		if _, err := tx.Rooms().FindByID(ctx, roomID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrRoomNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if _, err := tx.Movies().FindByID(ctx, movieID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrMovieNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		cand, err := screening.NewScreening(roomID, start, movieID, c.clock.Now())
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}
		// Rescheduling preserves visibility.
		cand = screening.Reconstruct(cand.RoomID(), cand.StartTime(), cand.MovieID(), old.Visibility())

		// The screening's own old slot must not count as a conflict when it
		// stays in the same room.
		if err := c.validateNoOverlap(ctx, tx, cand, old); err != nil {
			return err
		}

		if err := tx.Screenings().Update(ctx, oldRoomID, oldStart, cand); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrScreeningNotFound)
			}
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrScreeningExists)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		updated = cand
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *screeningCommandsImpl) Publish(ctx context.Context, roomID uuid.UUID, start time.Time) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		scr, err := tx.Screenings().FindByKey(ctx, roomID, start)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrScreeningNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := scr.Publish(); err != nil {
			return errs.Mark(err, errs.ErrNotPrivate)
		}
		if err := tx.Screenings().UpdateVisibility(ctx, roomID, start, scr.Visibility()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// validateNoOverlap loads the target room's schedule and the runtimes it
// needs, reads the cleaning buffer fresh, and runs the domain check. exclude,
// when non-nil, drops that screening's slot from the comparison set.
func (c *screeningCommandsImpl) validateNoOverlap(ctx context.Context, tx shared.Tx, cand, exclude *screening.Screening) error {
	all, err := tx.Screenings().ListByRoom(ctx, cand.RoomID())
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	existing := make([]*screening.Screening, 0, len(all))
	for _, s := range all {
		if exclude != nil && s.SameSlot(exclude) {
			continue
		}
		existing = append(existing, s)
	}

	ids := make([]uuid.UUID, 0, len(existing)+1)
	ids = append(ids, cand.MovieID())
	for _, s := range existing {
		ids = append(ids, s.MovieID())
	}
	runtimes, err := tx.Movies().RuntimeMap(ctx, ids)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	bufferMin, err := tx.Parameters().GetOrDefault(ctx, repository.ParamCleaningBufferMin, repository.DefaultCleaningBufferMin)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	conflict, err := screening.FindConflict(cand, existing, runtimes, bufferMin)
	if err != nil {
		return errs.Mark(err, errs.ErrDomainValidation)
	}
	if conflict != nil {
		overlapErr := &OverlapError{
			RoomID:        cand.RoomID(),
			ExistingStart: conflict.Existing.StartTime(),
			ExistingMovie: conflict.Existing.MovieID(),
		}
		return errs.Mark(overlapErr, errs.ErrScreeningOverlap)
	}
	return nil
}
