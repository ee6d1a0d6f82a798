package commands

import (
	"context"
	"strings"

	"cinebox/internal/domain/seat"
	"cinebox/internal/infra"
	"cinebox/internal/infra/repository"
	"cinebox/internal/pkg/clock"
	"cinebox/internal/pkg/errs"
	"cinebox/internal/usecase/shared"

	"github.com/google/uuid"
)

type CatalogCommands interface {
	CreateMovie(ctx context.Context, title string, runtimeMin int) (*repository.Movie, error)
	CreateRoom(ctx context.Context, name string, rows, seatsPerRow int) (*repository.Room, error)
	SetParameter(ctx context.Context, id, value int) error
}

type catalogCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewCatalogCommands(uow shared.UnitOfWork, clk clock.Clock) CatalogCommands {
	return &catalogCommandsImpl{uow: uow, clock: clk}
}

func (c *catalogCommandsImpl) CreateMovie(ctx context.Context, title string, runtimeMin int) (*repository.Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errs.Mark(errs.New("movie title must not be empty"), errs.ErrDomainValidation)
	}
	if runtimeMin <= 0 {
		return nil, errs.Mark(errs.New("movie runtime must be positive"), errs.ErrDomainValidation)
	}

	movie := &repository.Movie{
		ID:         uuid.New(),
		Title:      title,
		RuntimeMin: runtimeMin,
		CreatedAt:  c.clock.Now(),
	}
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Movies().Create(ctx, movie); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movie, nil
}

// CreateRoom writes the room together with its generated seat map in one
// transaction; a room never exists half-mapped.
func (c *catalogCommandsImpl) CreateRoom(ctx context.Context, name string, rows, seatsPerRow int) (*repository.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.Mark(errs.New("room name must not be empty"), errs.ErrDomainValidation)
	}

	seats, err := seat.GenerateMap(rows, seatsPerRow)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	room := &repository.Room{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: c.clock.Now(),
	}
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Rooms().Create(ctx, room); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrRoomExists)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.Seats().CreateBatch(ctx, room.ID, seats); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

// SetParameter tunes one of the runtime knobs. Values are minutes and must
// stay positive; the next engine decision picks the new value up.
func (c *catalogCommandsImpl) SetParameter(ctx context.Context, id, value int) error {
	if id != repository.ParamCleaningBufferMin && id != repository.ParamReservationHoldMin {
		return errs.Mark(errs.New("unknown parameter"), errs.ErrParameterNotFound)
	}
	if value <= 0 {
		return errs.Mark(errs.New("parameter value must be positive"), errs.ErrDomainValidation)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Parameters().Set(ctx, id, value, c.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}
