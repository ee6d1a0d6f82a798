package queries

import (
	"context"
	"log/slog"
	"time"

	"cinebox/internal/domain/screening"
	"cinebox/internal/domain/user"
	"cinebox/internal/infra"
	"cinebox/internal/pkg/errs"

	"github.com/google/uuid"
)

type SeatMapReadStore interface {
	FindByScreening(ctx context.Context, roomID uuid.UUID, start time.Time) ([]*SeatView, error)
}

type ScreeningFinder interface {
	FindByKey(ctx context.Context, roomID uuid.UUID, start time.Time) (*screening.Screening, error)
}

// Reaper is the slice of the sweeper the seat map query runs opportunistically.
type Reaper interface {
	ReapExpired(ctx context.Context) (int64, error)
}

type SeatMapQueries interface {
	GetSeatMap(ctx context.Context, roomID uuid.UUID, start time.Time, viewerRole user.Role) (*SeatMapView, error)
}

type seatMapQueriesImpl struct {
	readStore  SeatMapReadStore
	screenings ScreeningFinder
	reaper     Reaper
}

func NewSeatMapQueries(readStore SeatMapReadStore, screenings ScreeningFinder, reaper Reaper) SeatMapQueries {
	return &seatMapQueriesImpl{
		readStore:  readStore,
		screenings: screenings,
		reaper:     reaper,
	}
}

// GetSeatMap reaps expired holds before reading so customers never see a seat
// blocked by a hold that has already timed out. A reap failure only costs
// freshness, so it is logged and swallowed.
func (q *seatMapQueriesImpl) GetSeatMap(ctx context.Context, roomID uuid.UUID, start time.Time, viewerRole user.Role) (*SeatMapView, error) {
	if _, err := q.reaper.ReapExpired(ctx); err != nil {
		slog.Warn("opportunistic reap failed", "error", err.Error())
	}

	scr, err := q.screenings.FindByKey(ctx, roomID, start)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrScreeningNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if scr.Visibility() != screening.VisibilityPublic && !viewerRole.AtLeast(user.RoleStaff) {
		return nil, errs.Mark(errs.New("screening is not published"), errs.ErrScreeningNotFound)
	}

	seats, err := q.readStore.FindByScreening(ctx, roomID, scr.StartTime())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &SeatMapView{
		RoomID:    roomID,
		StartTime: scr.StartTime(),
		Seats:     seats,
	}, nil
}
