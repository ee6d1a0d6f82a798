package queries

import (
	"context"
	"time"

	"cinebox/internal/domain/user"
	"cinebox/internal/infra"
	"cinebox/internal/infra/repository"
	"cinebox/internal/pkg/clock"
	"cinebox/internal/pkg/errs"

	"github.com/jinzhu/copier"
)

type MovieLister interface {
	List(ctx context.Context) ([]*repository.Movie, error)
}

type RoomLister interface {
	List(ctx context.Context) ([]*repository.Room, error)
}

type ScreeningReadStore interface {
	ListUpcoming(ctx context.Context, now time.Time, includeHidden bool) ([]*ScreeningView, error)
}

type ParameterGetter interface {
	Get(ctx context.Context, id int) (int, error)
}

type CatalogQueries interface {
	ListMovies(ctx context.Context) ([]*MovieView, error)
	ListRooms(ctx context.Context) ([]*RoomView, error)
	ListScreenings(ctx context.Context, viewerRole user.Role) ([]*ScreeningView, error)
	GetParameter(ctx context.Context, id int) (int, error)
}

type catalogQueriesImpl struct {
	movies     MovieLister
	rooms      RoomLister
	screenings ScreeningReadStore
	parameters ParameterGetter
	clock      clock.Clock
}

func NewCatalogQueries(
	movies MovieLister,
	rooms RoomLister,
	screenings ScreeningReadStore,
	parameters ParameterGetter,
	clk clock.Clock,
) CatalogQueries {
	return &catalogQueriesImpl{
		movies:     movies,
		rooms:      rooms,
		screenings: screenings,
		parameters: parameters,
		clock:      clk,
	}
}

func (q *catalogQueriesImpl) ListMovies(ctx context.Context) ([]*MovieView, error) {
	movies, err := q.movies.List(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	views := make([]*MovieView, 0, len(movies))
	if err := copier.Copy(&views, &movies); err != nil {
		return nil, errs.Wrap(err, "failed to map movie views")
	}
	return views, nil
}

func (q *catalogQueriesImpl) ListRooms(ctx context.Context) ([]*RoomView, error) {
	rooms, err := q.rooms.List(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	views := make([]*RoomView, 0, len(rooms))
	if err := copier.Copy(&views, &rooms); err != nil {
		return nil, errs.Wrap(err, "failed to map room views")
	}
	return views, nil
}

// ListScreenings shows customers the published schedule; staff see hidden
// slots as well.
func (q *catalogQueriesImpl) ListScreenings(ctx context.Context, viewerRole user.Role) ([]*ScreeningView, error) {
	includeHidden := viewerRole.AtLeast(user.RoleStaff)
	views, err := q.screenings.ListUpcoming(ctx, q.clock.Now(), includeHidden)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}

func (q *catalogQueriesImpl) GetParameter(ctx context.Context, id int) (int, error) {
	value, err := q.parameters.Get(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return 0, errs.Mark(err, errs.ErrParameterNotFound)
		}
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return value, nil
}
