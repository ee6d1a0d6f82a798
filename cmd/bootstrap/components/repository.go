package components

import (
	"cinebox/internal/infra/db"
	"cinebox/internal/infra/readstore"
	repo_impl "cinebox/internal/infra/repository"
	"cinebox/internal/infra/uow"
	"cinebox/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// RepositoryModule wires the write side (the unit of work) and the pool-bound
// read side the queries use outside transactions.
var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			repo_impl.NewUserRepository,
			fx.As(new(queries.UserFinder)),
		),
		fx.Annotate(
			repo_impl.NewMovieRepository,
			fx.As(new(queries.MovieLister)),
		),
		fx.Annotate(
			repo_impl.NewRoomRepository,
			fx.As(new(queries.RoomLister)),
		),
		fx.Annotate(
			repo_impl.NewScreeningRepository,
			fx.As(new(queries.ScreeningFinder)),
		),
		fx.Annotate(
			repo_impl.NewParameterRepository,
			fx.As(new(queries.ParameterGetter)),
		),
		fx.Annotate(
			readstore.NewSeatMapReadStore,
			fx.As(new(queries.SeatMapReadStore)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		fx.Annotate(
			readstore.NewScreeningReadStore,
			fx.As(new(queries.ScreeningReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
