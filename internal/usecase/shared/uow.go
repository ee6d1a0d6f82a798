package shared

import (
	"context"
	"time"

	"cinebox/internal/domain/reservation"
	"cinebox/internal/domain/screening"
	"cinebox/internal/domain/seat"
	"cinebox/internal/domain/user"
	"cinebox/internal/infra/repository"

	"github.com/google/uuid"
)

// UnitOfWork runs fn inside a database transaction. fn receives tx-bound
// repositories; returning an error rolls everything back.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx hands out repositories bound to the transaction in flight.
type Tx interface {
	Users() UserRepository
	Movies() MovieRepository
	Rooms() RoomRepository
	Seats() SeatRepository
	Screenings() ScreeningRepository
	Reservations() ReservationRepository
	Parameters() ParameterRepository
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

type MovieRepository interface {
	Create(ctx context.Context, m *repository.Movie) error
	FindByID(ctx context.Context, id uuid.UUID) (*repository.Movie, error)
	List(ctx context.Context) ([]*repository.Movie, error)
	RuntimeMap(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int, error)
}

type RoomRepository interface {
	Create(ctx context.Context, rm *repository.Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*repository.Room, error)
	List(ctx context.Context) ([]*repository.Room, error)
}

type SeatRepository interface {
	CreateBatch(ctx context.Context, roomID uuid.UUID, seats []seat.Seat) error
	FindByKeys(ctx context.Context, roomID uuid.UUID, keys []seat.Key) ([]seat.Seat, error)
}

type ScreeningRepository interface {
	Create(ctx context.Context, s *screening.Screening) error
	Update(ctx context.Context, oldRoomID uuid.UUID, oldStart time.Time, s *screening.Screening) error
	UpdateVisibility(ctx context.Context, roomID uuid.UUID, start time.Time, v screening.Visibility) error
	FindByKey(ctx context.Context, roomID uuid.UUID, start time.Time) (*screening.Screening, error)
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*screening.Screening, error)
	DeactivateEnded(ctx context.Context, now time.Time) (int64, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) error
	FindByKey(ctx context.Context, key reservation.Key) (*reservation.Reservation, error)
	AssignedSeats(ctx context.Context, roomID uuid.UUID, start time.Time, keys []seat.Key) ([]seat.Key, error)
	CountHeldByScreening(ctx context.Context, roomID uuid.UUID, start time.Time) (int64, error)
	UpdateStatus(ctx context.Context, key reservation.Key, status reservation.Status, cancelledAt *time.Time) error
	Delete(ctx context.Context, key reservation.Key) error
	DeleteAssignments(ctx context.Context, key reservation.Key) error
	DeletePendingByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
	DeleteExpiredPending(ctx context.Context, cutoff time.Time) (int64, error)
	MarkNoShows(ctx context.Context, now time.Time) (int64, error)
}

type ParameterRepository interface {
	Get(ctx context.Context, id int) (int, error)
	GetOrDefault(ctx context.Context, id, fallback int) (int, error)
	Set(ctx context.Context, id, value int, now time.Time) error
}
