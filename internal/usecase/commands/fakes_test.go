//go:build unit

package commands_test

import (
	"context"
	"time"

	"cinebox/internal/domain/reservation"
	"cinebox/internal/domain/screening"
	"cinebox/internal/domain/seat"
	"cinebox/internal/domain/user"
	"cinebox/internal/infra"
	"cinebox/internal/infra/mailer"
	"cinebox/internal/infra/repository"
	"cinebox/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the database. The fake unit of work
// hands out repositories over the same store, so a command sees its own
// writes within a "transaction". Rollback is not simulated; tests assert on
// returned errors, not on partial state.
type fakeStore struct {
	users      []*user.User
	movies     []*repository.Movie
	rooms      []*repository.Room
	seats      map[uuid.UUID][]seat.Seat
	screenings []*screening.Screening
	rsvs       []*resRecord
	params     map[int]int

	// createReservationErr, when set, fails the next reservation insert. Used
	// to simulate the race where a concurrent transaction takes a seat between
	// the availability pre-check and the insert.
	createReservationErr error
}

// resRecord mirrors a reservations row plus whether its seat_assignments rows
// still exist.
type resRecord struct {
	key         reservation.Key
	status      reservation.Status
	seats       []seat.Key
	priceCents  int64
	cancelledAt *time.Time
	held        bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		seats:  make(map[uuid.UUID][]seat.Seat),
		params: make(map[int]int),
	}
}

func notFoundErr(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

func duplicateErr(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindDuplicateKey)
}

func (s *fakeStore) findRecord(key reservation.Key) *resRecord {
	for _, r := range s.rsvs {
		if r.key.RoomID == key.RoomID &&
			r.key.StartTime.Equal(key.StartTime) &&
			r.key.CustomerID == key.CustomerID &&
			r.key.CreatedAt.Equal(key.CreatedAt) {
			return r
		}
	}
	return nil
}

type fakeUoW struct {
	store *fakeStore
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{store: u.store})
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) Users() shared.UserRepository               { return &fakeUserRepo{t.store} }
func (t *fakeTx) Movies() shared.MovieRepository             { return &fakeMovieRepo{t.store} }
func (t *fakeTx) Rooms() shared.RoomRepository               { return &fakeRoomRepo{t.store} }
func (t *fakeTx) Seats() shared.SeatRepository               { return &fakeSeatRepo{t.store} }
func (t *fakeTx) Screenings() shared.ScreeningRepository     { return &fakeScreeningRepo{t.store} }
func (t *fakeTx) Reservations() shared.ReservationRepository { return &fakeReservationRepo{t.store} }
func (t *fakeTx) Parameters() shared.ParameterRepository     { return &fakeParameterRepo{t.store} }

type fakeUserRepo struct{ s *fakeStore }

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	for _, existing := range r.s.users {
		if existing.Email() == u.Email() {
			return duplicateErr("email already registered")
		}
	}
	r.s.users = append(r.s.users, u)
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	for _, u := range r.s.users {
		if u.ID() == id {
			return u, nil
		}
	}
	return nil, notFoundErr("user not found")
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.s.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, notFoundErr("user not found")
}

type fakeMovieRepo struct{ s *fakeStore }

func (r *fakeMovieRepo) Create(_ context.Context, m *repository.Movie) error {
	r.s.movies = append(r.s.movies, m)
	return nil
}

func (r *fakeMovieRepo) FindByID(_ context.Context, id uuid.UUID) (*repository.Movie, error) {
	for _, m := range r.s.movies {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, notFoundErr("movie not found")
}

func (r *fakeMovieRepo) List(_ context.Context) ([]*repository.Movie, error) {
	return r.s.movies, nil
}

func (r *fakeMovieRepo) RuntimeMap(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]int, error) {
	out := make(map[uuid.UUID]int, len(ids))
	for _, id := range ids {
		for _, m := range r.s.movies {
			if m.ID == id {
				out[id] = m.RuntimeMin
			}
		}
	}
	return out, nil
}

type fakeRoomRepo struct{ s *fakeStore }

func (r *fakeRoomRepo) Create(_ context.Context, rm *repository.Room) error {
	for _, existing := range r.s.rooms {
		if existing.Name == rm.Name {
			return duplicateErr("room name taken")
		}
	}
	r.s.rooms = append(r.s.rooms, rm)
	return nil
}

func (r *fakeRoomRepo) FindByID(_ context.Context, id uuid.UUID) (*repository.Room, error) {
	for _, rm := range r.s.rooms {
		if rm.ID == id {
			return rm, nil
		}
	}
	return nil, notFoundErr("room not found")
}

func (r *fakeRoomRepo) List(_ context.Context) ([]*repository.Room, error) {
	return r.s.rooms, nil
}

type fakeSeatRepo struct{ s *fakeStore }

func (r *fakeSeatRepo) CreateBatch(_ context.Context, roomID uuid.UUID, seats []seat.Seat) error {
	r.s.seats[roomID] = append(r.s.seats[roomID], seats...)
	return nil
}

func (r *fakeSeatRepo) FindByKeys(_ context.Context, roomID uuid.UUID, keys []seat.Key) ([]seat.Seat, error) {
	var out []seat.Seat
	for _, k := range keys {
		for _, s := range r.s.seats[roomID] {
			if s.Key == k {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

type fakeScreeningRepo struct{ s *fakeStore }

func (r *fakeScreeningRepo) Create(_ context.Context, scr *screening.Screening) error {
	for _, existing := range r.s.screenings {
		if existing.SameSlot(scr) {
			return duplicateErr("slot taken")
		}
	}
	r.s.screenings = append(r.s.screenings, scr)
	return nil
}

func (r *fakeScreeningRepo) Update(_ context.Context, oldRoomID uuid.UUID, oldStart time.Time, scr *screening.Screening) error {
	idx := -1
	for i, existing := range r.s.screenings {
		if existing.RoomID() == oldRoomID && existing.StartTime().Equal(oldStart) {
			idx = i
		}
	}
	if idx < 0 {
		return notFoundErr("screening not found")
	}
	for i, existing := range r.s.screenings {
		if i != idx && existing.SameSlot(scr) {
			return duplicateErr("slot taken")
		}
	}
	r.s.screenings[idx] = scr
	return nil
}

func (r *fakeScreeningRepo) UpdateVisibility(_ context.Context, roomID uuid.UUID, start time.Time, v screening.Visibility) error {
	for i, existing := range r.s.screenings {
		if existing.RoomID() == roomID && existing.StartTime().Equal(start) {
			r.s.screenings[i] = screening.Reconstruct(roomID, existing.StartTime(), existing.MovieID(), v)
			return nil
		}
	}
	return notFoundErr("screening not found")
}

func (r *fakeScreeningRepo) FindByKey(_ context.Context, roomID uuid.UUID, start time.Time) (*screening.Screening, error) {
	for _, existing := range r.s.screenings {
		if existing.RoomID() == roomID && existing.StartTime().Equal(start) {
			return existing, nil
		}
	}
	return nil, notFoundErr("screening not found")
}

func (r *fakeScreeningRepo) ListByRoom(_ context.Context, roomID uuid.UUID) ([]*screening.Screening, error) {
	var out []*screening.Screening
	for _, existing := range r.s.screenings {
		if existing.RoomID() == roomID {
			out = append(out, existing)
		}
	}
	return out, nil
}

func (r *fakeScreeningRepo) DeactivateEnded(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for i, existing := range r.s.screenings {
		if existing.Visibility() != screening.VisibilityInactive && existing.StartTime().Before(now) {
			r.s.screenings[i] = screening.Reconstruct(existing.RoomID(), existing.StartTime(), existing.MovieID(), screening.VisibilityInactive)
			n++
		}
	}
	return n, nil
}

type fakeReservationRepo struct{ s *fakeStore }

func (r *fakeReservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	if err := r.s.createReservationErr; err != nil {
		r.s.createReservationErr = nil
		return err
	}
	key := res.Key()
	for _, held := range r.s.rsvs {
		if !held.held || held.key.RoomID != key.RoomID || !held.key.StartTime.Equal(key.StartTime) {
			continue
		}
		for _, hs := range held.seats {
			for _, rs := range res.Seats() {
				if hs == rs {
					return duplicateErr("seat assignment exists")
				}
			}
		}
	}
	r.s.rsvs = append(r.s.rsvs, &resRecord{
		key:        key,
		status:     res.Status(),
		seats:      res.Seats(),
		priceCents: res.PriceCents(),
		held:       true,
	})
	return nil
}

func (r *fakeReservationRepo) FindByKey(_ context.Context, key reservation.Key) (*reservation.Reservation, error) {
	rec := r.s.findRecord(key)
	if rec == nil {
		return nil, notFoundErr("reservation not found")
	}
	return reservation.Reconstruct(rec.key, rec.status, rec.seats, rec.priceCents, rec.cancelledAt), nil
}

func (r *fakeReservationRepo) AssignedSeats(_ context.Context, roomID uuid.UUID, start time.Time, keys []seat.Key) ([]seat.Key, error) {
	var out []seat.Key
	for _, rec := range r.s.rsvs {
		if !rec.held || rec.key.RoomID != roomID || !rec.key.StartTime.Equal(start) {
			continue
		}
		for _, hs := range rec.seats {
			for _, k := range keys {
				if hs == k {
					out = append(out, hs)
				}
			}
		}
	}
	return out, nil
}

func (r *fakeReservationRepo) CountHeldByScreening(_ context.Context, roomID uuid.UUID, start time.Time) (int64, error) {
	var n int64
	for _, rec := range r.s.rsvs {
		if rec.key.RoomID == roomID && rec.key.StartTime.Equal(start) && rec.status.HoldsSeats() {
			n++
		}
	}
	return n, nil
}

func (r *fakeReservationRepo) UpdateStatus(_ context.Context, key reservation.Key, status reservation.Status, cancelledAt *time.Time) error {
	rec := r.s.findRecord(key)
	if rec == nil {
		return notFoundErr("reservation not found")
	}
	rec.status = status
	rec.cancelledAt = cancelledAt
	return nil
}

func (r *fakeReservationRepo) Delete(_ context.Context, key reservation.Key) error {
	rec := r.s.findRecord(key)
	if rec == nil {
		return notFoundErr("reservation not found")
	}
	for i, candidate := range r.s.rsvs {
		if candidate == rec {
			r.s.rsvs = append(r.s.rsvs[:i], r.s.rsvs[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeReservationRepo) DeleteAssignments(_ context.Context, key reservation.Key) error {
	rec := r.s.findRecord(key)
	if rec == nil {
		return notFoundErr("reservation not found")
	}
	rec.held = false
	return nil
}

func (r *fakeReservationRepo) DeletePendingByCustomer(_ context.Context, customerID uuid.UUID) (int64, error) {
	var n int64
	kept := r.s.rsvs[:0]
	for _, rec := range r.s.rsvs {
		if rec.key.CustomerID == customerID && rec.status == reservation.StatusPending {
			n++
			continue
		}
		kept = append(kept, rec)
	}
	r.s.rsvs = kept
	return n, nil
}

func (r *fakeReservationRepo) DeleteExpiredPending(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	kept := r.s.rsvs[:0]
	for _, rec := range r.s.rsvs {
		if rec.status == reservation.StatusPending && rec.key.CreatedAt.Before(cutoff) {
			n++
			continue
		}
		kept = append(kept, rec)
	}
	r.s.rsvs = kept
	return n, nil
}

func (r *fakeReservationRepo) MarkNoShows(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, rec := range r.s.rsvs {
		if rec.status == reservation.StatusActive && rec.key.StartTime.Before(now) {
			rec.status = reservation.StatusNoShow
			rec.held = false
			n++
		}
	}
	return n, nil
}

type fakeParameterRepo struct{ s *fakeStore }

func (r *fakeParameterRepo) Get(_ context.Context, id int) (int, error) {
	v, ok := r.s.params[id]
	if !ok {
		return 0, notFoundErr("parameter not found")
	}
	return v, nil
}

func (r *fakeParameterRepo) GetOrDefault(ctx context.Context, id, fallback int) (int, error) {
	v, err := r.Get(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return fallback, nil
		}
		return 0, err
	}
	return v, nil
}

func (r *fakeParameterRepo) Set(_ context.Context, id, value int, _ time.Time) error {
	r.s.params[id] = value
	return nil
}

// fakeMailer hands delivered mail to the test over a channel, since the
// confirm command sends from a goroutine after the transaction commits.
type fakeMailer struct {
	sent chan mailer.TicketMail
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(chan mailer.TicketMail, 1)}
}

func (m *fakeMailer) SendTicket(mail mailer.TicketMail) error {
	m.sent <- mail
	return nil
}
