package repository

import (
	"context"
	"time"

	"cinebox/internal/domain/reservation"
	"cinebox/internal/domain/seat"
	"cinebox/internal/infra"
	"cinebox/internal/infra/db"

	"github.com/google/uuid"
)

type ReservationRepository struct {
	dbx db.DBTX
}

func NewReservationRepository(dbx db.DBTX) *ReservationRepository {
	return &ReservationRepository{dbx: dbx}
}

// Create inserts the reservation row and one seat assignment per held seat.
// Must run inside the seat lock transaction: a duplicate-key error from the
// seat_assignments primary key is the final double-booking guard and comes
// back as KindDuplicateKey.
func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	const insertReservation = `
		INSERT INTO reservations (room_id, start_time, customer_id, created_at, status, price_cents)
		VALUES ($1, $2, $3, $4, $5, $6)`

	key := res.Key()
	_, err := r.dbx.Exec(ctx, insertReservation,
		key.RoomID, key.StartTime, key.CustomerID, key.CreatedAt, res.Status().String(), res.PriceCents())
	if err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}

	const insertAssignments = `
		INSERT INTO seat_assignments (room_id, start_time, seat_row, seat_number, customer_id, created_at)
		SELECT $1, $2, unnest($3::text[]), unnest($4::int[]), $5, $6`

	seats := res.Seats()
	rowsArg := make([]string, len(seats))
	numbers := make([]int32, len(seats))
	for i, s := range seats {
		rowsArg[i] = s.Row
		numbers[i] = int32(s.Number)
	}

	_, err = r.dbx.Exec(ctx, insertAssignments,
		key.RoomID, key.StartTime, rowsArg, numbers, key.CustomerID, key.CreatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to create seat assignments", err)
	}
	return nil
}

func (r *ReservationRepository) FindByKey(ctx context.Context, key reservation.Key) (*reservation.Reservation, error) {
	const q = `
		SELECT status, price_cents, cancelled_at
		FROM reservations
		WHERE room_id = $1 AND start_time = $2 AND customer_id = $3 AND created_at = $4`

	var (
		status      string
		priceCents  int64
		cancelledAt *time.Time
	)
	err := r.dbx.QueryRow(ctx, q, key.RoomID, key.StartTime, key.CustomerID, key.CreatedAt).
		Scan(&status, &priceCents, &cancelledAt)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}

	seats, err := r.assignmentsByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	return reservation.Reconstruct(key, reservation.Status(status), seats, priceCents, cancelledAt), nil
}

func (r *ReservationRepository) assignmentsByKey(ctx context.Context, key reservation.Key) ([]seat.Key, error) {
	const q = `
		SELECT seat_row, seat_number
		FROM seat_assignments
		WHERE room_id = $1 AND start_time = $2 AND customer_id = $3 AND created_at = $4
		ORDER BY seat_row, seat_number`

	rows, err := r.dbx.Query(ctx, q, key.RoomID, key.StartTime, key.CustomerID, key.CreatedAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load seat assignments", err)
	}
	defer rows.Close()

	var seats []seat.Key
	for rows.Next() {
		var k seat.Key
		if err := rows.Scan(&k.Row, &k.Number); err != nil {
			return nil, infra.WrapRepoErr("failed to scan seat assignment", err)
		}
		seats = append(seats, k)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate seat assignments", err)
	}
	return seats, nil
}

// AssignedSeats returns which of the requested seats already carry an
// assignment for the screening. This is the friendly pre-check; the primary
// key enforces the invariant.
func (r *ReservationRepository) AssignedSeats(ctx context.Context, roomID uuid.UUID, start time.Time, keys []seat.Key) ([]seat.Key, error) {
	const q = `
		SELECT seat_row, seat_number
		FROM seat_assignments
		WHERE room_id = $1 AND start_time = $2
		  AND (seat_row, seat_number) IN (SELECT * FROM unnest($3::text[], $4::int[]))`

	rowsArg := make([]string, len(keys))
	numbers := make([]int32, len(keys))
	for i, k := range keys {
		rowsArg[i] = k.Row
		numbers[i] = int32(k.Number)
	}

	rows, err := r.dbx.Query(ctx, q, roomID, start, rowsArg, numbers)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to check seat assignments", err)
	}
	defer rows.Close()

	var held []seat.Key
	for rows.Next() {
		var k seat.Key
		if err := rows.Scan(&k.Row, &k.Number); err != nil {
			return nil, infra.WrapRepoErr("failed to scan held seat", err)
		}
		held = append(held, k)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate held seats", err)
	}
	return held, nil
}

// CountHeldByScreening counts reservations still holding seats for the
// screening. Moving a screening out from under them is not allowed.
func (r *ReservationRepository) CountHeldByScreening(ctx context.Context, roomID uuid.UUID, start time.Time) (int64, error) {
	const q = `
		SELECT count(*) FROM reservations
		WHERE room_id = $1 AND start_time = $2 AND status IN ('pending', 'active')`

	var n int64
	if err := r.dbx.QueryRow(ctx, q, roomID, start).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to count reservations", err)
	}
	return n, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, key reservation.Key, status reservation.Status, cancelledAt *time.Time) error {
	const q = `
		UPDATE reservations
		SET status = $5, cancelled_at = $6
		WHERE room_id = $1 AND start_time = $2 AND customer_id = $3 AND created_at = $4`

	tag, err := r.dbx.Exec(ctx, q,
		key.RoomID, key.StartTime, key.CustomerID, key.CreatedAt, status.String(), cancelledAt)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

// Delete removes the reservation row; assignments go with it via cascade.
func (r *ReservationRepository) Delete(ctx context.Context, key reservation.Key) error {
	const q = `
		DELETE FROM reservations
		WHERE room_id = $1 AND start_time = $2 AND customer_id = $3 AND created_at = $4`

	tag, err := r.dbx.Exec(ctx, q, key.RoomID, key.StartTime, key.CustomerID, key.CreatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to delete reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

// DeleteAssignments releases a reservation's seats while keeping its row,
// for the soft cancellation state.
func (r *ReservationRepository) DeleteAssignments(ctx context.Context, key reservation.Key) error {
	const q = `
		DELETE FROM seat_assignments
		WHERE room_id = $1 AND start_time = $2 AND customer_id = $3 AND created_at = $4`

	_, err := r.dbx.Exec(ctx, q, key.RoomID, key.StartTime, key.CustomerID, key.CreatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to delete seat assignments", err)
	}
	return nil
}

// DeletePendingByCustomer enforces the single-active-pending policy: any
// pending reservation this customer still holds is purged, seats included.
func (r *ReservationRepository) DeletePendingByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	const q = `DELETE FROM reservations WHERE customer_id = $1 AND status = 'pending'`

	tag, err := r.dbx.Exec(ctx, q, customerID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to purge pending reservations", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteExpiredPending reaps pending reservations created before the cutoff.
func (r *ReservationRepository) DeleteExpiredPending(ctx context.Context, cutoff time.Time) (int64, error) {
	const q = `DELETE FROM reservations WHERE status = 'pending' AND created_at < $1`

	tag, err := r.dbx.Exec(ctx, q, cutoff)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to reap expired reservations", err)
	}
	return tag.RowsAffected(), nil
}

// MarkNoShows transitions reservations still active after their screening
// ended, and releases their seats to keep the assignments-iff-holding
// invariant.
func (r *ReservationRepository) MarkNoShows(ctx context.Context, now time.Time) (int64, error) {
	const mark = `
		UPDATE reservations r
		SET status = 'no_show'
		FROM screenings s
		JOIN movies m ON m.id = s.movie_id
		WHERE s.room_id = r.room_id AND s.start_time = r.start_time
		  AND r.status = 'active'
		  AND s.start_time + make_interval(mins => m.runtime_min) < $1`

	tag, err := r.dbx.Exec(ctx, mark, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to mark no-shows", err)
	}

	const release = `
		DELETE FROM seat_assignments a
		USING reservations r
		WHERE r.room_id = a.room_id AND r.start_time = a.start_time
		  AND r.customer_id = a.customer_id AND r.created_at = a.created_at
		  AND r.status = 'no_show'`

	if _, err := r.dbx.Exec(ctx, release); err != nil {
		return 0, infra.WrapRepoErr("failed to release no-show seats", err)
	}

	return tag.RowsAffected(), nil
}
