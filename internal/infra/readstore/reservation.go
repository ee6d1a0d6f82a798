package readstore

import (
	"context"

	"cinebox/internal/infra"
	"cinebox/internal/infra/db"
	"cinebox/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationReadStore struct {
	dbx db.DBTX
}

func NewReservationReadStore(dbx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{dbx: dbx}
}

func (r *ReservationReadStore) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*queries.ReservationListItem, error) {
	const q = `
		SELECT r.room_id, rm.name, r.start_time, r.customer_id, r.created_at,
		       r.status, r.price_cents, r.cancelled_at, m.title,
		       coalesce(
		           array_agg(a.seat_row || a.seat_number::text ORDER BY a.seat_row, a.seat_number)
		           FILTER (WHERE a.seat_row IS NOT NULL),
		           '{}'
		       ) AS seats
		FROM reservations r
		JOIN rooms rm ON rm.id = r.room_id
		JOIN screenings sc ON sc.room_id = r.room_id AND sc.start_time = r.start_time
		JOIN movies m ON m.id = sc.movie_id
		LEFT JOIN seat_assignments a
		  ON a.room_id = r.room_id AND a.start_time = r.start_time
		 AND a.customer_id = r.customer_id AND a.created_at = r.created_at
		WHERE r.customer_id = $1
		GROUP BY r.room_id, rm.name, r.start_time, r.customer_id, r.created_at,
		         r.status, r.price_cents, r.cancelled_at, m.title
		ORDER BY r.created_at DESC`

	rows, err := r.dbx.Query(ctx, q, customerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	var out []*queries.ReservationListItem
	for rows.Next() {
		var item queries.ReservationListItem
		if err := rows.Scan(
			&item.RoomID, &item.RoomName, &item.StartTime, &item.CustomerID, &item.CreatedAt,
			&item.Status, &item.PriceCents, &item.CancelledAt, &item.MovieTitle, &item.Seats,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation view", err)
		}
		out = append(out, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation views", err)
	}
	return out, nil
}
