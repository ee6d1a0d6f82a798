package readstore

import (
	"context"
	"time"

	"cinebox/internal/infra"
	"cinebox/internal/infra/db"
	"cinebox/internal/usecase/queries"

	"github.com/google/uuid"
)

type SeatMapReadStore struct {
	dbx db.DBTX
}

func NewSeatMapReadStore(dbx db.DBTX) *SeatMapReadStore {
	return &SeatMapReadStore{dbx: dbx}
}

// FindByScreening joins the room's static map against the screening's seat
// assignments. A seat is available exactly when no assignment row exists —
// there is no availability flag to go stale.
func (r *SeatMapReadStore) FindByScreening(ctx context.Context, roomID uuid.UUID, start time.Time) ([]*queries.SeatView, error) {
	const q = `
		SELECT s.seat_row, s.seat_number, t.name, t.price_cents,
		       (a.seat_row IS NOT NULL) AS held
		FROM seats s
		JOIN seat_tariffs t ON t.id = s.tariff_id
		LEFT JOIN seat_assignments a
		  ON a.room_id = s.room_id
		 AND a.seat_row = s.seat_row
		 AND a.seat_number = s.seat_number
		 AND a.start_time = $2
		WHERE s.room_id = $1
		ORDER BY s.seat_row, s.seat_number`

	rows, err := r.dbx.Query(ctx, q, roomID, start)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load seat map", err)
	}
	defer rows.Close()

	var out []*queries.SeatView
	for rows.Next() {
		var v queries.SeatView
		if err := rows.Scan(&v.Row, &v.Number, &v.Tariff, &v.PriceCents, &v.Held); err != nil {
			return nil, infra.WrapRepoErr("failed to scan seat view", err)
		}
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate seat views", err)
	}
	return out, nil
}
