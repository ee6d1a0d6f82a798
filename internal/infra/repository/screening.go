package repository

import (
	"context"
	"time"

	"cinebox/internal/domain/screening"
	"cinebox/internal/infra"
	"cinebox/internal/infra/db"

	"github.com/google/uuid"
)

type ScreeningRepository struct {
	dbx db.DBTX
}

func NewScreeningRepository(dbx db.DBTX) *ScreeningRepository {
	return &ScreeningRepository{dbx: dbx}
}

func (r *ScreeningRepository) Create(ctx context.Context, s *screening.Screening) error {
	const q = `
		INSERT INTO screenings (room_id, start_time, movie_id, visibility)
		VALUES ($1, $2, $3, $4)`

	_, err := r.dbx.Exec(ctx, q, s.RoomID(), s.StartTime(), s.MovieID(), string(s.Visibility()))
	if err != nil {
		return infra.WrapRepoErr("failed to create screening", err)
	}
	return nil
}

// Update moves a screening to a new slot and/or movie, addressed by its old
// natural key.
func (r *ScreeningRepository) Update(ctx context.Context, oldRoomID uuid.UUID, oldStart time.Time, s *screening.Screening) error {
	const q = `
		UPDATE screenings
		SET room_id = $3, start_time = $4, movie_id = $5
		WHERE room_id = $1 AND start_time = $2`

	tag, err := r.dbx.Exec(ctx, q, oldRoomID, oldStart, s.RoomID(), s.StartTime(), s.MovieID())
	if err != nil {
		return infra.WrapRepoErr("failed to update screening", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("screening not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ScreeningRepository) UpdateVisibility(ctx context.Context, roomID uuid.UUID, start time.Time, v screening.Visibility) error {
	const q = `UPDATE screenings SET visibility = $3 WHERE room_id = $1 AND start_time = $2`

	tag, err := r.dbx.Exec(ctx, q, roomID, start, string(v))
	if err != nil {
		return infra.WrapRepoErr("failed to update screening visibility", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("screening not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ScreeningRepository) FindByKey(ctx context.Context, roomID uuid.UUID, start time.Time) (*screening.Screening, error) {
	const q = `
		SELECT room_id, start_time, movie_id, visibility
		FROM screenings WHERE room_id = $1 AND start_time = $2`

	var (
		gotRoom  uuid.UUID
		gotStart time.Time
		movieID  uuid.UUID
		vis      string
	)
	err := r.dbx.QueryRow(ctx, q, roomID, start).Scan(&gotRoom, &gotStart, &movieID, &vis)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("screening not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find screening", err)
	}

	return screening.Reconstruct(gotRoom, gotStart, movieID, screening.Visibility(vis)), nil
}

// ListByRoom returns every screening scheduled in a room, regardless of
// visibility. Overlap validation needs the full set.
func (r *ScreeningRepository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*screening.Screening, error) {
	const q = `
		SELECT room_id, start_time, movie_id, visibility
		FROM screenings WHERE room_id = $1 ORDER BY start_time`

	rows, err := r.dbx.Query(ctx, q, roomID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list screenings", err)
	}
	defer rows.Close()

	var out []*screening.Screening
	for rows.Next() {
		var (
			gotRoom  uuid.UUID
			gotStart time.Time
			movieID  uuid.UUID
			vis      string
		)
		if err := rows.Scan(&gotRoom, &gotStart, &movieID, &vis); err != nil {
			return nil, infra.WrapRepoErr("failed to scan screening", err)
		}
		out = append(out, screening.Reconstruct(gotRoom, gotStart, movieID, screening.Visibility(vis)))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate screenings", err)
	}
	return out, nil
}

// DeactivateEnded flips screenings whose end time has passed to inactive.
// Owned by the maintenance sweep.
func (r *ScreeningRepository) DeactivateEnded(ctx context.Context, now time.Time) (int64, error) {
	const q = `
		UPDATE screenings s
		SET visibility = 'inactive'
		FROM movies m
		WHERE m.id = s.movie_id
		  AND s.visibility <> 'inactive'
		  AND s.start_time + make_interval(mins => m.runtime_min) < $1`

	tag, err := r.dbx.Exec(ctx, q, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to deactivate ended screenings", err)
	}
	return tag.RowsAffected(), nil
}
