package readstore

import (
	"context"
	"time"

	"cinebox/internal/infra"
	"cinebox/internal/infra/db"
	"cinebox/internal/usecase/queries"
)

type ScreeningReadStore struct {
	dbx db.DBTX
}

func NewScreeningReadStore(dbx db.DBTX) *ScreeningReadStore {
	return &ScreeningReadStore{dbx: dbx}
}

// ListUpcoming returns screenings that have not started yet. Customers only
// see published ones; staff tooling passes includeHidden to see the rest.
func (r *ScreeningReadStore) ListUpcoming(ctx context.Context, now time.Time, includeHidden bool) ([]*queries.ScreeningView, error) {
	const q = `
		SELECT sc.room_id, rm.name, sc.start_time, sc.movie_id, m.title, m.runtime_min, sc.visibility
		FROM screenings sc
		JOIN rooms rm ON rm.id = sc.room_id
		JOIN movies m ON m.id = sc.movie_id
		WHERE sc.start_time > $1
		  AND (sc.visibility = 'public' OR $2)
		ORDER BY sc.start_time, rm.name`

	rows, err := r.dbx.Query(ctx, q, now, includeHidden)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list screenings", err)
	}
	defer rows.Close()

	var out []*queries.ScreeningView
	for rows.Next() {
		var v queries.ScreeningView
		if err := rows.Scan(&v.RoomID, &v.RoomName, &v.StartTime, &v.MovieID, &v.MovieTitle, &v.RuntimeMin, &v.Visibility); err != nil {
			return nil, infra.WrapRepoErr("failed to scan screening view", err)
		}
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate screening views", err)
	}
	return out, nil
}
