package repository

import (
	"context"
	"time"

	"cinebox/internal/infra"
	"cinebox/internal/infra/db"

	"github.com/google/uuid"
)

// Movie is the minimal catalog record the engine needs: runtimes drive both
// overlap validation and the attendance window.
type Movie struct {
	ID         uuid.UUID
	Title      string
	RuntimeMin int
	CreatedAt  time.Time
}

type MovieRepository struct {
	dbx db.DBTX
}

func NewMovieRepository(dbx db.DBTX) *MovieRepository {
	return &MovieRepository{dbx: dbx}
}

func (r *MovieRepository) Create(ctx context.Context, m *Movie) error {
	const q = `INSERT INTO movies (id, title, runtime_min, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.dbx.Exec(ctx, q, m.ID, m.Title, m.RuntimeMin, m.CreatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to create movie", err)
	}
	return nil
}

func (r *MovieRepository) FindByID(ctx context.Context, id uuid.UUID) (*Movie, error) {
	const q = `SELECT id, title, runtime_min, created_at FROM movies WHERE id = $1`

	var m Movie
	err := r.dbx.QueryRow(ctx, q, id).Scan(&m.ID, &m.Title, &m.RuntimeMin, &m.CreatedAt)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("movie not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find movie", err)
	}
	return &m, nil
}

func (r *MovieRepository) List(ctx context.Context) ([]*Movie, error) {
	const q = `SELECT id, title, runtime_min, created_at FROM movies ORDER BY title`

	rows, err := r.dbx.Query(ctx, q)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list movies", err)
	}
	defer rows.Close()

	var out []*Movie
	for rows.Next() {
		var m Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.RuntimeMin, &m.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan movie", err)
		}
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate movies", err)
	}
	return out, nil
}

// RuntimeMap resolves runtimes for a set of movies in one round trip.
func (r *MovieRepository) RuntimeMap(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int, error) {
	const q = `SELECT id, runtime_min FROM movies WHERE id = ANY($1)`

	rows, err := r.dbx.Query(ctx, q, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load movie runtimes", err)
	}
	defer rows.Close()

	runtimes := make(map[uuid.UUID]int, len(ids))
	for rows.Next() {
		var (
			id      uuid.UUID
			runtime int
		)
		if err := rows.Scan(&id, &runtime); err != nil {
			return nil, infra.WrapRepoErr("failed to scan movie runtime", err)
		}
		runtimes[id] = runtime
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate movie runtimes", err)
	}
	return runtimes, nil
}
