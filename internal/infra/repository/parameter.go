package repository

import (
	"context"
	"time"

	"cinebox/internal/infra"
	"cinebox/internal/infra/db"
)

// Parameter IDs. These are business-tunable records, not configuration:
// operators change them at runtime and every engine decision reads them
// fresh, never a process-start snapshot.
const (
	ParamCleaningBufferMin   = 1
	ParamReservationHoldMin  = 2
	DefaultCleaningBufferMin = 30
	DefaultHoldMin           = 15
)

type ParameterRepository struct {
	dbx db.DBTX
}

func NewParameterRepository(dbx db.DBTX) *ParameterRepository {
	return &ParameterRepository{dbx: dbx}
}

func (r *ParameterRepository) Get(ctx context.Context, id int) (int, error) {
	const q = `SELECT value FROM parameters WHERE id = $1`

	var value int
	err := r.dbx.QueryRow(ctx, q, id).Scan(&value)
	if err != nil {
		if infra.IsNoRows(err) {
			return 0, infra.WrapRepoErr("parameter not found", err, infra.KindNotFound)
		}
		return 0, infra.WrapRepoErr("failed to read parameter", err)
	}
	return value, nil
}

// GetOrDefault falls back when the row is missing so an unseeded parameter
// never blocks an engine decision.
func (r *ParameterRepository) GetOrDefault(ctx context.Context, id, fallback int) (int, error) {
	value, err := r.Get(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return fallback, nil
		}
		return 0, err
	}
	return value, nil
}

func (r *ParameterRepository) Set(ctx context.Context, id, value int, now time.Time) error {
	const q = `
		INSERT INTO parameters (id, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	_, err := r.dbx.Exec(ctx, q, id, value, now)
	if err != nil {
		return infra.WrapRepoErr("failed to set parameter", err)
	}
	return nil
}
