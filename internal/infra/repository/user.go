package repository

import (
	"context"
	"time"

	"cinebox/internal/domain/user"
	"cinebox/internal/infra"
	"cinebox/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct {
	dbx db.DBTX
}

func NewUserRepository(dbx db.DBTX) *UserRepository {
	return &UserRepository{dbx: dbx}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	const q = `
		INSERT INTO users (id, email, display_name, role, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.dbx.Exec(ctx, q,
		u.ID(), u.Email(), u.DisplayName(), u.Role().String(), u.PasswordHash(), u.CreatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	const q = `
		SELECT id, email, display_name, role, password_hash, created_at
		FROM users WHERE id = $1`

	return r.scanUser(ctx, q, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	const q = `
		SELECT id, email, display_name, role, password_hash, created_at
		FROM users WHERE email = $1`

	return r.scanUser(ctx, q, email)
}

func (r *UserRepository) scanUser(ctx context.Context, q string, arg any) (*user.User, error) {
	var (
		id           uuid.UUID
		email        string
		displayName  string
		role         string
		passwordHash string
		createdAt    time.Time
	)

	err := r.dbx.QueryRow(ctx, q, arg).Scan(&id, &email, &displayName, &role, &passwordHash, &createdAt)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}

	return user.ReconstructUser(id, email, displayName, user.Role(role), passwordHash, createdAt), nil
}
