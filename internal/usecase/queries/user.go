package queries

import (
	"context"

	"cinebox/internal/domain/user"
	"cinebox/internal/infra"
	"cinebox/internal/pkg/errs"

	"github.com/google/uuid"
)

type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type UserQueries interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error)
}

type userQueriesImpl struct {
	users UserFinder
}

func NewUserQueries(users UserFinder) UserQueries {
	return &userQueriesImpl{users: users}
}

func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	account, err := q.users.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrCustomerNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &UserView{
		ID:    account.ID(),
		Email: account.Email(),
		Name:  account.DisplayName(),
		Role:  account.Role().String(),
	}, nil
}
