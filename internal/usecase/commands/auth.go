package commands

import (
	"context"

	"cinebox/internal/domain/user"
	"cinebox/internal/infra"
	"cinebox/internal/pkg/clock"
	"cinebox/internal/pkg/errs"
	"cinebox/internal/pkg/jwt"
	"cinebox/internal/pkg/password"
	"cinebox/internal/usecase/shared"
)

type LoginResult struct {
	Token string
	User  *user.User
}

type AuthCommands interface {
	Register(ctx context.Context, email, displayName, plainPassword string) (*user.User, error)
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow   shared.UnitOfWork
	jwt   *jwt.Service
	clock clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{uow: uow, jwt: jwtService, clock: clk}
}

// Register creates a customer account. Staff and admin accounts are
// provisioned out of band.
func (a *authCommandsImpl) Register(ctx context.Context, email, displayName, plainPassword string) (*user.User, error) {
	hash, err := password.HashPassword(plainPassword)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	account, err := user.NewUser(email, displayName, user.RoleCustomer, hash, a.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Users().Create(ctx, account); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrEmailTaken)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (a *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	var result *LoginResult
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		account, err := tx.Users().FindByEmail(ctx, email)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				// Same rejection as a wrong password: login never reveals
				// whether the address exists.
				return errs.Mark(err, errs.ErrInvalidCredentials)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := password.ComparePassword(account.PasswordHash(), plainPassword); err != nil {
			return errs.Mark(err, errs.ErrInvalidCredentials)
		}

		token, err := a.jwt.GenerateToken(account.ID(), account.Role())
		if err != nil {
			return errs.Wrap(err, "failed to generate token")
		}
		result = &LoginResult{Token: token, User: account}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
