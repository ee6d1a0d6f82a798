package user

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrEmptyDisplayName = errors.New("display name must not be empty")
	ErrInvalidRole      = errors.New("invalid role")
)

type User struct {
	id           uuid.UUID
	email        string
	displayName  string
	role         Role
	passwordHash string
	createdAt    time.Time
}

func NewUser(email, displayName string, role Role, passwordHash string, now time.Time) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, ErrEmptyDisplayName
	}

	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	return &User{
		id:           uuid.New(),
		email:        email,
		displayName:  displayName,
		role:         role,
		passwordHash: passwordHash,
		createdAt:    now,
	}, nil
}

func ReconstructUser(id uuid.UUID, email, displayName string, role Role, passwordHash string, createdAt time.Time) *User {
	return &User{
		id:           id,
		email:        email,
		displayName:  displayName,
		role:         role,
		passwordHash: passwordHash,
		createdAt:    createdAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Email() string        { return u.email }
func (u *User) DisplayName() string  { return u.displayName }
func (u *User) Role() Role           { return u.role }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) CreatedAt() time.Time { return u.createdAt }
