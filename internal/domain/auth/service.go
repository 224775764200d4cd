package auth

import (
	"context"
	"errors"
	"time"

	"rpe/internal/domain/users"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const tokenTTL = 8 * time.Hour

// UserLookup is the slice of the users store login needs.
type UserLookup interface {
	UserByEmail(ctx context.Context, email string) (users.User, string, error)
}

type Service struct {
	store  UserLookup
	secret string
}

func NewService(store UserLookup, secret string) *Service {
	return &Service{store: store, secret: secret}
}

// Login verifies the password and issues a signed token. Unknown email and
// wrong password both come back as ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (string, users.User, error) {
	user, hash, err := s.store.UserByEmail(ctx, email)
	if errors.Is(err, users.ErrUserNotFound) {
		return "", users.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", users.User{}, err
	}
	if err := CheckPassword(hash, password); err != nil {
		return "", users.User{}, ErrInvalidCredentials
	}
	token, err := GenerateToken(s.secret, Claims{UserID: user.ID, Role: user.Role}, tokenTTL)
	if err != nil {
		return "", users.User{}, err
	}
	return token, user, nil
}
