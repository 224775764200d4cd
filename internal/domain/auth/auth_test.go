package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"rpe/internal/domain/users"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: "user-1", Role: "ADMIN"}, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != "ADMIN" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: "user-1"}, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseToken("other-secret", token); err == nil {
		t.Fatal("expected a signature error")
	}
}

type fakeUserLookup struct {
	user users.User
	hash string
}

func (f *fakeUserLookup) UserByEmail(_ context.Context, email string) (users.User, string, error) {
	if email != f.user.Email {
		return users.User{}, "", users.ErrUserNotFound
	}
	return f.user, f.hash, nil
}

func TestLogin(t *testing.T) {
	hash, err := HashPassword("s3nha-forte")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc := NewService(&fakeUserLookup{
		user: users.User{ID: "user-1", Email: "ana@example.com", Role: "COLLABORATOR"},
		hash: hash,
	}, "secret")

	token, user, err := svc.Login(context.Background(), "ana@example.com", "s3nha-forte")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "user-1" {
		t.Fatalf("unexpected user: %+v", user)
	}
	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, _, err := svc.Login(context.Background(), "ana@example.com", "errada"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password must be ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "s3nha-forte"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email must be ErrInvalidCredentials, got %v", err)
	}
}
