package users

import (
	"context"

	cryptoutil "rpe/internal/platform/crypto"
)

type StoreAPI interface {
	GetUser(ctx context.Context, userID string) (User, error)
	UserByEmail(ctx context.Context, email string) (User, string, error)
	ListUsers(ctx context.Context) ([]User, error)
	DirectReports(ctx context.Context, managerID string) ([]User, error)
	PositionTrack(ctx context.Context, userID string) (string, error)
}

type Service struct {
	store  StoreAPI
	crypto *cryptoutil.Service
}

func NewService(store StoreAPI, crypto *cryptoutil.Service) *Service {
	return &Service{store: store, crypto: crypto}
}

func (s *Service) Get(ctx context.Context, userID string) (User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return User{}, err
	}
	return s.decrypt(user)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	list, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i], err = s.decrypt(list[i]); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (s *Service) DirectReports(ctx context.Context, managerID string) ([]User, error) {
	if _, err := s.store.GetUser(ctx, managerID); err != nil {
		return nil, err
	}
	list, err := s.store.DirectReports(ctx, managerID)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i], err = s.decrypt(list[i]); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (s *Service) Track(ctx context.Context, userID string) (string, error) {
	return s.store.PositionTrack(ctx, userID)
}

func (s *Service) decrypt(user User) (User, error) {
	name, err := s.crypto.DecryptField(user.Name)
	if err != nil {
		return User{}, err
	}
	user.Name = name
	return user, nil
}
