package cycles

import (
	"context"
	"errors"
	"time"
)

type StoreAPI interface {
	ListCycles(ctx context.Context) ([]Cycle, error)
	GetCycle(ctx context.Context, cycleID string) (Cycle, error)
	CreateCycle(ctx context.Context, name string, startDate, reviewDate, endDate time.Time) (Cycle, error)
	CurrentCycle(ctx context.Context, now time.Time) (Cycle, error)
	LastClosedCycle(ctx context.Context, now time.Time) (Cycle, error)
	RecentCycles(ctx context.Context, now time.Time, limit int) ([]Cycle, error)
}

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context) ([]Cycle, error) {
	return s.store.ListCycles(ctx)
}

func (s *Service) Get(ctx context.Context, cycleID string) (Cycle, error) {
	return s.store.GetCycle(ctx, cycleID)
}

func (s *Service) Create(ctx context.Context, name string, startDate, reviewDate, endDate time.Time) (Cycle, error) {
	return s.store.CreateCycle(ctx, name, startDate, reviewDate, endDate)
}

func (s *Service) Current(ctx context.Context, now time.Time) (Cycle, error) {
	return s.store.CurrentCycle(ctx, now)
}

// CurrentOrLastClosed falls back to the most recently ended cycle when no
// cycle is open, and only fails when the store holds no cycles at all.
func (s *Service) CurrentOrLastClosed(ctx context.Context, now time.Time) (Cycle, error) {
	cycle, err := s.store.CurrentCycle(ctx, now)
	if err == nil {
		return cycle, nil
	}
	if !errors.Is(err, ErrNoCurrentCycle) {
		return Cycle{}, err
	}
	cycle, err = s.store.LastClosedCycle(ctx, now)
	if errors.Is(err, ErrCycleNotFound) {
		return Cycle{}, ErrNoCycles
	}
	if err != nil {
		return Cycle{}, err
	}
	return cycle, nil
}
