package scores

import (
	"context"
	"time"

	"rpe/internal/domain/cycles"
	"rpe/internal/domain/users"
)

type StoreAPI interface {
	ScoresByUser(ctx context.Context, userID string) ([]ScorePerCycle, error)
	ScoreByUserAndCycle(ctx context.Context, userID, cycleID string) (ScorePerCycle, error)
	ScoresForCycle(ctx context.Context, cycleID string) ([]ScorePerCycle, error)
	CreateScore(ctx context.Context, score ScorePerCycle) (ScorePerCycle, error)
	UpdateScore(ctx context.Context, scoreID string, patch ScorePatch) (ScorePerCycle, error)
	CompletedSelfEvaluations(ctx context.Context, userID string) ([]SelfEvaluationRow, error)
	CompletedSelfEvaluationsInCycle(ctx context.Context, userID, cycleID string) ([]SelfEvaluationRow, error)
	AssignedCriteria(ctx context.Context, positionID, excludeCategory string) ([]AssignedCriterion, error)
}

// CycleSource is the slice of the cycles store the aggregation engine reads.
type CycleSource interface {
	ListCycles(ctx context.Context) ([]cycles.Cycle, error)
	CurrentCycle(ctx context.Context, now time.Time) (cycles.Cycle, error)
	LastClosedCycle(ctx context.Context, now time.Time) (cycles.Cycle, error)
	RecentCycles(ctx context.Context, now time.Time, limit int) ([]cycles.Cycle, error)
}

// UserSource is the slice of the users store the aggregation engine reads.
type UserSource interface {
	GetUser(ctx context.Context, userID string) (users.User, error)
	ListUsers(ctx context.Context) ([]users.User, error)
	DirectReports(ctx context.Context, managerID string) ([]users.User, error)
}
