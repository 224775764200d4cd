package goals

import "context"

type StoreAPI interface {
	GoalsByUser(ctx context.Context, userID string) ([]Goal, error)
	GetGoal(ctx context.Context, goalID string) (Goal, error)
	CreateGoal(ctx context.Context, goal Goal) (Goal, error)
	DeleteGoal(ctx context.Context, goalID string) error
	CreateAction(ctx context.Context, action Action) (Action, error)
	SetActionCompleted(ctx context.Context, actionID string, completed bool) (Action, error)
	DeleteAction(ctx context.Context, actionID string) error
}
