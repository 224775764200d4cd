package goals

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"rpe/internal/domain/notifications"
	cryptoutil "rpe/internal/platform/crypto"
)

const TypeDevelopment = "DESENVOLVIMENTO"

// Notifier is the slice of the notifications service goals depend on.
type Notifier interface {
	Notify(ctx context.Context, userID, ntype, title, message, priority string) (notifications.Notification, error)
}

type Service struct {
	store          StoreAPI
	crypto         *cryptoutil.Service
	notifier       Notifier
	deadlineWindow time.Duration
	now            func() time.Time
}

// New wires the goals service. deadlineWindowDays controls how close an
// action's deadline must be before creating one triggers a
// deadline-approaching notification.
func New(store StoreAPI, crypto *cryptoutil.Service, notifier Notifier, deadlineWindowDays int) *Service {
	return &Service{
		store:          store,
		crypto:         crypto,
		notifier:       notifier,
		deadlineWindow: time.Duration(deadlineWindowDays) * 24 * time.Hour,
		now:            time.Now,
	}
}

func (s *Service) GoalsByUser(ctx context.Context, userID string) ([]Goal, error) {
	goals, err := s.store.GoalsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range goals {
		if goals[i], err = s.decryptGoal(goals[i]); err != nil {
			return nil, err
		}
	}
	if goals == nil {
		goals = []Goal{}
	}
	return goals, nil
}

func (s *Service) GetGoal(ctx context.Context, goalID string) (Goal, error) {
	goal, err := s.store.GetGoal(ctx, goalID)
	if err != nil {
		return Goal{}, err
	}
	return s.decryptGoal(goal)
}

func (s *Service) Create(ctx context.Context, userID, title, description, goalType string) (Goal, error) {
	if goalType == "" {
		goalType = TypeDevelopment
	}
	sealedTitle, err := s.crypto.EncryptField(title)
	if err != nil {
		return Goal{}, err
	}
	sealedDescription, err := s.crypto.EncryptField(description)
	if err != nil {
		return Goal{}, err
	}
	created, err := s.store.CreateGoal(ctx, Goal{
		UserID:      userID,
		Title:       sealedTitle,
		Description: sealedDescription,
		Type:        goalType,
	})
	if err != nil {
		return Goal{}, err
	}
	if s.notifier != nil {
		_, err := s.notifier.Notify(ctx, userID, notifications.TypeGoalCreated,
			"Goal created", fmt.Sprintf("Your goal %q was created.", title), notifications.PriorityNormal)
		if err != nil {
			slog.Warn("goal created notification failed", "goalId", created.ID, "err", err)
		}
	}
	return s.decryptGoal(created)
}

func (s *Service) Delete(ctx context.Context, goalID string) error {
	return s.store.DeleteGoal(ctx, goalID)
}

// AddAction creates an action under the goal. When the deadline falls inside
// the configured window a deadline-approaching notification goes out,
// best-effort: a notification failure never fails the create.
func (s *Service) AddAction(ctx context.Context, goalID, description string, deadline time.Time) (Action, error) {
	goal, err := s.store.GetGoal(ctx, goalID)
	if err != nil {
		return Action{}, err
	}
	sealed, err := s.crypto.EncryptField(description)
	if err != nil {
		return Action{}, err
	}
	created, err := s.store.CreateAction(ctx, Action{
		GoalID:      goalID,
		Description: sealed,
		Deadline:    deadline,
	})
	if err != nil {
		return Action{}, err
	}

	if s.notifier != nil && s.deadlineApproaching(deadline) {
		title, err := s.crypto.DecryptField(goal.Title)
		if err != nil {
			title = ""
		}
		_, err = s.notifier.Notify(ctx, goal.UserID, notifications.TypeGoalDeadlineApproaching,
			"Goal deadline approaching",
			fmt.Sprintf("An action on goal %q is due %s.", title, deadline.Format("2006-01-02")),
			notifications.PriorityHigh)
		if err != nil {
			slog.Warn("deadline notification failed", "goalId", goalID, "err", err)
		}
	}

	created.Description, err = s.crypto.DecryptField(created.Description)
	if err != nil {
		return Action{}, err
	}
	return created, nil
}

func (s *Service) CompleteAction(ctx context.Context, actionID string, completed bool) (Action, error) {
	action, err := s.store.SetActionCompleted(ctx, actionID, completed)
	if err != nil {
		return Action{}, err
	}
	action.Description, err = s.crypto.DecryptField(action.Description)
	if err != nil {
		return Action{}, err
	}
	return action, nil
}

func (s *Service) DeleteAction(ctx context.Context, actionID string) error {
	return s.store.DeleteAction(ctx, actionID)
}

func (s *Service) deadlineApproaching(deadline time.Time) bool {
	until := deadline.Sub(s.now())
	return until >= 0 && until <= s.deadlineWindow
}

func (s *Service) decryptGoal(goal Goal) (Goal, error) {
	var err error
	if goal.Title, err = s.crypto.DecryptField(goal.Title); err != nil {
		return Goal{}, err
	}
	if goal.Description, err = s.crypto.DecryptField(goal.Description); err != nil {
		return Goal{}, err
	}
	for i := range goal.Actions {
		if goal.Actions[i].Description, err = s.crypto.DecryptField(goal.Actions[i].Description); err != nil {
			return Goal{}, err
		}
	}
	if goal.Actions == nil {
		goal.Actions = []Action{}
	}
	return goal, nil
}
