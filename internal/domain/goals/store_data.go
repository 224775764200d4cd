package goals

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

func (s *Store) GoalsByUser(ctx context.Context, userID string) ([]Goal, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, user_id, title, COALESCE(description, ''), type, created_at
    FROM goals
    WHERE user_id = $1
    ORDER BY created_at DESC
  `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Goal
	for rows.Next() {
		var g Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Type, &g.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		actions, err := s.actionsByGoal(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Actions = actions
	}
	return out, nil
}

func (s *Store) GetGoal(ctx context.Context, goalID string) (Goal, error) {
	var g Goal
	err := s.DB.QueryRow(ctx, `
    SELECT id, user_id, title, COALESCE(description, ''), type, created_at
    FROM goals
    WHERE id = $1
  `, goalID).Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Type, &g.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Goal{}, ErrGoalNotFound
	}
	if err != nil {
		return Goal{}, err
	}
	g.Actions, err = s.actionsByGoal(ctx, g.ID)
	if err != nil {
		return Goal{}, err
	}
	return g, nil
}

func (s *Store) CreateGoal(ctx context.Context, goal Goal) (Goal, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO goals (user_id, title, description, type)
    VALUES ($1,$2,$3,$4)
    RETURNING id, created_at
  `, goal.UserID, goal.Title, goal.Description, goal.Type).Scan(&goal.ID, &goal.CreatedAt)
	if err != nil {
		return Goal{}, err
	}
	goal.Actions = []Action{}
	return goal, nil
}

func (s *Store) DeleteGoal(ctx context.Context, goalID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM goals WHERE id = $1", goalID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (s *Store) CreateAction(ctx context.Context, action Action) (Action, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO goal_actions (goal_id, description, deadline)
    VALUES ($1,$2,$3)
    RETURNING id, completed, created_at
  `, action.GoalID, action.Description, action.Deadline).Scan(&action.ID, &action.Completed, &action.CreatedAt)
	if err != nil {
		return Action{}, err
	}
	return action, nil
}

func (s *Store) SetActionCompleted(ctx context.Context, actionID string, completed bool) (Action, error) {
	var a Action
	err := s.DB.QueryRow(ctx, `
    UPDATE goal_actions SET completed = $2
    WHERE id = $1
    RETURNING id, goal_id, description, deadline, completed, created_at
  `, actionID, completed).Scan(&a.ID, &a.GoalID, &a.Description, &a.Deadline, &a.Completed, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Action{}, ErrActionNotFound
	}
	if err != nil {
		return Action{}, err
	}
	return a, nil
}

func (s *Store) DeleteAction(ctx context.Context, actionID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM goal_actions WHERE id = $1", actionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrActionNotFound
	}
	return nil
}

func (s *Store) actionsByGoal(ctx context.Context, goalID string) ([]Action, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, goal_id, description, deadline, completed, created_at
    FROM goal_actions
    WHERE goal_id = $1
    ORDER BY deadline ASC
  `, goalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Action{}
	for rows.Next() {
		var a Action
		if err := rows.Scan(&a.ID, &a.GoalID, &a.Description, &a.Deadline, &a.Completed, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
