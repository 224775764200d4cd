package evaluations

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

func (s *Store) GetEvaluation(ctx context.Context, evaluationID string) (Evaluation, error) {
	var ev Evaluation
	err := s.DB.QueryRow(ctx, `
    SELECT id, type, cycle_id, evaluator_id, evaluated_id, completed, created_at
    FROM evaluations
    WHERE id = $1
  `, evaluationID).Scan(&ev.ID, &ev.Type, &ev.CycleID, &ev.EvaluatorID, &ev.EvaluatedID, &ev.Completed, &ev.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Evaluation{}, ErrEvaluationNotFound
	}
	if err != nil {
		return Evaluation{}, err
	}
	return ev, nil
}

// EvaluatedPositionID resolves the position of the evaluated user of an
// evaluation. Returns "" when the user has no position.
func (s *Store) EvaluatedPositionID(ctx context.Context, evaluationID string) (string, error) {
	var positionID *string
	err := s.DB.QueryRow(ctx, `
    SELECT u.position_id
    FROM evaluations e
    JOIN users u ON u.id = e.evaluated_id
    WHERE e.id = $1
  `, evaluationID).Scan(&positionID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrEvaluationNotFound
	}
	if err != nil {
		return "", err
	}
	if positionID == nil {
		return "", nil
	}
	return *positionID, nil
}

func (s *Store) ListReceived(ctx context.Context, userID string) ([]Evaluation, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, type, cycle_id, evaluator_id, evaluated_id, completed, created_at
    FROM evaluations
    WHERE evaluated_id = $1
    ORDER BY created_at DESC
  `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Evaluation
	for rows.Next() {
		var ev Evaluation
		if err := rows.Scan(&ev.ID, &ev.Type, &ev.CycleID, &ev.EvaluatorID, &ev.EvaluatedID, &ev.Completed, &ev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (s *Store) ListAnswers(ctx context.Context, evaluationID string) ([]Answer, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, evaluation_id, criterion_id, score, justification
    FROM evaluation_answers
    WHERE evaluation_id = $1
    ORDER BY created_at
  `, evaluationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Answer
	for rows.Next() {
		var a Answer
		if err := rows.Scan(&a.ID, &a.EvaluationID, &a.CriterionID, &a.Score, &a.Justification); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
