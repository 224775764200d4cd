package criteria

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"rpe/internal/domain/evaluations"
)

func (s *Store) ListCriteria(ctx context.Context) ([]Criterion, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, title, description, category, created_at
    FROM evaluation_criteria
    ORDER BY created_at
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Criterion
	for rows.Next() {
		var c Criterion
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Category, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) GetCriterion(ctx context.Context, criterionID string) (Criterion, error) {
	var c Criterion
	err := s.DB.QueryRow(ctx, `
    SELECT id, title, description, category, created_at
    FROM evaluation_criteria
    WHERE id = $1
  `, criterionID).Scan(&c.ID, &c.Title, &c.Description, &c.Category, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Criterion{}, ErrCriterionNotFound
	}
	if err != nil {
		return Criterion{}, err
	}
	return c, nil
}

// CriterionByTitle matches on the trimmed, case-sensitive title. When several
// rows share a title the oldest wins, mirroring the historical lookup.
func (s *Store) CriterionByTitle(ctx context.Context, title string) (Criterion, error) {
	var c Criterion
	err := s.DB.QueryRow(ctx, `
    SELECT id, title, description, category, created_at
    FROM evaluation_criteria
    WHERE title = $1
    ORDER BY created_at
    LIMIT 1
  `, strings.TrimSpace(title)).Scan(&c.ID, &c.Title, &c.Description, &c.Category, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Criterion{}, ErrCriterionNotFound
	}
	if err != nil {
		return Criterion{}, err
	}
	return c, nil
}

func (s *Store) CreateCriterion(ctx context.Context, title, description, category string) (Criterion, error) {
	var c Criterion
	err := s.DB.QueryRow(ctx, `
    INSERT INTO evaluation_criteria (title, description, category)
    VALUES ($1,$2,$3)
    RETURNING id, title, description, category, created_at
  `, title, description, category).Scan(&c.ID, &c.Title, &c.Description, &c.Category, &c.CreatedAt)
	if err != nil {
		return Criterion{}, err
	}
	return c, nil
}

func (s *Store) DeleteCriterion(ctx context.Context, criterionID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM evaluation_criteria WHERE id = $1", criterionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCriterionNotFound
	}
	return nil
}

func (s *Store) ListAssignments(ctx context.Context, positionID string) ([]Assignment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, criterion_id, position_id, is_required, created_at
    FROM criteria_assignments
    WHERE position_id = $1
    ORDER BY created_at
  `, positionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Assignment
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.ID, &a.CriterionID, &a.PositionID, &a.IsRequired, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) AssignmentExists(ctx context.Context, criterionID, positionID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM criteria_assignments
    WHERE criterion_id = $1 AND position_id = $2
  `, criterionID, positionID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) CreateAssignment(ctx context.Context, criterionID, positionID string, isRequired bool) (Assignment, error) {
	var a Assignment
	err := s.DB.QueryRow(ctx, `
    INSERT INTO criteria_assignments (criterion_id, position_id, is_required)
    VALUES ($1,$2,$3)
    RETURNING id, criterion_id, position_id, is_required, created_at
  `, criterionID, positionID, isRequired).Scan(&a.ID, &a.CriterionID, &a.PositionID, &a.IsRequired, &a.CreatedAt)
	if err != nil {
		return Assignment{}, err
	}
	return a, nil
}

func (s *Store) DeleteAssignment(ctx context.Context, assignmentID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM criteria_assignments WHERE id = $1", assignmentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

func (s *Store) AnswersByCriterion(ctx context.Context, criterionID string) ([]evaluations.Answer, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, evaluation_id, criterion_id, score, justification
    FROM evaluation_answers
    WHERE criterion_id = $1
    ORDER BY created_at
  `, criterionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []evaluations.Answer
	for rows.Next() {
		var a evaluations.Answer
		if err := rows.Scan(&a.ID, &a.EvaluationID, &a.CriterionID, &a.Score, &a.Justification); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) AnswerExists(ctx context.Context, evaluationID, criterionID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM evaluation_answers
    WHERE evaluation_id = $1 AND criterion_id = $2
  `, evaluationID, criterionID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) EvaluatedPositionID(ctx context.Context, evaluationID string) (string, error) {
	var positionID *string
	err := s.DB.QueryRow(ctx, `
    SELECT u.position_id
    FROM evaluations e
    JOIN users u ON u.id = e.evaluated_id
    WHERE e.id = $1
  `, evaluationID).Scan(&positionID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if positionID == nil {
		return "", nil
	}
	return *positionID, nil
}

// MigrateAnswer re-points one answer at its successor criterion. The new
// answer is created, the assignment added when requested, and only then the
// old answer deleted, all inside one transaction, so a crash can never leave
// the answer attached to neither criterion.
func (s *Store) MigrateAnswer(ctx context.Context, old evaluations.Answer, newCriterionID, positionID string, createAssignment bool) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
    INSERT INTO evaluation_answers (evaluation_id, criterion_id, score, justification)
    VALUES ($1,$2,$3,$4)
  `, old.EvaluationID, newCriterionID, old.Score, old.Justification); err != nil {
		return err
	}

	if createAssignment && positionID != "" {
		if _, err := tx.Exec(ctx, `
      INSERT INTO criteria_assignments (criterion_id, position_id, is_required)
      VALUES ($1,$2,false)
      ON CONFLICT (criterion_id, position_id) DO NOTHING
    `, newCriterionID, positionID); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, "DELETE FROM evaluation_answers WHERE id = $1", old.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
