package scores

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"rpe/internal/domain/evaluations"
)

const scoreColumns = "id, user_id, cycle_id, self_score, leader_score, final_score, feedback, created_at"

func scanScore(row pgx.Row) (ScorePerCycle, error) {
	var sc ScorePerCycle
	err := row.Scan(&sc.ID, &sc.UserID, &sc.CycleID, &sc.SelfScore, &sc.LeaderScore, &sc.FinalScore, &sc.Feedback, &sc.CreatedAt)
	if err != nil {
		return ScorePerCycle{}, err
	}
	sc.PeerScores = []float64{}
	return sc, nil
}

func (s *Store) ScoresByUser(ctx context.Context, userID string) ([]ScorePerCycle, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+scoreColumns+" FROM score_per_cycle WHERE user_id = $1 ORDER BY created_at", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ScorePerCycle
	for rows.Next() {
		sc, err := scanScore(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return s.attachPeerScores(ctx, out)
}

func (s *Store) ScoreByUserAndCycle(ctx context.Context, userID, cycleID string) (ScorePerCycle, error) {
	sc, err := scanScore(s.DB.QueryRow(ctx,
		"SELECT "+scoreColumns+" FROM score_per_cycle WHERE user_id = $1 AND cycle_id = $2", userID, cycleID))
	if errors.Is(err, pgx.ErrNoRows) {
		return ScorePerCycle{}, ErrScoreNotFound
	}
	if err != nil {
		return ScorePerCycle{}, err
	}
	withPeers, err := s.attachPeerScores(ctx, []ScorePerCycle{sc})
	if err != nil {
		return ScorePerCycle{}, err
	}
	return withPeers[0], nil
}

func (s *Store) ScoresForCycle(ctx context.Context, cycleID string) ([]ScorePerCycle, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+scoreColumns+" FROM score_per_cycle WHERE cycle_id = $1 ORDER BY created_at", cycleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ScorePerCycle
	for rows.Next() {
		sc, err := scanScore(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return s.attachPeerScores(ctx, out)
}

// CreateScore inserts the score row and its ordered peer-score children in
// one transaction so the child sequence can never exist without its parent.
func (s *Store) CreateScore(ctx context.Context, score ScorePerCycle) (ScorePerCycle, error) {
	var exists int
	if err := s.DB.QueryRow(ctx,
		"SELECT COUNT(1) FROM score_per_cycle WHERE user_id = $1 AND cycle_id = $2",
		score.UserID, score.CycleID).Scan(&exists); err != nil {
		return ScorePerCycle{}, err
	}
	if exists > 0 {
		return ScorePerCycle{}, ErrDuplicateScore
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return ScorePerCycle{}, err
	}
	defer tx.Rollback(ctx)

	var created ScorePerCycle
	if err := tx.QueryRow(ctx, `
    INSERT INTO score_per_cycle (user_id, cycle_id, self_score, leader_score, final_score, feedback)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING `+scoreColumns+`
  `, score.UserID, score.CycleID, score.SelfScore, score.LeaderScore, score.FinalScore, score.Feedback).
		Scan(&created.ID, &created.UserID, &created.CycleID, &created.SelfScore, &created.LeaderScore, &created.FinalScore, &created.Feedback, &created.CreatedAt); err != nil {
		return ScorePerCycle{}, err
	}

	for _, value := range score.PeerScores {
		if _, err := tx.Exec(ctx,
			"INSERT INTO peer_scores (score_per_cycle_id, value) VALUES ($1,$2)", created.ID, value); err != nil {
			return ScorePerCycle{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return ScorePerCycle{}, err
	}
	created.PeerScores = append([]float64{}, score.PeerScores...)
	return created, nil
}

func (s *Store) UpdateScore(ctx context.Context, scoreID string, patch ScorePatch) (ScorePerCycle, error) {
	sc, err := scanScore(s.DB.QueryRow(ctx, `
    UPDATE score_per_cycle
    SET self_score = COALESCE($1, self_score),
        leader_score = COALESCE($2, leader_score),
        final_score = COALESCE($3, final_score),
        feedback = COALESCE($4, feedback)
    WHERE id = $5
    RETURNING `+scoreColumns+`
  `, patch.SelfScore, patch.LeaderScore, patch.FinalScore, patch.Feedback, scoreID))
	if errors.Is(err, pgx.ErrNoRows) {
		return ScorePerCycle{}, ErrScoreNotFound
	}
	if err != nil {
		return ScorePerCycle{}, err
	}
	withPeers, err := s.attachPeerScores(ctx, []ScorePerCycle{sc})
	if err != nil {
		return ScorePerCycle{}, err
	}
	return withPeers[0], nil
}

func (s *Store) attachPeerScores(ctx context.Context, scoreRows []ScorePerCycle) ([]ScorePerCycle, error) {
	if len(scoreRows) == 0 {
		return scoreRows, nil
	}
	ids := make([]string, 0, len(scoreRows))
	for _, sc := range scoreRows {
		ids = append(ids, sc.ID)
	}
	rows, err := s.DB.Query(ctx, `
    SELECT score_per_cycle_id, value
    FROM peer_scores
    WHERE score_per_cycle_id = ANY($1)
    ORDER BY created_at, id
  `, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byParent := make(map[string][]float64, len(scoreRows))
	for rows.Next() {
		var parentID string
		var value float64
		if err := rows.Scan(&parentID, &value); err != nil {
			return nil, err
		}
		byParent[parentID] = append(byParent[parentID], value)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range scoreRows {
		if values, ok := byParent[scoreRows[i].ID]; ok {
			scoreRows[i].PeerScores = values
		}
	}
	return scoreRows, nil
}

func (s *Store) CompletedSelfEvaluations(ctx context.Context, userID string) ([]SelfEvaluationRow, error) {
	return s.selfEvaluations(ctx, userID, "")
}

func (s *Store) CompletedSelfEvaluationsInCycle(ctx context.Context, userID, cycleID string) ([]SelfEvaluationRow, error) {
	return s.selfEvaluations(ctx, userID, cycleID)
}

func (s *Store) selfEvaluations(ctx context.Context, userID, cycleID string) ([]SelfEvaluationRow, error) {
	query := `
    SELECT e.id, e.type, e.cycle_id, e.evaluator_id, e.evaluated_id, e.completed, e.created_at,
           c.id, c.name, c.start_date, c.review_date, c.end_date,
           u.name, COALESCE(p.name, '')
    FROM evaluations e
    JOIN evaluation_cycles c ON c.id = e.cycle_id
    JOIN users u ON u.id = e.evaluated_id
    LEFT JOIN positions p ON p.id = u.position_id
    WHERE e.evaluated_id = $1 AND e.type = $2 AND e.completed
  `
	args := []any{userID, evaluations.TypeSelf}
	if cycleID != "" {
		query += " AND e.cycle_id = $3"
		args = append(args, cycleID)
	}
	query += " ORDER BY c.end_date DESC, e.created_at"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SelfEvaluationRow
	for rows.Next() {
		var r SelfEvaluationRow
		if err := rows.Scan(
			&r.Evaluation.ID, &r.Evaluation.Type, &r.Evaluation.CycleID, &r.Evaluation.EvaluatorID,
			&r.Evaluation.EvaluatedID, &r.Evaluation.Completed, &r.Evaluation.CreatedAt,
			&r.Cycle.ID, &r.Cycle.Name, &r.Cycle.StartDate, &r.Cycle.ReviewDate, &r.Cycle.EndDate,
			&r.EvaluatedName, &r.PositionName,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return s.attachAnswers(ctx, out)
}

func (s *Store) attachAnswers(ctx context.Context, evalRows []SelfEvaluationRow) ([]SelfEvaluationRow, error) {
	if len(evalRows) == 0 {
		return evalRows, nil
	}
	ids := make([]string, 0, len(evalRows))
	for _, r := range evalRows {
		ids = append(ids, r.Evaluation.ID)
	}
	rows, err := s.DB.Query(ctx, `
    SELECT a.evaluation_id, cr.title, cr.category, a.score, a.justification
    FROM evaluation_answers a
    JOIN evaluation_criteria cr ON cr.id = a.criterion_id
    WHERE a.evaluation_id = ANY($1)
    ORDER BY a.created_at
  `, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byEvaluation := make(map[string][]AnswerRow, len(evalRows))
	for rows.Next() {
		var evaluationID string
		var answer AnswerRow
		if err := rows.Scan(&evaluationID, &answer.CriterionTitle, &answer.CriterionCategory, &answer.Score, &answer.Justification); err != nil {
			return nil, err
		}
		byEvaluation[evaluationID] = append(byEvaluation[evaluationID], answer)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range evalRows {
		evalRows[i].Answers = byEvaluation[evalRows[i].Evaluation.ID]
	}
	return evalRows, nil
}

func (s *Store) AssignedCriteria(ctx context.Context, positionID, excludeCategory string) ([]AssignedCriterion, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT cr.id, cr.title, cr.description, cr.category, a.is_required
    FROM criteria_assignments a
    JOIN evaluation_criteria cr ON cr.id = a.criterion_id
    WHERE a.position_id = $1 AND cr.category <> $2
    ORDER BY a.created_at
  `, positionID, excludeCategory)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AssignedCriterion
	for rows.Next() {
		var c AssignedCriterion
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Category, &c.IsRequired); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
