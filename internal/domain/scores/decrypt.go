package scores

import "rpe/internal/domain/users"

// This file is the single decryption boundary of the aggregation engine:
// every outbound record passes through exactly one of these helpers.

func (s *Service) decryptScore(score ScorePerCycle) (ScorePerCycle, error) {
	if score.Feedback != nil {
		plain, err := s.crypto.DecryptField(*score.Feedback)
		if err != nil {
			return ScorePerCycle{}, err
		}
		score.Feedback = &plain
	}
	if score.PeerScores == nil {
		score.PeerScores = []float64{}
	}
	return score, nil
}

func (s *Service) evaluationView(row SelfEvaluationRow) (EvaluationView, error) {
	name, err := s.crypto.DecryptField(row.EvaluatedName)
	if err != nil {
		return EvaluationView{}, err
	}

	view := EvaluationView{
		EvaluationID:   row.Evaluation.ID,
		CompletedAt:    row.Evaluation.CreatedAt,
		EvaluationType: row.Evaluation.Type,
		EvaluatedUser: EvaluatedUser{
			ID:       row.Evaluation.EvaluatedID,
			Name:     name,
			Position: row.PositionName,
		},
		Answers: make([]AnswerView, 0, len(row.Answers)),
	}
	for _, answer := range row.Answers {
		justification, err := s.crypto.DecryptField(answer.Justification)
		if err != nil {
			return EvaluationView{}, err
		}
		view.Answers = append(view.Answers, AnswerView{
			Criterion:     answer.CriterionTitle,
			Category:      answer.CriterionCategory,
			Score:         answer.Score,
			Justification: justification,
		})
	}
	return view, nil
}

func (s *Service) userScores(userID, name, role, managerID, mentorID, position string, scoreRows []ScorePerCycle) (UserScores, error) {
	plainName, err := s.crypto.DecryptField(name)
	if err != nil {
		return UserScores{}, err
	}
	return UserScores{
		UserID:    userID,
		Name:      plainName,
		Role:      role,
		Position:  position,
		ManagerID: managerID,
		MentorID:  mentorID,
		ScoreRows: scoreRows,
	}, nil
}

func positionName(user users.User) string {
	if user.Position != nil {
		return user.Position.Name
	}
	return ""
}
