package evaluations

import "time"

type Evaluation struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	CycleID     string    `json:"cycleId"`
	EvaluatorID string    `json:"evaluatorId"`
	EvaluatedID string    `json:"evaluatedId"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Answer struct {
	ID            string  `json:"id"`
	EvaluationID  string  `json:"evaluationId"`
	CriterionID   string  `json:"criterionId"`
	Score         float64 `json:"score"`
	Justification string  `json:"justification"`
}
