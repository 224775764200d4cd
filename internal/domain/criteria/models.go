package criteria

import "time"

type Criterion struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Assignment struct {
	ID          string    `json:"id"`
	CriterionID string    `json:"criterionId"`
	PositionID  string    `json:"positionId"`
	IsRequired  bool      `json:"isRequired"`
	CreatedAt   time.Time `json:"createdAt"`
}
