package goals

import "time"

type Goal struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Actions     []Action  `json:"actions"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Action struct {
	ID          string    `json:"id"`
	GoalID      string    `json:"goalId"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}
