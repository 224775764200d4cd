package scores

import (
	"time"

	"rpe/internal/domain/cycles"
	"rpe/internal/domain/evaluations"
)

// ScorePerCycle is the aggregated score row for one user in one cycle.
// PeerScores keeps insertion order, which is display order.
type ScorePerCycle struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	CycleID     string    `json:"cycleId"`
	SelfScore   *float64  `json:"selfScore"`
	LeaderScore *float64  `json:"leaderScore"`
	FinalScore  *float64  `json:"finalScore"`
	Feedback    *string   `json:"feedback"`
	PeerScores  []float64 `json:"peerScores"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ScorePatch struct {
	SelfScore   *float64 `json:"selfScore"`
	LeaderScore *float64 `json:"leaderScore"`
	FinalScore  *float64 `json:"finalScore"`
	Feedback    *string  `json:"feedback"`
}

// CycleScore is one timeline row: cycle identity plus the user's score for
// it. Score fields stay null and PeerScores empty when the user has no score
// row for the cycle.
type CycleScore struct {
	CycleID     string    `json:"cycleId"`
	Name        string    `json:"name"`
	StartDate   time.Time `json:"startDate"`
	ReviewDate  time.Time `json:"reviewDate"`
	EndDate     time.Time `json:"endDate"`
	SelfScore   *float64  `json:"selfScore"`
	LeaderScore *float64  `json:"leaderScore"`
	FinalScore  *float64  `json:"finalScore"`
	Feedback    *string   `json:"feedback"`
	PeerScores  []float64 `json:"peerScores"`
}

type ScoreProjection struct {
	SelfScore   *float64  `json:"selfScore"`
	PeerScores  []float64 `json:"peerScores"`
	LeaderScore *float64  `json:"leaderScore"`
	FinalScore  *float64  `json:"finalScore"`
	Feedback    *string   `json:"feedback"`
}

type AnswerView struct {
	Criterion     string  `json:"criterion"`
	Category      string  `json:"type"`
	Score         float64 `json:"score"`
	Justification string  `json:"justification"`
}

type EvaluatedUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
}

type EvaluationView struct {
	EvaluationID   string        `json:"evaluationId"`
	CompletedAt    time.Time     `json:"completedAt"`
	EvaluationType string        `json:"evaluationType"`
	EvaluatedUser  EvaluatedUser `json:"evaluatedUser"`
	Answers        []AnswerView  `json:"answers"`
}

// CycleGroup buckets a user's completed self-evaluations per cycle, most
// recent cycle first.
type CycleGroup struct {
	CycleID       string           `json:"cycleId"`
	CycleName     string           `json:"cycleName"`
	StartDate     time.Time        `json:"startDate"`
	ReviewDate    time.Time        `json:"reviewDate"`
	EndDate       time.Time        `json:"endDate"`
	ScorePerCycle *ScoreProjection `json:"scorePerCycle"`
	Evaluations   []EvaluationView `json:"evaluations"`
}

// AnswerRow is a stored answer joined to its criterion, as read from the
// store before decryption.
type AnswerRow struct {
	CriterionTitle    string
	CriterionCategory string
	Score             float64
	Justification     string
}

// SelfEvaluationRow is one completed self evaluation joined to its cycle and
// the evaluated user, as read from the store before decryption.
type SelfEvaluationRow struct {
	Evaluation    evaluations.Evaluation
	Cycle         cycles.Cycle
	EvaluatedName string
	PositionName  string
	Answers       []AnswerRow
}

// AssignedCriterion is one criterion assigned to a position, returned by the
// current-cycle fallback.
type AssignedCriterion struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	IsRequired  bool   `json:"isRequired"`
}

// SelfReviewFallback signals "no self-review recorded yet" together with the
// criteria the user is expected to answer.
type SelfReviewFallback struct {
	Message          string              `json:"message"`
	AssignedCriteria []AssignedCriterion `json:"assignedCriteria"`
}

// CurrentSelfReviewResult carries exactly one of its two shapes.
type CurrentSelfReviewResult struct {
	Evaluations []EvaluationView
	Fallback    *SelfReviewFallback
}

// UserScores pairs a user with their score row for one reporting window.
type UserScores struct {
	UserID     string          `json:"userId"`
	Name       string          `json:"name"`
	Role       string          `json:"role"`
	Position   string          `json:"position,omitempty"`
	ManagerID  string          `json:"managerId,omitempty"`
	MentorID   string          `json:"mentorId,omitempty"`
	ScoreRows  []ScorePerCycle `json:"scorePerCycle"`
}

// CycleOverview is the company-wide snapshot for the current (or last
// closed) cycle.
type CycleOverview struct {
	Cycle cycles.Cycle `json:"cycle"`
	Users []UserScores `json:"users"`
}

// TeamOverview is a manager's direct reports with their recent score rows.
type TeamOverview struct {
	Cycles []cycles.Cycle `json:"cycles"`
	Users  []UserScores   `json:"users"`
}
