package notifications

const (
	TypeGoalCreated             = "goal_created"
	TypeGoalDeadlineApproaching = "goal_deadline_approaching"
	TypeEvaluationCompleted     = "evaluation_completed"
	TypeScorePublished          = "score_published"
	TypeCycleOpened             = "cycle_opened"
	TypeCycleClosing            = "cycle_closing"
)

const (
	PriorityUrgent = "URGENT"
	PriorityHigh   = "HIGH"
	PriorityNormal = "NORMAL"
)
