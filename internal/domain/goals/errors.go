package goals

import "errors"

var (
	ErrGoalNotFound   = errors.New("goal not found")
	ErrActionNotFound = errors.New("goal action not found")
)
