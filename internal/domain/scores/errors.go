package scores

import "errors"

var (
	ErrScoreNotFound  = errors.New("score row not found")
	ErrDuplicateScore = errors.New("score row already exists for this user and cycle")
)
