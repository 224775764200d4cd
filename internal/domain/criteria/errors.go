package criteria

import "errors"

var (
	ErrCriterionNotFound  = errors.New("evaluation criterion not found")
	ErrAssignmentNotFound = errors.New("criteria assignment not found")
	ErrDuplicateAssignment = errors.New("criterion is already assigned to this position")
)
