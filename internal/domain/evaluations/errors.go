package evaluations

import "errors"

var ErrEvaluationNotFound = errors.New("evaluation not found")
