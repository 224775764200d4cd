package cycles

import "errors"

var (
	ErrCycleNotFound   = errors.New("evaluation cycle not found")
	ErrNoCurrentCycle  = errors.New("no current evaluation cycle")
	ErrNoCycles        = errors.New("no evaluation cycles exist, open or closed")
)
