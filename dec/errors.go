package dec

import "errors"

var (
	ErrNotRunning        = errors.New("dec: subsystem not running")
	ErrInvalidArgument   = errors.New("dec: invalid argument")
	ErrAgentNotFound     = errors.New("dec: agent not found")
	ErrAgentCapacity     = errors.New("dec: agent capacity exceeded")
	ErrDecisionNotFound  = errors.New("dec: decision not found")
	ErrDecisionFinalized = errors.New("dec: decision already finalized")
	ErrTaskNotFound      = errors.New("dec: task not found")
	ErrDuplicateID       = errors.New("dec: duplicate id")
)
