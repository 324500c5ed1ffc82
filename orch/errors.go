package orch

import "errors"

var (
	ErrNotRunning               = errors.New("orch: not running")
	ErrInvalidArgument          = errors.New("orch: invalid argument")
	ErrMissionNotFound          = errors.New("orch: mission not found")
	ErrInvalidMissionTransition = errors.New("orch: invalid mission state transition")
)
