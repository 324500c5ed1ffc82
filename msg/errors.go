package msg

import "errors"

// Sentinel errors for MSG operations, returned internally and
// translated to bool/empty results at the public API per spec §7.
var (
	ErrNotRunning      = errors.New("msg: bus not running")
	ErrInvalidMessage  = errors.New("msg: sender empty or timestamp not positive")
	ErrUnknownProposal = errors.New("msg: proposal not found or expired")
	ErrUnknownRound    = errors.New("msg: consensus round not found")
)
