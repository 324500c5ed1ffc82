package ctx

import (
	"errors"
	"fmt"
)

// Sentinel errors for CTX operations. Public API methods translate
// these into bool/empty returns per spec §7; the sentinels remain
// available to tests and internal callers that want the reason.
var (
	ErrNotRunning         = errors.New("ctx: registry not running")
	ErrInvalidArgument    = errors.New("ctx: invalid argument")
	ErrCapacityExceeded   = errors.New("ctx: capacity exceeded")
	ErrResourceUnavail    = errors.New("ctx: resource unavailable")
	ErrResourceOvercommit = errors.New("ctx: resource request exceeds capacity")
)

// ResourceNotFoundError indicates an operation referenced an unknown resource ID.
type ResourceNotFoundError struct {
	ResourceID string
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("ctx: resource not found: %s", e.ResourceID)
}
