package form

import "github.com/nervosys/autonomysim-swarmcore/internal/swarmid"

// VehicleState is a snapshot of one vehicle's pose, the FORM
// subsystem's only input alongside Config — FORM never reads CTX or
// DEC tables directly, matching the ID-based, no-aliasing ownership
// model in spec §3.
type VehicleState struct {
	ID          string
	Position    swarmid.Vec3
	Velocity    swarmid.Vec3
	Orientation swarmid.Quat
}

// Command is the desired velocity/acceleration/orientation FORM
// produces for one follower.
type Command struct {
	VehicleID      string
	VelocityCmd    swarmid.Vec3
	AccelCmd       swarmid.Vec3
	OrientationCmd swarmid.Quat
}
