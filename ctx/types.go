package ctx

import "github.com/nervosys/autonomysim-swarmcore/internal/swarmid"

// ContextEntry is a timestamped snapshot of an agent's perception,
// planning, and execution state, as published via PublishContext.
type ContextEntry struct {
	AgentID       string
	Position      swarmid.Vec3
	Velocity      swarmid.Vec3
	Orientation   swarmid.Quat
	MissionState  string
	Perception    map[string]any
	Planning      map[string]any
	Execution     map[string]any
	TimestampMS   int64
}

// Resource is a capacity-bounded shared asset (sensor, compute,
// energy) with a usage counter, owned by CTX.
type Resource struct {
	ID           string
	Type         string
	OwnerID      string
	Capacity     swarmid.Scalar
	CurrentUsage swarmid.Scalar
	Available    bool
	Metadata     map[string]string
}
