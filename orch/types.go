package orch

import "github.com/nervosys/autonomysim-swarmcore/internal/swarmid"

// MissionState is a Mission's position in its lifecycle. Planning,
// Executing, Completed, and Failed are the states named directly in
// the data model; Paused and Aborted are added here to back
// pauseMission/resumeMission/abortMission, which the operation list
// requires but the data model table left implicit (see DESIGN.md).
type MissionState string

const (
	MissionPlanning  MissionState = "planning"
	MissionExecuting MissionState = "executing"
	MissionPaused    MissionState = "paused"
	MissionCompleted MissionState = "completed"
	MissionFailed    MissionState = "failed"
	MissionAborted   MissionState = "aborted"
)

// Mission is an orchestrator-level container over a set of tasks and
// agents with a state machine, owned exclusively by ORCH.
type Mission struct {
	ID             string
	Type           string
	Description    string
	Target         swarmid.Vec3
	Priority       swarmid.Scalar
	AssignedAgents []string
	Tasks          []string
	State          MissionState
	Completion     swarmid.Scalar
	StartMS        int64
	DeadlineMS     int64
	Parameters     map[string]any
}

// SwarmState is the snapshot returned by GetSwarmState.
type SwarmState struct {
	Running         bool
	AgentCount      int
	ActiveMissions  int
	FormationType   string
	FormationLeader string
	Centroid        swarmid.Vec3
	Cohesion        swarmid.Scalar
	Dispersion      swarmid.Scalar
}
