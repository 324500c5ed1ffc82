package dec

import "github.com/nervosys/autonomysim-swarmcore/internal/swarmid"

// Mode is a SwarmDecision's finalization strategy, a closed enum per
// the Design Notes §9 guidance to use tagged variants rather than
// inheritance for finite sets like this.
type Mode string

const (
	ModeCentralized  Mode = "centralized"
	ModeDistributed  Mode = "distributed"
	ModeConsensus    Mode = "consensus"
	ModeHierarchical Mode = "hierarchical"
	ModeDemocratic   Mode = "democratic"
)

// Role is an agent's current assignment within the swarm.
type Role string

const (
	RoleLeader   Role = "leader"
	RoleScout    Role = "scout"
	RoleGuardian Role = "guardian"
	RoleRelay    Role = "relay"
	RoleWorker   Role = "worker"
)

// TaskStatus is a Task's position in its state machine
// (pending -> assigned -> in_progress -> completed | failed).
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskAssigned   TaskStatus = "assigned"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskFailed     TaskStatus = "failed"
)

// Outcome is a finalized SwarmDecision's result.
type Outcome string

const (
	OutcomeApproved    Outcome = "approved"
	OutcomeRejected    Outcome = "rejected"
	OutcomeDistributed Outcome = "distributed"
)

// BehaviorType enumerates the emergent swarm-level patterns this
// package can detect.
type BehaviorType string

const (
	BehaviorAggregation BehaviorType = "aggregation"
	BehaviorFormation    BehaviorType = "formation"
)

// AgentState is the authoritative per-agent record DEC owns, per
// spec §3.
type AgentState struct {
	ID              string
	Role            Role
	Position        swarmid.Vec3
	Velocity        swarmid.Vec3
	Orientation     swarmid.Quat
	Energy          swarmid.Scalar
	Capabilities    map[string]swarmid.Scalar
	CurrentBehavior string
	TimestampMS     int64
	// AssignedTasks is maintained by AllocateTasks for the workload
	// term in the fitness formula; it is not a public mutation target.
	AssignedTasks []string
}

// SwarmDecision is a stored decision with a mode-specific finalization
// rule and an outcome, per spec §4.4.
type SwarmDecision struct {
	ID                   string
	Description          string
	Mode                 Mode
	ParticipatingAgents  []string
	Votes                map[string]swarmid.Scalar
	Threshold            swarmid.Scalar
	Finalized            bool
	Outcome              Outcome
	TimestampMS          int64
}

// Task is a unit of work with required capabilities, a location, and
// a status machine, per spec §3/§4.4.
type Task struct {
	ID                   string
	Description          string
	Location             swarmid.Vec3
	Priority             swarmid.Scalar
	RequiredCapabilities []string
	AssignedAgents       []string
	Status               TaskStatus
	Completion           swarmid.Scalar
	DeadlineMS           int64
}

// EmergentBehavior is a swarm-level pattern inferred from spatial
// statistics, per spec §4.4.
type EmergentBehavior struct {
	ID               string
	Type             BehaviorType
	TriggeringAgents []string
	Parameters       map[string]swarmid.Scalar
	Strength         swarmid.Scalar
	StartTimestampMS int64
	DurationMS       int64
}
