// Package dec implements the DEC subsystem: the authoritative agent
// table, mode-driven decision finalization, fitness-based task
// allocation, periodic role reassignment, and emergent-behavior
// detection, per spec §4.4.
package dec

import (
	"log"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/nervosys/autonomysim-swarmcore/internal/swarmid"
)

// Engine is the DEC subsystem's public surface. Each table (agents,
// decisions, tasks, behaviors) is guarded by its own lock per the lock
// hierarchy in spec §5 — DEC.* sits between ORCH.agents and MSG.*, so
// DEC never needs to acquire a foreign lock to serve its own API.
type Engine struct {
	cfg     Config
	logger  *log.Logger
	running atomic.Bool

	emergentEnabled     atomic.Bool
	dynamicRolesEnabled atomic.Bool

	modeMu      sync.Mutex
	defaultMode Mode

	agentMu sync.RWMutex
	agents  map[string]*AgentState

	decisionMu sync.Mutex
	decisions  map[string]*SwarmDecision

	taskMu sync.Mutex
	tasks  map[string]*Task

	behaviorMu sync.Mutex
	behaviors  map[string]*EmergentBehavior
}

// NewEngine creates an Engine from cfg. logger may be nil.
func NewEngine(cfg Config, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	e := &Engine{
		cfg:       cfg,
		logger:    logger,
		agents:    make(map[string]*AgentState),
		decisions: make(map[string]*SwarmDecision),
		tasks:     make(map[string]*Task),
		behaviors: make(map[string]*EmergentBehavior),
	}
	e.emergentEnabled.Store(cfg.EnableEmergentBehavior)
	e.dynamicRolesEnabled.Store(cfg.EnableDynamicRoles)
	e.defaultMode = cfg.DefaultDecisionMode
	return e
}

// Start transitions the engine into the running state.
func (e *Engine) Start() bool {
	e.running.Store(true)
	e.logger.Printf("component=dec action=start mode=%s", e.cfg.DefaultDecisionMode)
	return true
}

// Stop transitions running to false.
func (e *Engine) Stop() {
	e.running.Store(false)
	e.logger.Printf("component=dec action=stop")
}

// Running reports whether the engine currently accepts mutations.
func (e *Engine) Running() bool { return e.running.Load() }

// SetEmergentBehaviorEnabled toggles DetectEmergentBehaviors at
// runtime, backing ORCH's enableEmergentBehaviors passthrough.
func (e *Engine) SetEmergentBehaviorEnabled(enable bool) {
	e.emergentEnabled.Store(enable)
}

// SetDynamicRolesEnabled toggles ReassignRoles at runtime, backing
// ORCH's enableDynamicRoleAssignment passthrough.
func (e *Engine) SetDynamicRolesEnabled(enable bool) {
	e.dynamicRolesEnabled.Store(enable)
}

// SetDefaultDecisionMode changes the mode ProposeDecision falls back
// to when called with an empty mode, backing ORCH's
// enableCollectiveDecisionMaking passthrough.
func (e *Engine) SetDefaultDecisionMode(mode Mode) {
	e.modeMu.Lock()
	e.defaultMode = mode
	e.modeMu.Unlock()
}

func (e *Engine) defaultDecisionMode() Mode {
	e.modeMu.Lock()
	defer e.modeMu.Unlock()
	return e.defaultMode
}

// Reset stops the engine and drops all state across every table.
func (e *Engine) Reset() {
	e.Stop()

	e.agentMu.Lock()
	e.agents = make(map[string]*AgentState)
	e.agentMu.Unlock()

	e.decisionMu.Lock()
	e.decisions = make(map[string]*SwarmDecision)
	e.decisionMu.Unlock()

	e.taskMu.Lock()
	e.tasks = make(map[string]*Task)
	e.taskMu.Unlock()

	e.behaviorMu.Lock()
	e.behaviors = make(map[string]*EmergentBehavior)
	e.behaviorMu.Unlock()

	e.logger.Printf("component=dec action=reset")
}

func cloneCapabilities(in map[string]swarmid.Scalar) map[string]swarmid.Scalar {
	out := make(map[string]swarmid.Scalar, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneAgent(a *AgentState) AgentState {
	out := *a
	out.Capabilities = cloneCapabilities(a.Capabilities)
	out.AssignedTasks = append([]string(nil), a.AssignedTasks...)
	return out
}

// AddAgent records state in the authoritative agent table, rejecting
// once MaxAgents is reached or the ID already exists.
func (e *Engine) AddAgent(state AgentState) bool {
	if err := e.addAgent(state); err != nil {
		e.logger.Printf("component=dec action=add_agent agent_id=%s error=%q", state.ID, err)
		return false
	}
	return true
}

func (e *Engine) addAgent(state AgentState) error {
	if !e.running.Load() {
		return ErrNotRunning
	}
	if state.ID == "" {
		return ErrInvalidArgument
	}
	e.agentMu.Lock()
	defer e.agentMu.Unlock()
	if _, exists := e.agents[state.ID]; exists {
		return ErrDuplicateID
	}
	if uint32(len(e.agents)) >= e.cfg.MaxAgents {
		return ErrAgentCapacity
	}
	stored := cloneAgent(&state)
	e.agents[state.ID] = &stored
	return nil
}

// RemoveAgent drops id from the agent table.
func (e *Engine) RemoveAgent(id string) bool {
	if err := e.removeAgent(id); err != nil {
		e.logger.Printf("component=dec action=remove_agent agent_id=%s error=%q", id, err)
		return false
	}
	return true
}

func (e *Engine) removeAgent(id string) error {
	e.agentMu.Lock()
	defer e.agentMu.Unlock()
	if _, ok := e.agents[id]; !ok {
		return ErrAgentNotFound
	}
	delete(e.agents, id)
	return nil
}

// UpdateAgent overwrites the stored state for state.ID, preserving the
// existing AssignedTasks bookkeeping (mutated only by AllocateTasks).
func (e *Engine) UpdateAgent(state AgentState) bool {
	if err := e.updateAgent(state); err != nil {
		e.logger.Printf("component=dec action=update_agent agent_id=%s error=%q", state.ID, err)
		return false
	}
	return true
}

func (e *Engine) updateAgent(state AgentState) error {
	if state.ID == "" {
		return ErrInvalidArgument
	}
	e.agentMu.Lock()
	defer e.agentMu.Unlock()
	existing, ok := e.agents[state.ID]
	if !ok {
		return ErrAgentNotFound
	}
	assigned := existing.AssignedTasks
	stored := cloneAgent(&state)
	stored.AssignedTasks = assigned
	e.agents[state.ID] = &stored
	return nil
}

// GetAgent returns a copy of the stored state for id.
func (e *Engine) GetAgent(id string) (AgentState, bool) {
	e.agentMu.RLock()
	defer e.agentMu.RUnlock()
	a, ok := e.agents[id]
	if !ok {
		return AgentState{}, false
	}
	return cloneAgent(a), true
}

// GetAllAgents returns a copy of every agent in the table.
func (e *Engine) GetAllAgents() []AgentState {
	e.agentMu.RLock()
	defer e.agentMu.RUnlock()
	out := make([]AgentState, 0, len(e.agents))
	for _, a := range e.agents {
		out = append(out, cloneAgent(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AgentCount returns the number of agents in the table.
func (e *Engine) AgentCount() int {
	e.agentMu.RLock()
	defer e.agentMu.RUnlock()
	return len(e.agents)
}
