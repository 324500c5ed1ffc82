package orch

import (
	"github.com/nervosys/autonomysim-swarmcore/dec"
	"github.com/nervosys/autonomysim-swarmcore/internal/swarmid"
)

// AddAgent registers id with CTX (for tool/context participation) and
// DEC (the authoritative agent-state table) in the same call, keeping
// the two independently owned tables in sync on the one field they
// share: capabilities.
func (o *Orchestrator) AddAgent(state dec.AgentState) bool {
	if !o.running.Load() || state.ID == "" {
		return false
	}
	if !o.ctx.RegisterAgent(state.ID, state.Capabilities) {
		return false
	}
	if !o.dec.AddAgent(state) {
		o.ctx.UnregisterAgent(state.ID)
		return false
	}
	o.logger.Printf("component=orch action=add_agent agent_id=%s", state.ID)
	return true
}

// RemoveAgent drops id from both CTX and DEC.
func (o *Orchestrator) RemoveAgent(id string) bool {
	decOK := o.dec.RemoveAgent(id)
	ctxOK := o.ctx.UnregisterAgent(id)
	return decOK || ctxOK
}

// UpdateAgent overwrites DEC's stored state for state.ID and refreshes
// its CTX-registered capabilities.
func (o *Orchestrator) UpdateAgent(state dec.AgentState) bool {
	if !o.dec.UpdateAgent(state) {
		return false
	}
	o.ctx.RegisterAgent(state.ID, state.Capabilities)
	return true
}

// GetAgent returns DEC's stored state for id.
func (o *Orchestrator) GetAgent(id string) (dec.AgentState, bool) {
	return o.dec.GetAgent(id)
}

// GetAllAgents returns every agent in DEC's table.
func (o *Orchestrator) GetAllAgents() []dec.AgentState {
	return o.dec.GetAllAgents()
}

// GetAgentCount returns the number of agents in DEC's table.
func (o *Orchestrator) GetAgentCount() int {
	return o.dec.AgentCount()
}

// AssessSwarmCapabilities sums each declared capability across every
// registered agent, giving callers a single aggregate view of what
// the swarm as a whole can do.
func (o *Orchestrator) AssessSwarmCapabilities() map[string]swarmid.Scalar {
	out := make(map[string]swarmid.Scalar)
	for _, a := range o.dec.GetAllAgents() {
		for k, v := range a.Capabilities {
			out[k] += v
		}
	}
	return out
}
