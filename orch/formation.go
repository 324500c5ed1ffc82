package orch

import (
	"sort"

	"github.com/nervosys/autonomysim-swarmcore/form"
)

// SetFormation changes the active formation geometry.
func (o *Orchestrator) SetFormation(t form.Type) bool {
	o.stateMu.Lock()
	defer o.stateMu.Unlock()
	o.formationCfg.Type = t
	return true
}

// SetFormationLeader designates id as the formation's reference
// vehicle; FORM treats every other registered agent as a follower of
// id.
func (o *Orchestrator) SetFormationLeader(id string) bool {
	if id == "" {
		return false
	}
	o.stateMu.Lock()
	defer o.stateMu.Unlock()
	o.formationLead = id
	return true
}

// GetFormationType returns the currently configured formation
// geometry.
func (o *Orchestrator) GetFormationType() form.Type {
	o.stateMu.Lock()
	defer o.stateMu.Unlock()
	return o.formationCfg.Type
}

// GetFormationCommands computes per-follower velocity/acceleration/
// orientation commands for the current agent snapshot, per spec §4.3.
func (o *Orchestrator) GetFormationCommands() []form.Command {
	o.stateMu.Lock()
	cfg := o.formationCfg
	leader := o.formationLead
	o.stateMu.Unlock()

	agents := o.dec.GetAllAgents()
	if len(agents) == 0 {
		return nil
	}
	if leader == "" {
		sort.Slice(agents, func(i, j int) bool { return agents[i].ID < agents[j].ID })
		leader = agents[0].ID
	}

	vehicles := make([]form.VehicleState, len(agents))
	for i, a := range agents {
		vehicles[i] = form.VehicleState{
			ID:          a.ID,
			Position:    a.Position,
			Velocity:    a.Velocity,
			Orientation: a.Orientation,
		}
	}
	return form.ComputeCommands(vehicles, leader, cfg)
}
