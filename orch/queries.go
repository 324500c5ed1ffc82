package orch

import (
	"github.com/nervosys/autonomysim-swarmcore/dec"
	"github.com/nervosys/autonomysim-swarmcore/internal/swarmid"
)

func (o *Orchestrator) positions() []swarmid.Vec3 {
	agents := o.dec.GetAllAgents()
	out := make([]swarmid.Vec3, len(agents))
	for i, a := range agents {
		out[i] = a.Position
	}
	return out
}

// GetSwarmCentroid returns the arithmetic mean position across every
// registered agent.
func (o *Orchestrator) GetSwarmCentroid() swarmid.Vec3 {
	centroid, _, _ := dec.SwarmStats(o.positions())
	return centroid
}

// GetSwarmCohesion returns the swarm's current cohesion statistic, per
// spec §4.4.
func (o *Orchestrator) GetSwarmCohesion() swarmid.Scalar {
	_, _, cohesion := dec.SwarmStats(o.positions())
	return cohesion
}

// GetSwarmDispersion returns the swarm's current dispersion (RMS
// distance to centroid), per spec §4.4.
func (o *Orchestrator) GetSwarmDispersion() swarmid.Scalar {
	_, dispersion, _ := dec.SwarmStats(o.positions())
	return dispersion
}

// GetSwarmState returns a point-in-time snapshot combining agent
// count, active mission count, formation configuration, and swarm
// spatial statistics.
func (o *Orchestrator) GetSwarmState() SwarmState {
	centroid, dispersion, cohesion := dec.SwarmStats(o.positions())

	o.stateMu.Lock()
	formationType := o.formationCfg.Type
	leader := o.formationLead
	o.stateMu.Unlock()

	return SwarmState{
		Running:         o.running.Load(),
		AgentCount:      o.dec.AgentCount(),
		ActiveMissions:  len(o.GetActiveMissions()),
		FormationType:   string(formationType),
		FormationLeader: leader,
		Centroid:        centroid,
		Cohesion:        cohesion,
		Dispersion:      dispersion,
	}
}
