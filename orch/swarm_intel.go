package orch

import "github.com/nervosys/autonomysim-swarmcore/dec"

// EnableCollectiveDecisionMaking switches DEC's default decision mode
// between Consensus (collective) and Centralized (single-authority)
// for subsequently proposed decisions.
func (o *Orchestrator) EnableCollectiveDecisionMaking(enable bool) {
	if enable {
		o.dec.SetDefaultDecisionMode(dec.ModeConsensus)
	} else {
		o.dec.SetDefaultDecisionMode(dec.ModeCentralized)
	}
}

// EnableEmergentBehaviors toggles DEC's emergent-behavior detection.
func (o *Orchestrator) EnableEmergentBehaviors(enable bool) {
	o.dec.SetEmergentBehaviorEnabled(enable)
}

// EnableDynamicRoleAssignment toggles DEC's periodic role
// reassignment.
func (o *Orchestrator) EnableDynamicRoleAssignment(enable bool) {
	o.dec.SetDynamicRolesEnabled(enable)
}

// GetEmergentBehaviors returns every behavior DEC currently considers
// active.
func (o *Orchestrator) GetEmergentBehaviors() []dec.EmergentBehavior {
	return o.dec.GetActiveBehaviors(o.now())
}
