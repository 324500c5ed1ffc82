package dec

import "github.com/nervosys/autonomysim-swarmcore/internal/swarmid"

// Config aggregates the DEC tunables from spec §6.
type Config struct {
	DefaultDecisionMode      Mode           `yaml:"default_decision_mode"`
	ConsensusThreshold       swarmid.Scalar `yaml:"consensus_threshold"`
	RoleChangeThreshold      swarmid.Scalar `yaml:"role_change_threshold"`
	MaxAgents                uint32         `yaml:"max_agents"`
	CommunicationRangeMeters swarmid.Scalar `yaml:"communication_range_meters"`
	PerceptionRangeMeters    swarmid.Scalar `yaml:"perception_range_meters"`
	EnableEmergentBehavior   bool           `yaml:"enable_emergent_behavior"`
	EnableDynamicRoles       bool           `yaml:"enable_dynamic_roles"`
}

// NewDefaultConfig returns DEC defaults, including the spec-mandated
// consensus_threshold of 0.7.
func NewDefaultConfig() Config {
	return Config{
		DefaultDecisionMode:      ModeConsensus,
		ConsensusThreshold:       0.7,
		RoleChangeThreshold:      0.1,
		MaxAgents:                100,
		CommunicationRangeMeters: 100,
		PerceptionRangeMeters:    50,
		EnableEmergentBehavior:   true,
		EnableDynamicRoles:       true,
	}
}
