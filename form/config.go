package form

import "github.com/nervosys/autonomysim-swarmcore/internal/swarmid"

// Type enumerates the supported formation geometries, per spec §4.3.
// Using a closed string enum rather than an inheritance hierarchy
// follows the Design Notes §9 guidance: "tagged variants for finite
// enums... interface abstractions only where extensibility is a stated
// requirement."
type Type string

const (
	Line    Type = "line"
	Column  Type = "column"
	Wedge   Type = "wedge"
	Diamond Type = "diamond"
	Circle  Type = "circle"
	Box     Type = "box"
	Custom  Type = "custom"
)

// Config aggregates the FORM tunables from spec §6.
type Config struct {
	Type              Type                  `yaml:"type"`
	Spacing           swarmid.Scalar        `yaml:"spacing"`
	CollisionRadius   swarmid.Scalar        `yaml:"collision_radius"`
	MaxVelocity       swarmid.Scalar        `yaml:"max_velocity"`
	MaxAcceleration   swarmid.Scalar        `yaml:"max_acceleration"`
	KPosition         swarmid.Scalar        `yaml:"k_position"`
	KVelocity         swarmid.Scalar        `yaml:"k_velocity"`
	KSeparation       swarmid.Scalar        `yaml:"k_separation"`
	KCohesion         swarmid.Scalar        `yaml:"k_cohesion"`
	KAlignment        swarmid.Scalar        `yaml:"k_alignment"`
	FormationRadius   swarmid.Scalar        `yaml:"formation_radius"`
	FormationAngleRad swarmid.Scalar        `yaml:"formation_angle_rad"`
	CustomPositions   map[int]swarmid.Vec3  `yaml:"custom_positions,omitempty"`
	UpdateRateHz      swarmid.Scalar        `yaml:"update_rate_hz"`
}

// NewDefaultConfig returns a reasonable default FORM configuration.
func NewDefaultConfig() Config {
	return Config{
		Type:              Line,
		Spacing:           5,
		CollisionRadius:   2,
		MaxVelocity:       10,
		MaxAcceleration:   5,
		KPosition:         1.0,
		KVelocity:         1.0,
		KSeparation:       1.0,
		KCohesion:         0.5,
		KAlignment:        0.5,
		FormationRadius:   10,
		FormationAngleRad: 0.6,
		UpdateRateHz:      10,
	}
}

// DtNominal returns 1/UpdateRateHz, the nominal tick period used to
// derive acceleration from a velocity command.
func (c Config) DtNominal() swarmid.Scalar {
	if c.UpdateRateHz <= 0 {
		return 0.1
	}
	return 1 / c.UpdateRateHz
}
