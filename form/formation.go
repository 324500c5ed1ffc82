package form

import (
	"math"

	"github.com/nervosys/autonomysim-swarmcore/internal/swarmid"
)

// desiredPosition computes vehicle i's target position for the given
// formation, in world space: a leader-frame offset rotated by the
// leader's heading and added to the leader's position, per spec §4.3.
//
// i and n are the vehicle's stable index and the total vehicle count
// (including the leader) in a deterministic (ID-sorted) ordering — the
// source spec does not pin down whether indices count the leader;
// this implementation assigns every vehicle, leader included, a slot
// in that ordering so the geometry is stable regardless of which
// vehicle is currently designated leader (see DESIGN.md).
func desiredPosition(cfg Config, leader VehicleState, i, n int) swarmid.Vec3 {
	heading := leader.Orientation.Heading()
	rot := swarmid.FromHeading(heading)

	var local swarmid.Vec3
	switch cfg.Type {
	case Line:
		lateral := cfg.Spacing * (swarmid.Scalar(i) - swarmid.Scalar(n-1)/2)
		local = swarmid.Vec3{X: 0, Y: lateral, Z: 0}

	case Column:
		local = swarmid.Vec3{X: -cfg.Spacing * swarmid.Scalar(i), Y: 0, Z: 0}

	case Wedge:
		half := cfg.FormationAngleRad / 2
		depth := swarmid.Scalar((i+1+1)/2) // 1,1,2,2,3,3...
		sign := swarmid.Scalar(1)
		if i%2 == 1 {
			sign = -1
		}
		back := -cfg.Spacing * depth
		lateral := sign * cfg.Spacing * depth * swarmid.Scalar(math.Tan(float64(half)))
		local = swarmid.Vec3{X: back, Y: lateral, Z: 0}

	case Diamond:
		switch i % 4 {
		case 0:
			local = swarmid.Vec3{X: cfg.Spacing}
		case 1:
			local = swarmid.Vec3{Y: cfg.Spacing}
		case 2:
			local = swarmid.Vec3{X: -cfg.Spacing}
		default:
			local = swarmid.Vec3{Y: -cfg.Spacing}
		}

	case Circle:
		phase := 2 * math.Pi * float64(i) / math.Max(float64(n), 1)
		local = swarmid.Vec3{
			X: cfg.FormationRadius * swarmid.Scalar(math.Cos(phase)),
			Y: cfg.FormationRadius * swarmid.Scalar(math.Sin(phase)),
		}

	case Box:
		rows := int(math.Floor(math.Sqrt(float64(n))))
		cols := int(math.Ceil(math.Sqrt(float64(n))))
		if rows < 1 {
			rows = 1
		}
		if cols < 1 {
			cols = 1
		}
		row := i / cols
		col := i % cols
		centerRow := swarmid.Scalar(rows-1) / 2
		centerCol := swarmid.Scalar(cols-1) / 2
		local = swarmid.Vec3{
			X: (swarmid.Scalar(col) - centerCol) * cfg.Spacing,
			Y: (swarmid.Scalar(row) - centerRow) * cfg.Spacing,
		}

	case Custom:
		if p, ok := cfg.CustomPositions[i]; ok {
			local = p
		} else {
			local = swarmid.Vec3{}
		}

	default:
		local = swarmid.Vec3{}
	}

	return leader.Position.Add(rot.RotateVec3(local))
}
