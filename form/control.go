// Package form implements the FORM subsystem: geometric formation
// control with leader-follower semantics and collision-aware
// velocity/acceleration commands, per spec §4.3.
//
// FORM is a pure function of its inputs — a set of vehicle states, a
// leader, and a Config — with no outbound dependency on CTX, MSG, or
// DEC. Callers (ORCH) are responsible for sourcing vehicle states and
// handing back the resulting commands to whatever drives physics.
package form

import (
	"math"
	"sort"

	"github.com/nervosys/autonomysim-swarmcore/internal/swarmid"
)

// ComputeCommands returns one Command per vehicle in vehicles,
// implementing the control law from spec §4.3. The leader's own
// command is always the identity (zero velocity/acceleration
// correction). vehicles need not be pre-sorted; ComputeCommands
// establishes a deterministic ID-sorted index internally so results
// are stable across calls regardless of input ordering.
func ComputeCommands(vehicles []VehicleState, leaderID string, cfg Config) []Command {
	n := len(vehicles)
	if n == 0 {
		return nil
	}

	ordered := make([]VehicleState, n)
	copy(ordered, vehicles)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	var leader VehicleState
	leaderIdx := -1
	for i, v := range ordered {
		if v.ID == leaderID {
			leader = v
			leaderIdx = i
			break
		}
	}
	if leaderIdx == -1 {
		// No designated leader present in this snapshot: fall back to
		// the first vehicle in sorted order so the control law still
		// has a reference frame.
		leader = ordered[0]
		leaderIdx = 0
	}

	dt := cfg.DtNominal()
	commands := make([]Command, n)

	for i, v := range ordered {
		if i == leaderIdx {
			commands[i] = Command{VehicleID: v.ID, OrientationCmd: swarmid.IdentityQuat}
			continue
		}

		pDesired := desiredPosition(cfg, leader, i, n)
		ep := pDesired.Sub(v.Position)
		ev := leader.Velocity.Sub(v.Velocity)

		fSep := separationForce(v, ordered, i, cfg.CollisionRadius)
		centroid, meanVel := neighborStats(ordered, i)
		fCoh := centroid.Sub(v.Position)
		fAli := meanVel.Sub(v.Velocity)

		raw := ep.Scale(cfg.KPosition).
			Add(ev.Scale(cfg.KVelocity)).
			Add(fSep.Scale(cfg.KSeparation)).
			Add(fCoh.Scale(cfg.KCohesion)).
			Add(fAli.Scale(cfg.KAlignment))

		vCmd := raw.ClampNorm(cfg.MaxVelocity)

		var aCmd swarmid.Vec3
		if dt > 0 {
			aCmd = vCmd.Sub(v.Velocity).Scale(1 / dt).ClampNorm(cfg.MaxAcceleration)
		}

		orientation := v.Orientation
		if !vCmd.Zero() {
			orientation = swarmid.FromHeading(math.Atan2(float64(vCmd.Y), float64(vCmd.X)))
		}

		commands[i] = Command{
			VehicleID:      v.ID,
			VelocityCmd:    vCmd,
			AccelCmd:       aCmd,
			OrientationCmd: orientation,
		}
	}

	return commands
}

// separationForce sums inverse-square repulsion from every other
// vehicle within collisionRadius of vehicles[self]. A zero radius (or
// no neighbor within it) yields the zero vector, per spec §4.3.
func separationForce(self VehicleState, vehicles []VehicleState, selfIdx int, collisionRadius swarmid.Scalar) swarmid.Vec3 {
	if collisionRadius <= 0 {
		return swarmid.Vec3{}
	}
	var f swarmid.Vec3
	for j, other := range vehicles {
		if j == selfIdx {
			continue
		}
		diff := self.Position.Sub(other.Position)
		d := diff.Norm()
		if d > 0 && d < collisionRadius {
			f = f.Add(diff.Normalize().Scale(1 / (d * d)))
		}
	}
	return f
}

// neighborStats returns the centroid position and mean velocity of
// every vehicle other than vehicles[selfIdx].
func neighborStats(vehicles []VehicleState, selfIdx int) (centroid, meanVel swarmid.Vec3) {
	count := 0
	for j, v := range vehicles {
		if j == selfIdx {
			continue
		}
		centroid = centroid.Add(v.Position)
		meanVel = meanVel.Add(v.Velocity)
		count++
	}
	if count == 0 {
		return swarmid.Vec3{}, swarmid.Vec3{}
	}
	inv := 1 / swarmid.Scalar(count)
	return centroid.Scale(inv), meanVel.Scale(inv)
}
