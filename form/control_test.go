package form_test

import (
	"testing"

	"github.com/nervosys/autonomysim-swarmcore/form"
	"github.com/nervosys/autonomysim-swarmcore/internal/swarmid"
)

func TestComputeCommands_LeaderGetsIdentity(t *testing.T) {
	cfg := form.NewDefaultConfig()
	vehicles := []form.VehicleState{
		{ID: "leader", Position: swarmid.Vec3{}},
		{ID: "follower-1", Position: swarmid.Vec3{X: 100}},
	}
	cmds := form.ComputeCommands(vehicles, "leader", cfg)

	var leaderCmd form.Command
	for _, c := range cmds {
		if c.VehicleID == "leader" {
			leaderCmd = c
		}
	}
	if !leaderCmd.VelocityCmd.Zero() || !leaderCmd.AccelCmd.Zero() {
		t.Fatalf("expected leader identity command, got %+v", leaderCmd)
	}
}

func TestComputeCommands_RespectsVelocityAndAccelCaps(t *testing.T) {
	cfg := form.NewDefaultConfig()
	cfg.MaxVelocity = 3
	cfg.MaxAcceleration = 2
	cfg.KPosition = 10 // exaggerate the pull so the cap is exercised

	vehicles := []form.VehicleState{
		{ID: "leader", Position: swarmid.Vec3{}},
		{ID: "follower", Position: swarmid.Vec3{X: 1000}},
	}
	cmds := form.ComputeCommands(vehicles, "leader", cfg)

	for _, c := range cmds {
		if c.VehicleID != "follower" {
			continue
		}
		if c.VelocityCmd.Norm() > cfg.MaxVelocity+swarmid.Epsilon {
			t.Fatalf("velocity cmd %v exceeds cap %v", c.VelocityCmd.Norm(), cfg.MaxVelocity)
		}
		if c.AccelCmd.Norm() > cfg.MaxAcceleration+swarmid.Epsilon {
			t.Fatalf("accel cmd %v exceeds cap %v", c.AccelCmd.Norm(), cfg.MaxAcceleration)
		}
	}
}

func TestComputeCommands_ZeroCollisionRadiusDisablesSeparation(t *testing.T) {
	cfg := form.NewDefaultConfig()
	cfg.CollisionRadius = 0
	cfg.KPosition = 0
	cfg.KVelocity = 0
	cfg.KCohesion = 0
	cfg.KAlignment = 0
	cfg.KSeparation = 1

	vehicles := []form.VehicleState{
		{ID: "leader", Position: swarmid.Vec3{}},
		{ID: "f1", Position: swarmid.Vec3{X: 0.1}},
		{ID: "f2", Position: swarmid.Vec3{X: 0.2}},
	}
	cmds := form.ComputeCommands(vehicles, "leader", cfg)
	for _, c := range cmds {
		if c.VehicleID == "leader" {
			continue
		}
		if !c.VelocityCmd.Zero() {
			t.Fatalf("expected zero separation force with collision_radius=0, got %+v", c)
		}
	}
}

func TestComputeCommands_EmptyInput(t *testing.T) {
	if cmds := form.ComputeCommands(nil, "leader", form.NewDefaultConfig()); cmds != nil {
		t.Fatalf("expected nil commands for empty input, got %+v", cmds)
	}
}

func TestComputeCommands_LineFormationOneCommandPerVehicle(t *testing.T) {
	cfg := form.NewDefaultConfig()
	cfg.Type = form.Line
	cfg.Spacing = 5
	cfg.KPosition = 1
	cfg.MaxVelocity = 1000
	cfg.MaxAcceleration = 1000

	vehicles := []form.VehicleState{
		{ID: "a-leader", Position: swarmid.Vec3{}},
		{ID: "b-follower", Position: swarmid.Vec3{Y: -100}},
		{ID: "c-follower", Position: swarmid.Vec3{Y: 100}},
	}
	cmds := form.ComputeCommands(vehicles, "a-leader", cfg)
	if len(cmds) != 3 {
		t.Fatalf("expected 3 commands, got %d", len(cmds))
	}
}
