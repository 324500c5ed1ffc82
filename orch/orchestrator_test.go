package orch_test

import (
	"testing"

	"github.com/nervosys/autonomysim-swarmcore/dec"
	"github.com/nervosys/autonomysim-swarmcore/internal/swarmid"
	"github.com/nervosys/autonomysim-swarmcore/orch"
)

func newRunningOrchestrator(t *testing.T) *orch.Orchestrator {
	t.Helper()
	o := orch.New(nil)
	if !o.Initialize(orch.NewDefaultConfig()) {
		t.Fatal("expected Initialize to succeed")
	}
	if !o.Start() {
		t.Fatal("expected Start to succeed")
	}
	return o
}

func TestStart_PanicsBeforeInitialize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Start before Initialize to panic")
		}
	}()
	orch.New(nil).Start()
}

func TestAddAgent_RegistersInBothCtxAndDec(t *testing.T) {
	o := newRunningOrchestrator(t)
	ok := o.AddAgent(dec.AgentState{
		ID:           "a1",
		Energy:       1,
		Capabilities: map[string]swarmid.Scalar{"sensing": 0.9},
	})
	if !ok {
		t.Fatal("expected AddAgent to succeed")
	}
	if o.GetAgentCount() != 1 {
		t.Fatalf("expected agent count 1, got %d", o.GetAgentCount())
	}
	caps := o.AssessSwarmCapabilities()
	if caps["sensing"] != 0.9 {
		t.Fatalf("expected aggregated sensing capability 0.9, got %v", caps["sensing"])
	}
}

func TestRemoveAgent_DropsFromCount(t *testing.T) {
	o := newRunningOrchestrator(t)
	o.AddAgent(dec.AgentState{ID: "a1"})
	if !o.RemoveAgent("a1") {
		t.Fatal("expected RemoveAgent to succeed")
	}
	if o.GetAgentCount() != 0 {
		t.Fatalf("expected agent count 0 after removal, got %d", o.GetAgentCount())
	}
}

func TestMissionLifecycle(t *testing.T) {
	o := newRunningOrchestrator(t)
	id, ok := o.CreateMission(orch.Mission{Description: "scout area"})
	if !ok {
		t.Fatal("expected CreateMission to succeed")
	}
	m, _ := o.GetMission(id)
	if m.State != orch.MissionPlanning {
		t.Fatalf("expected new mission in Planning, got %s", m.State)
	}

	if !o.StartMission(id) {
		t.Fatal("expected StartMission to succeed")
	}
	if !o.PauseMission(id) {
		t.Fatal("expected PauseMission to succeed")
	}
	if !o.ResumeMission(id) {
		t.Fatal("expected ResumeMission to succeed")
	}
	if !o.AbortMission(id) {
		t.Fatal("expected AbortMission to succeed")
	}

	active := o.GetActiveMissions()
	for _, am := range active {
		if am.ID == id {
			t.Fatal("expected aborted mission to be excluded from active missions")
		}
	}
}

func TestMissionLifecycle_RejectsInvalidTransition(t *testing.T) {
	o := newRunningOrchestrator(t)
	id, _ := o.CreateMission(orch.Mission{Description: "scout area"})
	if o.PauseMission(id) {
		t.Fatal("expected PauseMission to reject a mission still in Planning")
	}
}

func TestUpdate_SwarmStateAfterTick(t *testing.T) {
	o := newRunningOrchestrator(t)
	o.AddAgent(dec.AgentState{
		ID:           "S1",
		Position:     swarmid.Vec3{X: 1},
		Energy:       1,
		Capabilities: map[string]swarmid.Scalar{"sensing": 0.9},
	})

	o.Update(0.1)

	state := o.GetSwarmState()
	if !state.Running {
		t.Fatal("expected swarm state to report running")
	}
	if state.AgentCount != 1 {
		t.Fatalf("expected agent count 1, got %d", state.AgentCount)
	}
}

func TestGetSwarmCentroidCohesionDispersion(t *testing.T) {
	o := newRunningOrchestrator(t)
	offsets := []swarmid.Vec3{{X: 4}, {X: -4}, {Y: 4}, {Y: -4}, {}}
	for i, off := range offsets {
		id := string(rune('a' + i))
		o.AddAgent(dec.AgentState{ID: id, Position: off})
	}

	centroid := o.GetSwarmCentroid()
	if !centroid.Zero() {
		t.Fatalf("expected centroid near origin, got %v", centroid)
	}
	dispersion := o.GetSwarmDispersion()
	if dispersion < 3.5 || dispersion > 4.5 {
		t.Fatalf("expected dispersion near 4, got %v", dispersion)
	}
	// Mean distance to centroid is 16/5 = 3.2, so cohesion = 1/1.32.
	cohesion := o.GetSwarmCohesion()
	if cohesion < 0.75 || cohesion > 0.77 {
		t.Fatalf("expected cohesion near 0.758, got %v", cohesion)
	}
}

func TestReset_StopsAndClearsMissions(t *testing.T) {
	o := newRunningOrchestrator(t)
	o.CreateMission(orch.Mission{Description: "m"})
	o.Reset()
	if o.Running() {
		t.Fatal("expected orchestrator stopped after reset")
	}
	if len(o.GetActiveMissions()) != 0 {
		t.Fatal("expected no active missions after reset")
	}
}

func TestFormationCommands_FollowsLeader(t *testing.T) {
	o := newRunningOrchestrator(t)
	o.AddAgent(dec.AgentState{ID: "leader", Position: swarmid.Vec3{}})
	o.AddAgent(dec.AgentState{ID: "follower", Position: swarmid.Vec3{X: 1000}})
	o.SetFormationLeader("leader")

	cmds := o.GetFormationCommands()
	if len(cmds) != 2 {
		t.Fatalf("expected 2 formation commands, got %d", len(cmds))
	}
}
