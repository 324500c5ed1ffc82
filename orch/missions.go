package orch

import (
	"github.com/nervosys/autonomysim-swarmcore/dec"
	"github.com/nervosys/autonomysim-swarmcore/internal/swarmid"
)

// CreateMission records a new mission in state Planning, assigning an
// ID if m.ID is blank.
func (o *Orchestrator) CreateMission(m Mission) (string, bool) {
	id, err := o.createMission(m)
	if err != nil {
		o.logger.Printf("component=orch action=create_mission error=%q", err)
		return "", false
	}
	o.logger.Printf("component=orch action=create_mission mission_id=%s type=%s", id, m.Type)
	return id, true
}

func (o *Orchestrator) createMission(m Mission) (string, error) {
	if !o.running.Load() {
		return "", ErrNotRunning
	}
	if m.Description == "" {
		return "", ErrInvalidArgument
	}
	if m.ID == "" {
		m.ID = swarmid.Generate("mission")
	}
	m.State = MissionPlanning

	o.missionMu.Lock()
	defer o.missionMu.Unlock()
	if _, exists := o.missions[m.ID]; exists {
		return "", ErrInvalidArgument
	}
	stored := m
	stored.AssignedAgents = append([]string(nil), m.AssignedAgents...)
	stored.Tasks = append([]string(nil), m.Tasks...)
	o.missions[m.ID] = &stored
	return m.ID, nil
}

// transitionMission moves a mission from any of froms into to,
// rejecting the call if the mission is missing or not currently in
// one of froms.
func (o *Orchestrator) transitionMission(id string, to MissionState, froms ...MissionState) bool {
	if err := o.transitionMissionErr(id, to, froms...); err != nil {
		o.logger.Printf("component=orch action=transition_mission mission_id=%s to=%s error=%q", id, to, err)
		return false
	}
	return true
}

func (o *Orchestrator) transitionMissionErr(id string, to MissionState, froms ...MissionState) error {
	o.missionMu.Lock()
	defer o.missionMu.Unlock()
	m, ok := o.missions[id]
	if !ok {
		return ErrMissionNotFound
	}
	allowed := false
	for _, f := range froms {
		if m.State == f {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrInvalidMissionTransition
	}
	m.State = to
	return nil
}

// StartMission moves a Planning mission to Executing.
func (o *Orchestrator) StartMission(id string) bool {
	ok := o.transitionMission(id, MissionExecuting, MissionPlanning)
	if ok {
		o.logger.Printf("component=orch action=start_mission mission_id=%s", id)
	}
	return ok
}

// PauseMission moves an Executing mission to Paused.
func (o *Orchestrator) PauseMission(id string) bool {
	return o.transitionMission(id, MissionPaused, MissionExecuting)
}

// ResumeMission moves a Paused mission back to Executing.
func (o *Orchestrator) ResumeMission(id string) bool {
	return o.transitionMission(id, MissionExecuting, MissionPaused)
}

// AbortMission moves a Planning, Executing, or Paused mission to
// Aborted.
func (o *Orchestrator) AbortMission(id string) bool {
	ok := o.transitionMission(id, MissionAborted, MissionPlanning, MissionExecuting, MissionPaused)
	if ok {
		o.logger.Printf("component=orch action=abort_mission mission_id=%s", id)
	}
	return ok
}

func cloneMission(m *Mission) Mission {
	out := *m
	out.AssignedAgents = append([]string(nil), m.AssignedAgents...)
	out.Tasks = append([]string(nil), m.Tasks...)
	params := make(map[string]any, len(m.Parameters))
	for k, v := range m.Parameters {
		params[k] = v
	}
	out.Parameters = params
	return out
}

// GetMission returns a copy of the stored mission for id.
func (o *Orchestrator) GetMission(id string) (Mission, bool) {
	o.missionMu.Lock()
	defer o.missionMu.Unlock()
	m, ok := o.missions[id]
	if !ok {
		return Mission{}, false
	}
	return cloneMission(m), true
}

// GetActiveMissions returns every mission not in a terminal state
// (Completed, Failed, Aborted).
func (o *Orchestrator) GetActiveMissions() []Mission {
	o.missionMu.Lock()
	defer o.missionMu.Unlock()
	out := make([]Mission, 0, len(o.missions))
	for _, m := range o.missions {
		switch m.State {
		case MissionCompleted, MissionFailed, MissionAborted:
			continue
		}
		out = append(out, cloneMission(m))
	}
	return out
}

// updateMissionProgress recomputes each Executing mission's
// completion from the fraction of its tasks DEC reports as completed,
// marking the mission Completed once every task is done. Tasks with
// no DEC record are treated as not yet complete.
func (o *Orchestrator) updateMissionProgress() {
	o.missionMu.Lock()
	defer o.missionMu.Unlock()

	for _, m := range o.missions {
		if m.State != MissionExecuting || len(m.Tasks) == 0 {
			continue
		}
		var doneCount int
		var completionSum swarmid.Scalar
		for _, taskID := range m.Tasks {
			t, ok := o.dec.GetTask(taskID)
			if !ok {
				continue
			}
			completionSum += t.Completion
			if t.Status == dec.TaskCompleted {
				doneCount++
			}
		}
		m.Completion = completionSum / swarmid.Scalar(len(m.Tasks))
		if doneCount == len(m.Tasks) {
			m.State = MissionCompleted
		}
	}
}
