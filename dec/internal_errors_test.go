package dec

import (
	"errors"
	"testing"
)

func TestAddAgent_ErrDuplicateID(t *testing.T) {
	e := NewEngine(NewDefaultConfig(), nil)
	e.Start()
	if err := e.addAgent(AgentState{ID: "a1"}); err != nil {
		t.Fatalf("expected first add to succeed, got %v", err)
	}
	if err := e.addAgent(AgentState{ID: "a1"}); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestAddAgent_ErrAgentCapacity(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.MaxAgents = 1
	e := NewEngine(cfg, nil)
	e.Start()
	e.addAgent(AgentState{ID: "a1"})
	if err := e.addAgent(AgentState{ID: "a2"}); !errors.Is(err, ErrAgentCapacity) {
		t.Fatalf("expected ErrAgentCapacity, got %v", err)
	}
}

func TestUpdateAgent_ErrAgentNotFound(t *testing.T) {
	e := NewEngine(NewDefaultConfig(), nil)
	e.Start()
	if err := e.updateAgent(AgentState{ID: "missing"}); !errors.Is(err, ErrAgentNotFound) {
		t.Fatalf("expected ErrAgentNotFound, got %v", err)
	}
}

func TestRemoveAgent_ErrAgentNotFound(t *testing.T) {
	e := NewEngine(NewDefaultConfig(), nil)
	e.Start()
	if err := e.removeAgent("missing"); !errors.Is(err, ErrAgentNotFound) {
		t.Fatalf("expected ErrAgentNotFound, got %v", err)
	}
}

func TestVoteOnDecision_ErrDecisionNotFound(t *testing.T) {
	e := NewEngine(NewDefaultConfig(), nil)
	e.Start()
	if err := e.voteOnDecision("missing", "a1", 1); !errors.Is(err, ErrDecisionNotFound) {
		t.Fatalf("expected ErrDecisionNotFound, got %v", err)
	}
}

func TestVoteOnDecision_ErrDecisionFinalized(t *testing.T) {
	e := NewEngine(NewDefaultConfig(), nil)
	e.Start()
	id, _ := e.ProposeDecision("d", ModeCentralized, []string{"a1"}, 0.5, 0)
	e.VoteOnDecision(id, "a1", 1)
	if err := e.voteOnDecision(id, "a2", 1); !errors.Is(err, ErrDecisionFinalized) {
		t.Fatalf("expected ErrDecisionFinalized, got %v", err)
	}
}

func TestCreateTask_ErrDuplicateID(t *testing.T) {
	e := NewEngine(NewDefaultConfig(), nil)
	e.Start()
	if _, err := e.createTask(Task{ID: "t1", Description: "scan"}); err != nil {
		t.Fatalf("expected first create to succeed, got %v", err)
	}
	if _, err := e.createTask(Task{ID: "t1", Description: "scan"}); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestUpdateTaskStatus_ErrTaskNotFound(t *testing.T) {
	e := NewEngine(NewDefaultConfig(), nil)
	e.Start()
	if err := e.updateTaskStatus("missing", TaskAssigned); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}
