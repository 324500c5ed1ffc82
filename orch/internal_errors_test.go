package orch

import (
	"errors"
	"testing"
)

func TestCreateMission_ErrNotRunning(t *testing.T) {
	o := New(nil)
	o.Initialize(NewDefaultConfig())
	_, err := o.createMission(Mission{Description: "scout"})
	if !errors.Is(err, ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning, got %v", err)
	}
}

func TestCreateMission_ErrInvalidArgument(t *testing.T) {
	o := New(nil)
	o.Initialize(NewDefaultConfig())
	o.Start()
	if _, err := o.createMission(Mission{}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for empty description, got %v", err)
	}
}

func TestTransitionMissionErr_ErrMissionNotFound(t *testing.T) {
	o := New(nil)
	o.Initialize(NewDefaultConfig())
	o.Start()
	err := o.transitionMissionErr("missing", MissionExecuting, MissionPlanning)
	if !errors.Is(err, ErrMissionNotFound) {
		t.Fatalf("expected ErrMissionNotFound, got %v", err)
	}
}

func TestTransitionMissionErr_ErrInvalidMissionTransition(t *testing.T) {
	o := New(nil)
	o.Initialize(NewDefaultConfig())
	o.Start()
	id, _ := o.createMission(Mission{Description: "scout"})
	err := o.transitionMissionErr(id, MissionPaused, MissionExecuting)
	if !errors.Is(err, ErrInvalidMissionTransition) {
		t.Fatalf("expected ErrInvalidMissionTransition, got %v", err)
	}
}
