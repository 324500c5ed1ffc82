package orch_test

import (
	"bytes"
	"testing"

	"github.com/nervosys/autonomysim-swarmcore/orch"
)

func TestConfig_YAMLRoundTrip(t *testing.T) {
	cfg := orch.NewDefaultConfig()
	cfg.Swarm.MaxAgents = 42
	cfg.DEC.ConsensusThreshold = 0.9

	data, err := orch.MarshalConfigYAML(cfg)
	if err != nil {
		t.Fatalf("expected marshal to succeed, got %v", err)
	}

	got, err := orch.UnmarshalConfigYAML(data)
	if err != nil {
		t.Fatalf("expected unmarshal to succeed, got %v", err)
	}
	if got.Swarm.MaxAgents != 42 {
		t.Fatalf("expected max_agents 42 to round-trip, got %d", got.Swarm.MaxAgents)
	}
	if got.DEC.ConsensusThreshold != 0.9 {
		t.Fatalf("expected consensus_threshold 0.9 to round-trip, got %v", got.DEC.ConsensusThreshold)
	}
}

func TestConfig_YAMLRoundTrip_UsesSnakeCaseKeys(t *testing.T) {
	cfg := orch.NewDefaultConfig()
	data, err := orch.MarshalConfigYAML(cfg)
	if err != nil {
		t.Fatalf("expected marshal to succeed, got %v", err)
	}
	if !bytes.Contains(data, []byte("max_agents")) || !bytes.Contains(data, []byte("update_rate_hz")) {
		t.Fatalf("expected snake_case swarm keys in output, got:\n%s", data)
	}
}
