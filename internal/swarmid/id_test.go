package swarmid_test

import (
	"strings"
	"testing"

	"github.com/nervosys/autonomysim-swarmcore/internal/swarmid"
)

func TestGenerate_UniqueUnderBurst(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		id := swarmid.Generate("task")
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
		if !strings.HasPrefix(id, "task_") {
			t.Fatalf("expected task_ prefix, got %s", id)
		}
	}
}

func TestGenerate_NonEmpty(t *testing.T) {
	if swarmid.Generate("x") == "" {
		t.Fatal("expected non-empty id")
	}
}
