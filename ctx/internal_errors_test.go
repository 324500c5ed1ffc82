package ctx

import (
	"errors"
	"testing"
)

func TestPublishContext_ErrNotRunning(t *testing.T) {
	r := NewRegistry(NewDefaultConfig(), nil)
	err := r.publishContext(ContextEntry{AgentID: "a1", TimestampMS: 1})
	if !errors.Is(err, ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning, got %v", err)
	}
}

func TestPublishContext_ErrInvalidArgument(t *testing.T) {
	r := NewRegistry(NewDefaultConfig(), nil)
	r.Start()
	if err := r.publishContext(ContextEntry{TimestampMS: 1}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for empty agent id, got %v", err)
	}
}

func TestRegisterTool_ErrNotRunning(t *testing.T) {
	r := NewRegistry(NewDefaultConfig(), nil)
	if err := r.registerTool(&Tool{ToolName: "t", AgentID: "a1"}); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning, got %v", err)
	}
}

func TestRegisterAgent_ErrCapacityExceeded(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.MaxAgents = 1
	r := NewRegistry(cfg, nil)
	r.Start()
	if err := r.registerAgent("a1", nil); err != nil {
		t.Fatalf("expected first registration to succeed, got %v", err)
	}
	if err := r.registerAgent("a2", nil); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
}

func TestRequestResource_ResourceNotFoundError(t *testing.T) {
	r := NewRegistry(NewDefaultConfig(), nil)
	r.Start()
	err := r.requestResource("missing", "req", 1)
	var notFound *ResourceNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ResourceNotFoundError, got %T: %v", err, err)
	}
	if notFound.ResourceID != "missing" {
		t.Fatalf("expected ResourceID %q, got %q", "missing", notFound.ResourceID)
	}
}

func TestRequestResource_ErrResourceOvercommit(t *testing.T) {
	r := NewRegistry(NewDefaultConfig(), nil)
	r.Start()
	r.registerResource(Resource{ID: "R", Type: "battery", Capacity: 1.0})
	if err := r.requestResource("R", "X", 0.6); err != nil {
		t.Fatalf("expected first request to succeed, got %v", err)
	}
	if err := r.requestResource("R", "X", 0.5); !errors.Is(err, ErrResourceOvercommit) {
		t.Fatalf("expected ErrResourceOvercommit, got %v", err)
	}
}

func TestReleaseResource_ResourceNotFoundError(t *testing.T) {
	r := NewRegistry(NewDefaultConfig(), nil)
	r.Start()
	err := r.releaseResource("missing", "req")
	var notFound *ResourceNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ResourceNotFoundError, got %T: %v", err, err)
	}
}

func TestUnregisterResource_ResourceNotFoundError(t *testing.T) {
	r := NewRegistry(NewDefaultConfig(), nil)
	r.Start()
	err := r.unregisterResource("missing")
	var notFound *ResourceNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ResourceNotFoundError, got %T: %v", err, err)
	}
}

func TestRegisterResource_ErrInvalidArgument(t *testing.T) {
	r := NewRegistry(NewDefaultConfig(), nil)
	r.Start()
	if err := r.registerResource(Resource{ID: "", Type: "battery", Capacity: 1}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}
