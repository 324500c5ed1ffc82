package ctx

import (
	"context"

	muxtool "github.com/2389-research/mux/tool"
)

// Executor is the small interface a Tool's behavior is registered by
// value against, replacing the function-valued executor field the
// source used (Design Notes §9: "a small trait/interface with one
// method execute(params) -> string, registered by value").
type Executor interface {
	Execute(params map[string]any) string
}

// ExecutorFunc adapts a plain function to Executor.
type ExecutorFunc func(params map[string]any) string

// Execute calls f.
func (f ExecutorFunc) Execute(params map[string]any) string { return f(params) }

// Tool is a named executor advertised by an agent that other agents
// may invoke, per spec §3/§4.1. Its shape mirrors the mux tool.Tool
// interface used throughout the teacher's spec/agents/tools package,
// so a Tool can be handed directly to a mux-based agent's registry.
type Tool struct {
	ToolName       string
	ToolDesc       string
	AgentID        string
	ParameterNames []string
	Exec           Executor
}

// Name returns the tool's identity within its owning agent.
func (t *Tool) Name() string { return t.ToolName }

// Description returns the free-form text DiscoverTools matches against.
func (t *Tool) Description() string { return t.ToolDesc }

// RequiresApproval reports whether invoking this tool needs human
// sign-off. Domain tools in this substrate never require approval.
func (t *Tool) RequiresApproval(_ map[string]any) bool { return false }

// InputSchema returns a minimal JSON-schema-shaped object listing the
// tool's declared parameter names, satisfying mux's SchemaProvider
// convention without committing to full JSON Schema validation.
func (t *Tool) InputSchema() map[string]any {
	props := make(map[string]any, len(t.ParameterNames))
	for _, p := range t.ParameterNames {
		props[p] = map[string]any{"type": "string"}
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   []any{},
	}
}

// Execute runs the tool's executor and wraps the output in a mux
// tool.Result, matching the convention every domain tool in the
// teacher repo follows (e.g. read_state.go's tool.NewResult call).
func (t *Tool) Execute(_ context.Context, params map[string]any) (*muxtool.Result, error) {
	if t.Exec == nil {
		return muxtool.NewResult(t.ToolName, false, "", "no executor registered"), nil
	}
	output := t.Exec.Execute(params)
	return muxtool.NewResult(t.ToolName, true, output, ""), nil
}

// toolKey identifies a tool uniquely within the registry: (agent_id, name).
type toolKey struct {
	agentID string
	name    string
}
