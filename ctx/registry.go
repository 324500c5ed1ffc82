// Package ctx implements the CTX subsystem: a context/tool/resource
// registry (the spec's "MCP" layer). It is a passive, single-writer-
// friendly associative store with no outbound dependencies on the
// other subsystems — every cross-subsystem reference elsewhere in the
// module is by ID, never by pointer into this package's tables.
package ctx

import (
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/nervosys/autonomysim-swarmcore/internal/swarmid"
)

// Registry is the CTX subsystem's public surface. Each table
// (contexts, tools, resources, registered agents) is guarded by its
// own lock per the lock hierarchy in spec §5 — ORCH.* > DEC.* > MSG.*
// > CTX.*, so CTX never needs to acquire a foreign lock.
type Registry struct {
	cfg     Config
	logger  *log.Logger
	running atomic.Bool

	contextMu sync.RWMutex
	contexts  map[string][]ContextEntry // per-agent ring, insertion order

	toolMu sync.RWMutex
	tools  map[toolKey]*Tool

	resourceMu sync.RWMutex
	resources  map[string]*Resource

	agentMu sync.RWMutex
	agents  map[string]map[string]swarmid.Scalar
}

// NewRegistry creates a Registry from cfg. logger may be nil, in which
// case log.Default() is used (Design Notes §9: pass a logging
// collaborator rather than reach for a global).
func NewRegistry(cfg Config, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{
		cfg:       cfg,
		logger:    logger,
		contexts:  make(map[string][]ContextEntry),
		tools:     make(map[toolKey]*Tool),
		resources: make(map[string]*Resource),
		agents:    make(map[string]map[string]swarmid.Scalar),
	}
}

// Start transitions the registry into the running state. Mutating
// operations reject work while not running.
func (r *Registry) Start() bool {
	r.running.Store(true)
	r.logger.Printf("component=ctx action=start server_id=%s", r.cfg.ServerID)
	return true
}

// Stop transitions running to false; all mutating APIs begin
// rejecting work.
func (r *Registry) Stop() {
	r.running.Store(false)
	r.logger.Printf("component=ctx action=stop server_id=%s", r.cfg.ServerID)
}

// Running reports whether the registry currently accepts mutations.
func (r *Registry) Running() bool { return r.running.Load() }

// Reset stops the registry and drops all state across every table.
func (r *Registry) Reset() {
	r.Stop()

	r.contextMu.Lock()
	r.contexts = make(map[string][]ContextEntry)
	r.contextMu.Unlock()

	r.toolMu.Lock()
	r.tools = make(map[toolKey]*Tool)
	r.toolMu.Unlock()

	r.resourceMu.Lock()
	r.resources = make(map[string]*Resource)
	r.resourceMu.Unlock()

	r.agentMu.Lock()
	r.agents = make(map[string]map[string]swarmid.Scalar)
	r.agentMu.Unlock()

	r.logger.Printf("component=ctx action=reset server_id=%s", r.cfg.ServerID)
}

// PublishContext appends entry to its agent's bounded ring, evicting
// the oldest entry on overflow, then sweeps every agent's ring for
// entries more than ContextTimeoutSec older than entry's timestamp.
func (r *Registry) PublishContext(entry ContextEntry) bool {
	if err := r.publishContext(entry); err != nil {
		r.logger.Printf("component=ctx action=publish_context agent_id=%s error=%q", entry.AgentID, err)
		return false
	}
	r.logger.Printf("component=ctx action=publish_context agent_id=%s timestamp=%d", entry.AgentID, entry.TimestampMS)
	return true
}

// publishContext holds PublishContext's validated logic; it returns the
// sentinel error so callers and tests can distinguish failure reasons
// without changing PublishContext's bool contract.
func (r *Registry) publishContext(entry ContextEntry) error {
	if !r.running.Load() {
		return ErrNotRunning
	}
	if entry.AgentID == "" || entry.TimestampMS == 0 {
		return ErrInvalidArgument
	}

	cap := r.cfg.ContextBufferSize
	if cap <= 0 {
		cap = 1
	}

	r.contextMu.Lock()
	ring := append(r.contexts[entry.AgentID], entry)
	if len(ring) > cap {
		ring = ring[len(ring)-cap:]
	}
	r.contexts[entry.AgentID] = ring
	r.sweepLocked(entry.TimestampMS)
	r.contextMu.Unlock()
	return nil
}

// sweepLocked drops entries older than ContextTimeoutSec relative to
// nowMS, the timestamp of the entry being published. Callers must hold
// contextMu for writing.
func (r *Registry) sweepLocked(nowMS int64) {
	timeoutMS := int64(r.cfg.ContextTimeoutSec * 1000)
	if timeoutMS <= 0 {
		return
	}
	for agentID, ring := range r.contexts {
		kept := ring[:0:0]
		for _, e := range ring {
			if nowMS-e.TimestampMS <= timeoutMS {
				kept = append(kept, e)
			}
		}
		if len(kept) == 0 {
			delete(r.contexts, agentID)
		} else {
			r.contexts[agentID] = kept
		}
	}
}

// ContextQuery is the result of QueryContext: exactly one of Latest or
// History is populated, matching spec §4.1's either/or contract.
type ContextQuery struct {
	// Latest holds the newest entry per agent, populated when
	// QueryContext was called with an empty agent ID.
	Latest map[string]ContextEntry
	// History holds the full ring for a single agent, populated when
	// QueryContext was called with a specific agent ID.
	History []ContextEntry
}

// QueryContext returns the latest entry from every agent when agentID
// is empty, or the full per-agent ring (in insertion order) otherwise.
func (r *Registry) QueryContext(agentID string) ContextQuery {
	r.contextMu.RLock()
	defer r.contextMu.RUnlock()

	if agentID == "" {
		latest := make(map[string]ContextEntry, len(r.contexts))
		for id, ring := range r.contexts {
			if len(ring) > 0 {
				latest[id] = ring[len(ring)-1]
			}
		}
		return ContextQuery{Latest: latest}
	}

	ring := r.contexts[agentID]
	history := make([]ContextEntry, len(ring))
	copy(history, ring)
	return ContextQuery{History: history}
}

// GetLatestContext returns the most recent entry published for
// agentID, or a zero value and false if none exists.
func (r *Registry) GetLatestContext(agentID string) (ContextEntry, bool) {
	r.contextMu.RLock()
	defer r.contextMu.RUnlock()
	ring := r.contexts[agentID]
	if len(ring) == 0 {
		return ContextEntry{}, false
	}
	return ring[len(ring)-1], true
}

// GetContextHistory returns up to the last count entries published
// for agentID, oldest first. Returns an empty slice for unknown agents.
func (r *Registry) GetContextHistory(agentID string, count int) []ContextEntry {
	r.contextMu.RLock()
	defer r.contextMu.RUnlock()
	ring := r.contexts[agentID]
	if count <= 0 || count > len(ring) {
		count = len(ring)
	}
	start := len(ring) - count
	result := make([]ContextEntry, count)
	copy(result, ring[start:])
	return result
}

// RegisterTool records tool, keyed by (agent_id, name); re-registering
// the same key overwrites the prior entry.
func (r *Registry) RegisterTool(t *Tool) bool {
	if err := r.registerTool(t); err != nil {
		r.logger.Printf("component=ctx action=register_tool error=%q", err)
		return false
	}
	r.logger.Printf("component=ctx action=register_tool agent_id=%s tool=%s", t.AgentID, t.ToolName)
	return true
}

func (r *Registry) registerTool(t *Tool) error {
	if !r.running.Load() {
		return ErrNotRunning
	}
	if t == nil || t.ToolName == "" || t.AgentID == "" {
		return ErrInvalidArgument
	}
	r.toolMu.Lock()
	r.tools[toolKey{agentID: t.AgentID, name: t.ToolName}] = t
	r.toolMu.Unlock()
	return nil
}

// UnregisterAgentTools removes every tool owned by agentID. It is
// invoked as part of UnregisterAgent's cascade.
func (r *Registry) UnregisterAgentTools(agentID string) {
	r.toolMu.Lock()
	defer r.toolMu.Unlock()
	for k := range r.tools {
		if k.agentID == agentID {
			delete(r.tools, k)
		}
	}
}

// DiscoverTools returns every tool whose description contains
// capability as a case-sensitive substring; an empty capability
// matches every tool.
func (r *Registry) DiscoverTools(capability string) []*Tool {
	r.toolMu.RLock()
	defer r.toolMu.RUnlock()
	var out []*Tool
	for _, t := range r.tools {
		if capability == "" || strings.Contains(t.ToolDesc, capability) {
			out = append(out, t)
		}
	}
	return out
}

// executeToolSentinel is returned by ExecuteTool when no matching,
// executable tool is found, per spec §4.1.
const executeToolSentinel = "Error: Tool not found or not executable"

// ExecuteTool runs the first tool with the given name regardless of
// owner and returns its string output, or the sentinel string if none
// qualifies.
func (r *Registry) ExecuteTool(name string, params map[string]any) string {
	r.toolMu.RLock()
	var found *Tool
	for k, t := range r.tools {
		if k.name == name {
			found = t
			break
		}
	}
	r.toolMu.RUnlock()

	if found == nil || found.Exec == nil {
		return executeToolSentinel
	}
	return found.Exec.Execute(params)
}

// RegisterResource adds res to the resource table.
func (r *Registry) RegisterResource(res Resource) bool {
	if err := r.registerResource(res); err != nil {
		r.logger.Printf("component=ctx action=register_resource resource_id=%s error=%q", res.ID, err)
		return false
	}
	r.logger.Printf("component=ctx action=register_resource resource_id=%s type=%s capacity=%v", res.ID, res.Type, res.Capacity)
	return true
}

func (r *Registry) registerResource(res Resource) error {
	if res.ID == "" || res.Type == "" || res.Capacity <= 0 {
		return ErrInvalidArgument
	}
	res.Available = true
	r.resourceMu.Lock()
	r.resources[res.ID] = &res
	r.resourceMu.Unlock()
	return nil
}

// UnregisterResource removes a resource from the table.
func (r *Registry) UnregisterResource(id string) bool {
	if err := r.unregisterResource(id); err != nil {
		r.logger.Printf("component=ctx action=unregister_resource resource_id=%s error=%q", id, err)
		return false
	}
	return true
}

func (r *Registry) unregisterResource(id string) error {
	r.resourceMu.Lock()
	defer r.resourceMu.Unlock()
	if _, ok := r.resources[id]; !ok {
		return &ResourceNotFoundError{ResourceID: id}
	}
	delete(r.resources, id)
	return nil
}

// RequestResource increments a resource's usage counter by amount if
// doing so would not exceed capacity.
func (r *Registry) RequestResource(id, requester string, amount swarmid.Scalar) bool {
	if err := r.requestResource(id, requester, amount); err != nil {
		r.logger.Printf("component=ctx action=request_resource resource_id=%s requester=%s error=%q", id, requester, err)
		return false
	}
	res, _ := r.GetResource(id)
	r.logger.Printf("component=ctx action=request_resource resource_id=%s requester=%s amount=%v usage=%v", id, requester, amount, res.CurrentUsage)
	return true
}

func (r *Registry) requestResource(id, requester string, amount swarmid.Scalar) error {
	r.resourceMu.Lock()
	defer r.resourceMu.Unlock()
	res, ok := r.resources[id]
	if !ok {
		return &ResourceNotFoundError{ResourceID: id}
	}
	if !res.Available {
		return ErrResourceUnavail
	}
	if res.CurrentUsage+amount > res.Capacity {
		return ErrResourceOvercommit
	}
	res.CurrentUsage += amount
	return nil
}

// ReleaseResource zeroes current_usage for the named resource
// unconditionally. Per spec §9's open question, this is source-
// compatible: requests are not tracked per requester, so any caller
// may release another requester's reservation.
func (r *Registry) ReleaseResource(id, requester string) bool {
	if err := r.releaseResource(id, requester); err != nil {
		r.logger.Printf("component=ctx action=release_resource resource_id=%s requester=%s error=%q", id, requester, err)
		return false
	}
	r.logger.Printf("component=ctx action=release_resource resource_id=%s requester=%s", id, requester)
	return true
}

func (r *Registry) releaseResource(id, requester string) error {
	r.resourceMu.Lock()
	defer r.resourceMu.Unlock()
	res, ok := r.resources[id]
	if !ok {
		return &ResourceNotFoundError{ResourceID: id}
	}
	res.CurrentUsage = 0
	return nil
}

// GetResource returns a copy of the resource state for id.
func (r *Registry) GetResource(id string) (Resource, bool) {
	r.resourceMu.RLock()
	defer r.resourceMu.RUnlock()
	res, ok := r.resources[id]
	if !ok {
		return Resource{}, false
	}
	return *res, true
}

// RegisterAgent adds id to the registered-agent set with its declared
// capabilities, rejecting registration once at capacity.
func (r *Registry) RegisterAgent(id string, capabilities map[string]swarmid.Scalar) bool {
	if err := r.registerAgent(id, capabilities); err != nil {
		r.logger.Printf("component=ctx action=register_agent agent_id=%s error=%q", id, err)
		return false
	}
	return true
}

func (r *Registry) registerAgent(id string, capabilities map[string]swarmid.Scalar) error {
	if !r.running.Load() {
		return ErrNotRunning
	}
	if id == "" {
		return ErrInvalidArgument
	}
	r.agentMu.Lock()
	defer r.agentMu.Unlock()
	if _, exists := r.agents[id]; !exists && uint32(len(r.agents)) >= r.cfg.MaxAgents {
		return ErrCapacityExceeded
	}
	capCopy := make(map[string]swarmid.Scalar, len(capabilities))
	for k, v := range capabilities {
		capCopy[k] = v
	}
	r.agents[id] = capCopy
	return nil
}

// UnregisterAgent drops id from the registered-agent set, its context
// ring, and every tool it owns.
func (r *Registry) UnregisterAgent(id string) bool {
	r.agentMu.Lock()
	_, existed := r.agents[id]
	delete(r.agents, id)
	r.agentMu.Unlock()

	r.contextMu.Lock()
	delete(r.contexts, id)
	r.contextMu.Unlock()

	r.UnregisterAgentTools(id)
	return existed
}

// AgentCapabilities returns the capabilities registered for id.
func (r *Registry) AgentCapabilities(id string) (map[string]swarmid.Scalar, bool) {
	r.agentMu.RLock()
	defer r.agentMu.RUnlock()
	caps, ok := r.agents[id]
	if !ok {
		return nil, false
	}
	out := make(map[string]swarmid.Scalar, len(caps))
	for k, v := range caps {
		out[k] = v
	}
	return out, true
}

// AgentCount returns the number of agents in the registered-agent set.
func (r *Registry) AgentCount() int {
	r.agentMu.RLock()
	defer r.agentMu.RUnlock()
	return len(r.agents)
}
