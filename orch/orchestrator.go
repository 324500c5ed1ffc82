// Package orch implements the ORCH facade: the top-level swarm
// orchestrator that composes CTX, MSG, DEC, and FORM, owns the
// Mission table, and drives the single cooperative tick described in
// spec §5.
package orch

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/nervosys/autonomysim-swarmcore/ctx"
	"github.com/nervosys/autonomysim-swarmcore/dec"
	"github.com/nervosys/autonomysim-swarmcore/form"
	"github.com/nervosys/autonomysim-swarmcore/internal/swarmid"
	"github.com/nervosys/autonomysim-swarmcore/msg"
)

// Orchestrator is the ORCH subsystem's public surface. Lock
// acquisition follows spec §5's hierarchy: stateMu > missionMu. ORCH
// may hold one of its own locks while calling into DEC, MSG, or CTX
// (Reset holds stateMu while resetting the subsystems;
// updateMissionProgress holds missionMu while reading DEC tasks), but
// the subsystems never call back into ORCH, so the full chain
// ORCH.state > ORCH.missions > ORCH.agents > DEC.* > MSG.* > CTX.* is
// respected.
type Orchestrator struct {
	logger  *log.Logger
	running atomic.Bool

	stateMu       sync.Mutex
	cfg           Config
	formationCfg  form.Config
	formationLead string
	nowMS         int64

	missionMu sync.Mutex
	missions  map[string]*Mission

	ctx *ctx.Registry
	msg *msg.Bus
	dec *dec.Engine
}

// New constructs an Orchestrator with the given logger (nil selects
// log.Default()). Call Initialize before Start.
func New(logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{
		logger:   logger,
		missions: make(map[string]*Mission),
	}
}

// Initialize wires cfg into fresh CTX/MSG/DEC subsystems and records
// the formation configuration. It may be called again after Reset to
// reconfigure the orchestrator.
func (o *Orchestrator) Initialize(cfg Config) bool {
	o.stateMu.Lock()
	defer o.stateMu.Unlock()

	o.cfg = cfg
	o.formationCfg = cfg.FORM
	o.ctx = ctx.NewRegistry(cfg.CTX, o.logger)
	o.msg = msg.NewBus(cfg.MSG, o.logger)
	o.dec = dec.NewEngine(cfg.DEC, o.logger)
	o.logger.Printf("component=orch action=initialize min_agents=%d max_agents=%d", cfg.Swarm.MinAgents, cfg.Swarm.MaxAgents)
	return true
}

// Start transitions every subsystem, and the orchestrator itself, into
// the running state. Calling Start before Initialize is a programming
// error and panics, matching spec §7's only panic-worthy condition.
func (o *Orchestrator) Start() bool {
	o.stateMu.Lock()
	if o.ctx == nil || o.msg == nil || o.dec == nil {
		o.stateMu.Unlock()
		panic("orch: Start called before Initialize")
	}
	o.stateMu.Unlock()

	o.ctx.Start()
	o.msg.Start()
	o.dec.Start()
	o.running.Store(true)
	o.logger.Printf("component=orch action=start")
	return true
}

// Stop transitions running to false across the orchestrator and every
// subsystem; mutating APIs begin rejecting work.
func (o *Orchestrator) Stop() {
	o.running.Store(false)
	o.ctx.Stop()
	o.msg.Stop()
	o.dec.Stop()
	o.logger.Printf("component=orch action=stop")
}

// Running reports whether the orchestrator currently accepts ticks
// and mutations.
func (o *Orchestrator) Running() bool { return o.running.Load() }

// Reset stops the orchestrator, drops every subsystem's state, and
// clears the Mission table. Callers must Initialize again before the
// next Start.
func (o *Orchestrator) Reset() {
	o.Stop()

	o.stateMu.Lock()
	if o.ctx != nil {
		o.ctx.Reset()
	}
	if o.msg != nil {
		o.msg.Reset()
	}
	if o.dec != nil {
		o.dec.Reset()
	}
	o.nowMS = 0
	o.formationLead = ""
	o.stateMu.Unlock()

	o.missionMu.Lock()
	o.missions = make(map[string]*Mission)
	o.missionMu.Unlock()

	o.logger.Printf("component=orch action=reset")
}

// Update advances the swarm by one tick of dt seconds: it runs task
// allocation, distributed-decision finalization, role reassignment,
// emergent-behavior detection, and background sweeps, in that order,
// per the single cooperative tick described in spec §5.
func (o *Orchestrator) Update(dt swarmid.Scalar) bool {
	if !o.running.Load() {
		return false
	}

	o.stateMu.Lock()
	o.nowMS += int64(dt * 1000)
	now := o.nowMS
	o.stateMu.Unlock()

	tickID := uuid.NewString()
	o.logger.Printf("component=orch action=tick tick_id=%s dt=%v now=%d", tickID, dt, now)

	o.dec.AllocateTasks()
	o.dec.TickDistributedDecisions()
	o.dec.ReassignRoles()
	o.dec.DetectEmergentBehaviors(now)
	o.msg.SweepExpiredProposals()
	o.msg.InvalidateStalePeers(now)

	o.updateMissionProgress()
	o.logger.Printf("component=orch action=tick_complete tick_id=%s", tickID)
	return true
}

func (o *Orchestrator) now() int64 {
	o.stateMu.Lock()
	defer o.stateMu.Unlock()
	return o.nowMS
}
