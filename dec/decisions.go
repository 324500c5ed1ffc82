package dec

import "github.com/nervosys/autonomysim-swarmcore/internal/swarmid"

// ProposeDecision records a new, unfinalized SwarmDecision. mode
// defaults to the engine's configured DefaultDecisionMode when empty,
// and threshold defaults to the configured ConsensusThreshold when
// zero.
func (e *Engine) ProposeDecision(description string, mode Mode, participants []string, threshold swarmid.Scalar, nowMS int64) (string, bool) {
	if err := e.checkProposeDecision(description, participants); err != nil {
		e.logger.Printf("component=dec action=propose_decision error=%q", err)
		return "", false
	}
	if mode == "" {
		mode = e.defaultDecisionMode()
	}
	if threshold == 0 {
		threshold = e.cfg.ConsensusThreshold
	}

	id := swarmid.Generate("dec")
	d := &SwarmDecision{
		ID:                  id,
		Description:         description,
		Mode:                mode,
		ParticipatingAgents: append([]string(nil), participants...),
		Votes:               make(map[string]swarmid.Scalar),
		Threshold:           threshold,
		TimestampMS:         nowMS,
	}

	e.decisionMu.Lock()
	e.decisions[id] = d
	e.decisionMu.Unlock()

	e.logger.Printf("component=dec action=propose_decision decision_id=%s mode=%s participants=%d", id, mode, len(participants))
	return id, true
}

// checkProposeDecision validates ProposeDecision's arguments, returning
// the sentinel error so callers and tests can distinguish the reason.
func (e *Engine) checkProposeDecision(description string, participants []string) error {
	if !e.running.Load() {
		return ErrNotRunning
	}
	if description == "" || len(participants) == 0 {
		return ErrInvalidArgument
	}
	return nil
}

// VoteOnDecision records agent's confidence for decision id, then
// attempts mode-specific finalization. Voting on a finalized decision
// is rejected and leaves votes unchanged.
func (e *Engine) VoteOnDecision(id, agent string, confidence swarmid.Scalar) bool {
	if err := e.voteOnDecision(id, agent, confidence); err != nil {
		e.logger.Printf("component=dec action=vote_on_decision decision_id=%s error=%q", id, err)
		return false
	}
	return true
}

func (e *Engine) voteOnDecision(id, agent string, confidence swarmid.Scalar) error {
	e.decisionMu.Lock()
	defer e.decisionMu.Unlock()

	d, ok := e.decisions[id]
	if !ok {
		return ErrDecisionNotFound
	}
	if d.Finalized {
		return ErrDecisionFinalized
	}
	d.Votes[agent] = confidence
	e.finalizeLocked(d)
	return nil
}

// finalizeLocked applies the mode-specific finalization rule from spec
// §4.4. Callers must hold decisionMu.
func (e *Engine) finalizeLocked(d *SwarmDecision) {
	if d.Finalized {
		return
	}
	switch d.Mode {
	case ModeCentralized:
		if len(d.Votes) >= 1 {
			d.Finalized = true
			d.Outcome = OutcomeApproved
		}
	case ModeDistributed:
		d.Finalized = true
		d.Outcome = OutcomeDistributed
	default:
		// Consensus, Hierarchical, and Democratic all use the Consensus
		// rule against the decision's own Threshold; no mode has a
		// threshold of its own.
		if len(d.Votes) >= len(d.ParticipatingAgents) {
			var sum swarmid.Scalar
			for _, v := range d.Votes {
				sum += v
			}
			mean := sum / swarmid.Scalar(len(d.Votes))
			d.Finalized = true
			if mean >= d.Threshold {
				d.Outcome = OutcomeApproved
			} else {
				d.Outcome = OutcomeRejected
			}
		}
	}
}

// TickDistributedDecisions finalizes every still-open Distributed-mode
// decision. ORCH calls this once per update(dt) tick, matching the
// spec's "finalizes immediately on next tick" rule for Distributed
// mode.
func (e *Engine) TickDistributedDecisions() {
	e.decisionMu.Lock()
	defer e.decisionMu.Unlock()
	for _, d := range e.decisions {
		if !d.Finalized && d.Mode == ModeDistributed {
			e.finalizeLocked(d)
		}
	}
}

func cloneDecision(d *SwarmDecision) SwarmDecision {
	out := *d
	out.ParticipatingAgents = append([]string(nil), d.ParticipatingAgents...)
	votes := make(map[string]swarmid.Scalar, len(d.Votes))
	for k, v := range d.Votes {
		votes[k] = v
	}
	out.Votes = votes
	return out
}

// GetDecision returns a copy of the stored decision for id.
func (e *Engine) GetDecision(id string) (SwarmDecision, bool) {
	e.decisionMu.Lock()
	defer e.decisionMu.Unlock()
	d, ok := e.decisions[id]
	if !ok {
		return SwarmDecision{}, false
	}
	return cloneDecision(d), true
}

// GetActiveDecisions returns every decision not yet finalized.
func (e *Engine) GetActiveDecisions() []SwarmDecision {
	e.decisionMu.Lock()
	defer e.decisionMu.Unlock()
	out := make([]SwarmDecision, 0, len(e.decisions))
	for _, d := range e.decisions {
		if !d.Finalized {
			out = append(out, cloneDecision(d))
		}
	}
	return out
}
