package dec

import (
	"math"

	"github.com/nervosys/autonomysim-swarmcore/internal/swarmid"
)

// defaultBehaviorDurationMS is how long a freshly detected behavior
// remains active before GetActiveBehaviors stops returning it. The
// spec's detection formulas set strength and trigger conditions but
// leave the duration unspecified; this engine treats each detection
// tick as refreshing a rolling ten-second window, long enough to
// survive a gap between consecutive ticks at the default
// update_rate_hz of 10 without flapping.
const defaultBehaviorDurationMS = 10_000

// SwarmStats returns the centroid, RMS distance to centroid
// (dispersion), and cohesion (spec §4.4) for the given positions. It
// is exported so ORCH's snapshot queries (getSwarmCentroid,
// getSwarmCohesion, getSwarmDispersion) can reuse the same formula
// DetectEmergentBehaviors uses internally.
func SwarmStats(positions []swarmid.Vec3) (centroid swarmid.Vec3, dispersion, cohesion swarmid.Scalar) {
	n := len(positions)
	if n == 0 {
		return swarmid.Vec3{}, 0, 0
	}
	for _, p := range positions {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Scale(1 / swarmid.Scalar(n))

	var sumSq, sumDist swarmid.Scalar
	for _, p := range positions {
		d := p.Sub(centroid).Norm()
		sumSq += d * d
		sumDist += d
	}
	dispersion = swarmid.Scalar(math.Sqrt(float64(sumSq / swarmid.Scalar(n))))
	meanDist := sumDist / swarmid.Scalar(n)
	cohesion = 1 / (1 + 0.1*meanDist)
	return centroid, dispersion, cohesion
}

// DetectEmergentBehaviors scans the current agent positions for the
// two emergent patterns defined in spec §4.4 and records any that
// trigger. A no-op when EnableEmergentBehavior is off or fewer than
// three agents are registered.
func (e *Engine) DetectEmergentBehaviors(nowMS int64) []EmergentBehavior {
	if !e.emergentEnabled.Load() {
		return nil
	}

	e.agentMu.RLock()
	if len(e.agents) < 3 {
		e.agentMu.RUnlock()
		return nil
	}
	positions := make([]swarmid.Vec3, 0, len(e.agents))
	agentIDs := make([]string, 0, len(e.agents))
	for id, a := range e.agents {
		positions = append(positions, a.Position)
		agentIDs = append(agentIDs, id)
	}
	e.agentMu.RUnlock()

	_, dispersion, cohesion := SwarmStats(positions)

	var detected []EmergentBehavior
	if dispersion < 10.0 {
		detected = append(detected, EmergentBehavior{
			Type:             BehaviorAggregation,
			TriggeringAgents: append([]string(nil), agentIDs...),
			Parameters:       map[string]swarmid.Scalar{"dispersion": dispersion},
			Strength:         1 - dispersion/10,
			StartTimestampMS: nowMS,
			DurationMS:       defaultBehaviorDurationMS,
		})
	}
	if cohesion > 0.7 {
		detected = append(detected, EmergentBehavior{
			Type:             BehaviorFormation,
			TriggeringAgents: append([]string(nil), agentIDs...),
			Parameters:       map[string]swarmid.Scalar{"cohesion": cohesion},
			Strength:         cohesion,
			StartTimestampMS: nowMS,
			DurationMS:       defaultBehaviorDurationMS,
		})
	}

	if len(detected) == 0 {
		return nil
	}

	e.behaviorMu.Lock()
	for i := range detected {
		detected[i].ID = swarmid.Generate("behav")
		stored := detected[i]
		e.behaviors[stored.ID] = &stored
	}
	e.behaviorMu.Unlock()

	for _, b := range detected {
		e.logger.Printf("component=dec action=detect_behavior behavior_id=%s type=%s strength=%v", b.ID, b.Type, b.Strength)
	}
	return detected
}

// GetActiveBehaviors returns every behavior for which
// nowMS - start_timestamp < duration_ms, i.e. nowMS is before
// start_timestamp+duration_ms.
func (e *Engine) GetActiveBehaviors(nowMS int64) []EmergentBehavior {
	e.behaviorMu.Lock()
	defer e.behaviorMu.Unlock()
	out := make([]EmergentBehavior, 0, len(e.behaviors))
	for _, b := range e.behaviors {
		if nowMS-b.StartTimestampMS < b.DurationMS {
			bCopy := *b
			bCopy.TriggeringAgents = append([]string(nil), b.TriggeringAgents...)
			params := make(map[string]swarmid.Scalar, len(b.Parameters))
			for k, v := range b.Parameters {
				params[k] = v
			}
			bCopy.Parameters = params
			out = append(out, bCopy)
		}
	}
	return out
}
