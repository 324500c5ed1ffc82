package dec

import "sort"

// ReassignRoles recomputes every agent's Role from its energy rank,
// per spec §4.4's targets: leaders = max(1, floor(n/10)), scouts =
// floor(n/5), guardians = floor(n/10), relays = floor(n/10), remainder
// workers. A no-op when EnableDynamicRoles is off.
func (e *Engine) ReassignRoles() {
	if !e.dynamicRolesEnabled.Load() {
		return
	}

	e.agentMu.Lock()
	defer e.agentMu.Unlock()

	n := len(e.agents)
	if n == 0 {
		return
	}

	ordered := make([]*AgentState, 0, n)
	for _, a := range e.agents {
		ordered = append(ordered, a)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Energy != ordered[j].Energy {
			return ordered[i].Energy > ordered[j].Energy
		}
		return ordered[i].ID < ordered[j].ID
	})

	leaders := n / 10
	if leaders < 1 {
		leaders = 1
	}
	scouts := n / 5
	guardians := n / 10
	relays := n / 10

	idx := 0
	assign := func(count int, role Role) {
		for i := 0; i < count && idx < n; i++ {
			ordered[idx].Role = role
			idx++
		}
	}
	assign(leaders, RoleLeader)
	assign(scouts, RoleScout)
	assign(guardians, RoleGuardian)
	assign(relays, RoleRelay)
	for ; idx < n; idx++ {
		ordered[idx].Role = RoleWorker
	}

	e.logger.Printf("component=dec action=reassign_roles agents=%d leaders=%d scouts=%d guardians=%d relays=%d", n, leaders, scouts, guardians, relays)
}
