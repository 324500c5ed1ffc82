package dec

import (
	"math"
	"sort"

	"github.com/nervosys/autonomysim-swarmcore/internal/swarmid"
)

// CreateTask records a new pending Task, assigning an ID if t.ID is
// blank.
func (e *Engine) CreateTask(t Task) (string, bool) {
	id, err := e.createTask(t)
	if err != nil {
		e.logger.Printf("component=dec action=create_task error=%q", err)
		return "", false
	}
	e.logger.Printf("component=dec action=create_task task_id=%s priority=%v", id, t.Priority)
	return id, true
}

func (e *Engine) createTask(t Task) (string, error) {
	if !e.running.Load() {
		return "", ErrNotRunning
	}
	if t.Description == "" {
		return "", ErrInvalidArgument
	}
	if t.ID == "" {
		t.ID = swarmid.Generate("task")
	}
	t.Status = TaskPending

	e.taskMu.Lock()
	defer e.taskMu.Unlock()
	if _, exists := e.tasks[t.ID]; exists {
		return "", ErrDuplicateID
	}
	stored := t
	stored.RequiredCapabilities = append([]string(nil), t.RequiredCapabilities...)
	e.tasks[t.ID] = &stored
	return t.ID, nil
}

// UpdateTaskStatus transitions a task to status. failed transitions
// are caller-driven only — the engine never auto-fails a task (spec
// §4.4).
func (e *Engine) UpdateTaskStatus(id string, status TaskStatus) bool {
	if err := e.updateTaskStatus(id, status); err != nil {
		e.logger.Printf("component=dec action=update_task_status task_id=%s error=%q", id, err)
		return false
	}
	return true
}

func (e *Engine) updateTaskStatus(id string, status TaskStatus) error {
	e.taskMu.Lock()
	defer e.taskMu.Unlock()
	t, ok := e.tasks[id]
	if !ok {
		return ErrTaskNotFound
	}
	t.Status = status
	return nil
}

// UpdateTaskCompletion sets a task's fractional completion.
func (e *Engine) UpdateTaskCompletion(id string, completion swarmid.Scalar) bool {
	if err := e.updateTaskCompletion(id, completion); err != nil {
		e.logger.Printf("component=dec action=update_task_completion task_id=%s error=%q", id, err)
		return false
	}
	return true
}

func (e *Engine) updateTaskCompletion(id string, completion swarmid.Scalar) error {
	e.taskMu.Lock()
	defer e.taskMu.Unlock()
	t, ok := e.tasks[id]
	if !ok {
		return ErrTaskNotFound
	}
	t.Completion = completion
	return nil
}

func cloneTask(t *Task) Task {
	out := *t
	out.RequiredCapabilities = append([]string(nil), t.RequiredCapabilities...)
	out.AssignedAgents = append([]string(nil), t.AssignedAgents...)
	return out
}

// GetTask returns a copy of the stored task for id.
func (e *Engine) GetTask(id string) (Task, bool) {
	e.taskMu.Lock()
	defer e.taskMu.Unlock()
	t, ok := e.tasks[id]
	if !ok {
		return Task{}, false
	}
	return cloneTask(t), true
}

// GetAllTasks returns a copy of every task, sorted by ID.
func (e *Engine) GetAllTasks() []Task {
	e.taskMu.Lock()
	defer e.taskMu.Unlock()
	out := make([]Task, 0, len(e.tasks))
	for _, t := range e.tasks {
		out = append(out, cloneTask(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// fitness computes the task-allocation score from spec §4.4. It
// returns 0 when the agent lacks any required capability.
func fitness(agent *AgentState, t *Task) swarmid.Scalar {
	var capSum swarmid.Scalar
	for _, req := range t.RequiredCapabilities {
		v, ok := agent.Capabilities[req]
		if !ok {
			return 0
		}
		capSum += v
	}
	distance := agent.Position.Sub(t.Location).Norm()
	distanceTerm := 1 / (1 + 0.01*distance)
	workloadTerm := 1 / (1 + swarmid.Scalar(len(agent.AssignedTasks)))
	return capSum * distanceTerm * agent.Energy * workloadTerm
}

// AllocateTasks runs the fitness-based allocation pass from spec
// §4.4 once: every pending task is assigned to its single
// highest-fitness agent (ties broken by lexicographically smallest
// agent ID), provided that agent's fitness is strictly positive. ORCH
// invokes this once per update(dt) tick.
func (e *Engine) AllocateTasks() {
	if !e.running.Load() {
		return
	}

	e.agentMu.Lock()
	e.taskMu.Lock()
	defer e.taskMu.Unlock()
	defer e.agentMu.Unlock()

	agentIDs := make([]string, 0, len(e.agents))
	for id := range e.agents {
		agentIDs = append(agentIDs, id)
	}
	sort.Strings(agentIDs)

	taskIDs := make([]string, 0, len(e.tasks))
	for id, t := range e.tasks {
		if t.Status == TaskPending {
			taskIDs = append(taskIDs, id)
		}
	}
	sort.Strings(taskIDs)

	for _, taskID := range taskIDs {
		t := e.tasks[taskID]
		var best *AgentState
		var bestFitness swarmid.Scalar = math.Inf(-1)
		for _, agentID := range agentIDs {
			a := e.agents[agentID]
			f := fitness(a, t)
			if f <= 0 {
				continue
			}
			if best == nil || f > bestFitness {
				best = a
				bestFitness = f
			}
		}
		if best == nil {
			continue
		}
		t.Status = TaskAssigned
		t.AssignedAgents = append(t.AssignedAgents, best.ID)
		best.AssignedTasks = append(best.AssignedTasks, t.ID)
		e.logger.Printf("component=dec action=allocate_task task_id=%s agent_id=%s fitness=%v", t.ID, best.ID, bestFitness)
	}
}
