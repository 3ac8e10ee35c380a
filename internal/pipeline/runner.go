package pipeline

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// TaskState is the outcome of one task in a run.
type TaskState string

const (
	StateCompleted TaskState = "completed"
	StateFailed    TaskState = "failed"
	StateSkipped   TaskState = "skipped"
)

// TaskResult records what happened to one task.
type TaskResult struct {
	Name     string
	State    TaskState
	Duration time.Duration
	Err      error
}

// Result lists task outcomes in execution order.
type Result struct {
	Tasks []TaskResult
}

// State returns the recorded state of name, or "" if it was not part of the run.
func (r *Result) State(name string) TaskState {
	for _, t := range r.Tasks {
		if t.Name == name {
			return t.State
		}
	}
	return ""
}

// Runner executes a Graph.
type Runner struct {
	graph *Graph
	log   log.FieldLogger
}

// NewRunner creates a Runner for g. A nil logger uses the standard logrus logger.
func NewRunner(g *Graph, l log.FieldLogger) *Runner {
	if l == nil {
		l = log.StandardLogger()
	}
	return &Runner{graph: g, log: l}
}

// Run executes targets and their dependencies. The returned Result is
// always populated, even when err is non-nil. err is a *TaskError when a
// task fails, wrapping the task's own error.
func (r *Runner) Run(ctx context.Context, targets ...string) (*Result, error) {
	plan, err := r.graph.Plan(targets...)
	if err != nil {
		return &Result{}, err
	}

	res := &Result{Tasks: make([]TaskResult, 0, len(plan))}
	states := make(map[string]TaskState, len(plan))
	var runErr error

	for _, name := range plan {
		task := r.graph.tasks[name]

		if runErr == nil {
			if err := ctx.Err(); err != nil {
				runErr = &TaskError{Task: name, Err: err}
			}
		}
		if runErr != nil || !depsCompleted(task, states) {
			states[name] = StateSkipped
			res.Tasks = append(res.Tasks, TaskResult{Name: name, State: StateSkipped})
			continue
		}

		entry := r.log.WithField("task", name)
		entry.Debug("task started")
		start := time.Now()
		err := task.Run(ctx)
		elapsed := time.Since(start)

		if err != nil {
			states[name] = StateFailed
			res.Tasks = append(res.Tasks, TaskResult{Name: name, State: StateFailed, Duration: elapsed, Err: err})
			entry.WithError(err).Error("task failed")
			runErr = &TaskError{Task: name, Err: err}
			continue
		}

		states[name] = StateCompleted
		res.Tasks = append(res.Tasks, TaskResult{Name: name, State: StateCompleted, Duration: elapsed})
		entry.WithField("duration", elapsed.Round(time.Millisecond)).Info("task completed")
	}

	return res, runErr
}

func depsCompleted(t *Task, states map[string]TaskState) bool {
	for _, dep := range t.DependsOn {
		if states[dep] != StateCompleted {
			return false
		}
	}
	return true
}

// String renders a one-line summary, e.g. "3 completed, 1 failed, 2 skipped".
func (r *Result) String() string {
	var done, failed, skipped int
	for _, t := range r.Tasks {
		switch t.State {
		case StateCompleted:
			done++
		case StateFailed:
			failed++
		case StateSkipped:
			skipped++
		}
	}
	return fmt.Sprintf("%d completed, %d failed, %d skipped", done, failed, skipped)
}
