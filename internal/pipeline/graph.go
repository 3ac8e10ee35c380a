package pipeline

import (
	"context"
	"fmt"
	"sort"
)

// Task is one named build step.
type Task struct {
	Name        string
	Description string
	DependsOn   []string
	Run         func(ctx context.Context) error
}

// Graph is an immutable, validated set of tasks.
type Graph struct {
	tasks map[string]*Task
	order []string // topological, ties broken by name
}

// NewGraph builds and validates a Graph.
func NewGraph(tasks []Task) (*Graph, error) {
	if len(tasks) == 0 {
		return nil, invalidf("no tasks")
	}

	g := &Graph{tasks: make(map[string]*Task, len(tasks))}
	for i := range tasks {
		t := tasks[i]
		if t.Name == "" {
			return nil, invalidf("task name is required")
		}
		if _, exists := g.tasks[t.Name]; exists {
			return nil, invalidf("duplicate task name: %q", t.Name)
		}
		if t.Run == nil {
			return nil, invalidf("task %q has no action", t.Name)
		}
		g.tasks[t.Name] = &t
	}

	for _, t := range g.tasks {
		seen := make(map[string]bool, len(t.DependsOn))
		for _, dep := range t.DependsOn {
			if dep == t.Name {
				return nil, invalidf("task %q depends on itself", t.Name)
			}
			if _, ok := g.tasks[dep]; !ok {
				return nil, invalidf("task %q depends on unknown task %q", t.Name, dep)
			}
			if seen[dep] {
				return nil, invalidf("task %q lists dependency %q twice", t.Name, dep)
			}
			seen[dep] = true
		}
	}

	order, err := g.topoSort()
	if err != nil {
		return nil, err
	}
	g.order = order
	return g, nil
}

// Names returns all task names in execution order.
func (g *Graph) Names() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Task returns the task with the given name.
func (g *Graph) Task(name string) (Task, bool) {
	t, ok := g.tasks[name]
	if !ok {
		return Task{}, false
	}
	return *t, true
}

// Plan returns the execution order for targets and their transitive
// dependencies. An empty target list selects every task.
func (g *Graph) Plan(targets ...string) ([]string, error) {
	if len(targets) == 0 {
		return g.Names(), nil
	}

	needed := make(map[string]bool)
	var visit func(name string)
	visit = func(name string) {
		if needed[name] {
			return
		}
		needed[name] = true
		for _, dep := range g.tasks[name].DependsOn {
			visit(dep)
		}
	}
	for _, name := range targets {
		if _, ok := g.tasks[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTask, name)
		}
		visit(name)
	}

	plan := make([]string, 0, len(needed))
	for _, name := range g.order {
		if needed[name] {
			plan = append(plan, name)
		}
	}
	return plan, nil
}

// topoSort orders tasks with Kahn's algorithm, always picking the
// lexicographically smallest ready task. Leftover tasks form a cycle.
func (g *Graph) topoSort() ([]string, error) {
	indeg := make(map[string]int, len(g.tasks))
	dependents := make(map[string][]string, len(g.tasks))
	for name, t := range g.tasks {
		indeg[name] = len(t.DependsOn)
		for _, dep := range t.DependsOn {
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var ready []string
	for name, d := range indeg {
		if d == 0 {
			ready = append(ready, name)
		}
	}

	order := make([]string, 0, len(g.tasks))
	for len(ready) > 0 {
		sort.Strings(ready)
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)
		for _, child := range dependents[next] {
			indeg[child]--
			if indeg[child] == 0 {
				ready = append(ready, child)
			}
		}
	}

	if len(order) != len(g.tasks) {
		return nil, cycleError(g.findCycle(indeg))
	}
	return order, nil
}

// findCycle walks dependencies from any task still carrying in-degree until
// a name repeats, and returns that loop.
func (g *Graph) findCycle(indeg map[string]int) []string {
	var names []string
	for name, d := range indeg {
		if d > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	pos := make(map[string]int)
	var path []string
	cur := names[0]
	for {
		if i, ok := pos[cur]; ok {
			return append(path[i:], cur)
		}
		pos[cur] = len(path)
		path = append(path, cur)

		deps := append([]string(nil), g.tasks[cur].DependsOn...)
		sort.Strings(deps)
		for _, dep := range deps {
			if indeg[dep] > 0 {
				cur = dep
				break
			}
		}
	}
}
