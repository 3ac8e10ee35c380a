package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(context.Context) error { return nil }

func task(name string, deps ...string) Task {
	return Task{Name: name, DependsOn: deps, Run: noop}
}

func TestNewGraph_Order(t *testing.T) {
	g, err := NewGraph([]Task{
		task("sourcesArchive", "copyNativeLibraries"),
		task("processResources", "copyNativeLibraries"),
		task("copyNativeLibraries", "fetchNativeLibraries"),
		task("fetchNativeLibraries"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"fetchNativeLibraries",
		"copyNativeLibraries",
		"processResources",
		"sourcesArchive",
	}, g.Names())
}

func TestNewGraph_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		tasks []Task
	}{
		{"empty", nil},
		{"unnamed", []Task{task("")}},
		{"duplicate", []Task{task("a"), task("a")}},
		{"unknown dep", []Task{task("a", "b")}},
		{"self loop", []Task{task("a", "a")}},
		{"duplicate dep", []Task{task("a"), task("b", "a", "a")}},
		{"no action", []Task{{Name: "a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGraph(tt.tasks)
			assert.ErrorIs(t, err, ErrInvalidGraph)
		})
	}
}

func TestNewGraph_Cycle(t *testing.T) {
	_, err := NewGraph([]Task{
		task("a", "c"),
		task("b", "a"),
		task("c", "b"),
		task("d"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCycleFound))
	assert.Contains(t, err.Error(), "a -> c -> b -> a")
}

func TestPlan_SelectsDependencies(t *testing.T) {
	g, err := NewGraph([]Task{
		task("stage"),
		task("resources", "stage"),
		task("sources", "stage"),
		task("unrelated"),
	})
	require.NoError(t, err)

	plan, err := g.Plan("resources")
	require.NoError(t, err)
	assert.Equal(t, []string{"stage", "resources"}, plan)

	all, err := g.Plan()
	require.NoError(t, err)
	assert.Len(t, all, 4)

	_, err = g.Plan("nope")
	assert.ErrorIs(t, err, ErrUnknownTask)
}
