package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vacco-oss/nativestage/internal/logger"
)

type recorder struct {
	ran []string
}

func (r *recorder) task(name string, err error, deps ...string) Task {
	return Task{
		Name:      name,
		DependsOn: deps,
		Run: func(context.Context) error {
			r.ran = append(r.ran, name)
			return err
		},
	}
}

func TestRun_DependenciesRunFirst(t *testing.T) {
	rec := &recorder{}
	g, err := NewGraph([]Task{
		rec.task("processResources", nil, "copyNativeLibraries"),
		rec.task("sourcesArchive", nil, "copyNativeLibraries"),
		rec.task("copyNativeLibraries", nil),
	})
	require.NoError(t, err)

	res, err := NewRunner(g, logger.Discard()).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"copyNativeLibraries", "processResources", "sourcesArchive"}, rec.ran)
	assert.Equal(t, "3 completed, 0 failed, 0 skipped", res.String())
}

func TestRun_FailedStagingBlocksPackaging(t *testing.T) {
	rec := &recorder{}
	boom := errors.New("missing artifact")
	g, err := NewGraph([]Task{
		rec.task("copyNativeLibraries", boom),
		rec.task("processResources", nil, "copyNativeLibraries"),
		rec.task("sourcesArchive", nil, "copyNativeLibraries"),
	})
	require.NoError(t, err)

	res, err := NewRunner(g, logger.Discard()).Run(context.Background())
	require.Error(t, err)

	var te *TaskError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "copyNativeLibraries", te.Task)
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, []string{"copyNativeLibraries"}, rec.ran)
	assert.Equal(t, StateFailed, res.State("copyNativeLibraries"))
	assert.Equal(t, StateSkipped, res.State("processResources"))
	assert.Equal(t, StateSkipped, res.State("sourcesArchive"))
}

func TestRun_StopsAfterFirstFailure(t *testing.T) {
	rec := &recorder{}
	g, err := NewGraph([]Task{
		rec.task("a", errors.New("fail")),
		rec.task("b", nil),
	})
	require.NoError(t, err)

	res, err := NewRunner(g, logger.Discard()).Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"a"}, rec.ran)
	assert.Equal(t, StateSkipped, res.State("b"))
}

func TestRun_Targets(t *testing.T) {
	rec := &recorder{}
	g, err := NewGraph([]Task{
		rec.task("stage", nil),
		rec.task("resources", nil, "stage"),
		rec.task("sources", nil, "stage"),
	})
	require.NoError(t, err)

	res, err := NewRunner(g, logger.Discard()).Run(context.Background(), "sources")
	require.NoError(t, err)
	assert.Equal(t, []string{"stage", "sources"}, rec.ran)
	assert.Equal(t, TaskState(""), res.State("resources"))
}

func TestRun_Cancelled(t *testing.T) {
	rec := &recorder{}
	g, err := NewGraph([]Task{rec.task("stage", nil)})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := NewRunner(g, logger.Discard()).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.ran)
	assert.Equal(t, StateSkipped, res.State("stage"))
}
