package cli

import (
	"context"
	"fmt"

	"github.com/vacco-oss/nativestage/internal/fetch"
	"github.com/vacco-oss/nativestage/internal/packager"
	"github.com/vacco-oss/nativestage/internal/pipeline"
	"github.com/vacco-oss/nativestage/internal/platform"
	"github.com/vacco-oss/nativestage/internal/stage"
)

// Task names match the Gradle tasks of the same role.
const (
	taskFetch            = "fetchNativeLibraries"
	taskStage            = "copyNativeLibraries"
	taskProcessResources = "processResources"
	taskSourcesArchive   = "sourcesArchive"
)

// buildGraph wires the staging and packaging steps for p. Staging is a
// dependency of both packaging steps; fetching is only added when a mirror
// is configured for the cross profile.
func buildGraph(p *project) (*pipeline.Graph, error) {
	plan, err := p.plan()
	if err != nil {
		return nil, err
	}
	pk := packager.New(p.dir, p.manifest, logr)

	stageTask := pipeline.Task{
		Name:        taskStage,
		Description: "Copy prebuilt native libraries into the resource tree",
		Run: func(ctx context.Context) error {
			_, err := newStager(p).Run(ctx, plan)
			return err
		},
	}

	var tasks []pipeline.Task
	if p.manifest.Fetch != nil && plan.Profile == stage.ProfileCross {
		targets := make([]platform.Key, 0, len(plan.Entries))
		for _, e := range plan.Entries {
			targets = append(targets, e.Key)
		}
		baseURL := p.manifest.Fetch.BaseURL
		tasks = append(tasks, pipeline.Task{
			Name:        taskFetch,
			Description: fmt.Sprintf("Download %d native libraries from %s", len(targets), baseURL),
			Run: func(ctx context.Context) error {
				_, err := fetch.New(baseURL, fetch.WithLogger(logr)).Fetch(ctx, plan.Layout, targets)
				return err
			},
		})
		stageTask.DependsOn = []string{taskFetch}
	}

	tasks = append(tasks,
		stageTask,
		pipeline.Task{
			Name:        taskProcessResources,
			Description: "Mirror the staged resource tree into the build output",
			DependsOn:   []string{taskStage},
			Run: func(ctx context.Context) error {
				_, err := pk.ProcessResources(ctx)
				return err
			},
		},
		pipeline.Task{
			Name:        taskSourcesArchive,
			Description: "Write the sources archive including staged libraries",
			DependsOn:   []string{taskStage},
			Run: func(ctx context.Context) error {
				_, err := pk.SourcesArchive(ctx)
				return err
			},
		},
	)
	return pipeline.NewGraph(tasks)
}
