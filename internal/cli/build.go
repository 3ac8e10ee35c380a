package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vacco-oss/nativestage/internal/config"
	"github.com/vacco-oss/nativestage/internal/pipeline"
)

var (
	buildProfile string
	buildList    bool
)

func init() {
	buildCmd.Flags().StringVar(&buildProfile, "profile", "", "Staging profile: cross or host (overrides the manifest)")
	buildCmd.Flags().BoolVar(&buildList, "list", false, "List tasks in execution order without running them")
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build [task...]",
	Short: "Run staging and the packaging steps that depend on it",
	Long: `Run the named tasks and everything they depend on. With no arguments every
task runs. Packaging tasks (processResources, sourcesArchive) always run after
copyNativeLibraries and never run if it fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if buildProfile != "" {
			settings.Set(config.KeyProfile, buildProfile)
		}
		p, err := loadProject()
		if err != nil {
			return err
		}
		g, err := buildGraph(p)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if buildList {
			names, err := g.Plan(args...)
			if err != nil {
				return err
			}
			for _, name := range names {
				t, _ := g.Task(name)
				fmt.Fprintf(out, "%-22s %s\n", name, t.Description)
			}
			return nil
		}

		res, runErr := pipeline.NewRunner(g, logr).Run(cmd.Context(), args...)
		for _, t := range res.Tasks {
			fmt.Fprintf(out, "%-22s %s\n", t.Name, t.State)
		}
		if runErr != nil {
			return runErr
		}
		fmt.Fprintf(out, "BUILD SUCCESSFUL (%s)\n", res)
		return nil
	},
}
