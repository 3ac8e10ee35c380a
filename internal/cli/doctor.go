package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vacco-oss/nativestage/internal/branding"
	"github.com/vacco-oss/nativestage/internal/config"
	"github.com/vacco-oss/nativestage/internal/manifest"
	"github.com/vacco-oss/nativestage/internal/platform"
	"github.com/vacco-oss/nativestage/internal/stage"
)

var (
	checkHost      bool
	checkManifest  bool
	checkArtifacts bool
	checkStaged    bool
)

func init() {
	doctorCmd.Flags().BoolVar(&checkHost, "check-host", false, "Verify the host platform has a native library")
	doctorCmd.Flags().BoolVar(&checkManifest, "check-manifest", false, "Validate the project manifest")
	doctorCmd.Flags().BoolVar(&checkArtifacts, "check-artifacts", false, "Verify build outputs exist for every target")
	doctorCmd.Flags().BoolVar(&checkStaged, "check-staged", false, "Verify the staged tree against the staging record")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the native staging setup",
	Long:  `Run diagnostic checks on the host, the project manifest, the build outputs and the staged tree.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all := !(checkHost || checkManifest || checkArtifacts || checkStaged)
		w := cmd.OutOrStdout()

		failed := 0
		run := func(enabled bool, check func(io.Writer) bool) {
			if (all || enabled) && !check(w) {
				failed++
			}
		}
		run(checkHost, runHostCheck)
		run(checkManifest, runManifestCheck)
		run(checkArtifacts, runArtifactsCheck)
		run(checkStaged, runStagedCheck)

		if failed > 0 {
			return fmt.Errorf("%d check(s) failed", failed)
		}
		return nil
	},
}

func runHostCheck(w io.Writer) bool {
	fmt.Fprintln(w, "Host check:")
	library := platform.DefaultLibrary
	if p, err := loadProject(); err == nil {
		library = p.manifest.Library
	}
	osName, arch := config.HostPlatform(settings)
	file, err := platform.LibraryFileName(osName, arch, library)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return false
	}
	fmt.Fprintf(w, "  [ OK ] %s/%s loads %s\n", osName, arch, file)
	if _, err := platform.Normalize(osName, arch); err != nil {
		fmt.Fprintf(w, "  [WARN] %v\n", err)
	}
	return true
}

func runManifestCheck(w io.Writer) bool {
	path := manifestPath
	if path == "" {
		path = filepath.Join(projectDir, branding.ProjectFile())
	}
	fmt.Fprintf(w, "Manifest check: %s\n", path)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(w, "  [INFO] No manifest, defaults apply")
		return true
	}
	result, err := manifest.ValidateFile(path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return false
	}
	if result.Valid {
		fmt.Fprintln(w, "  [ OK ] Valid manifest")
		return true
	}
	fmt.Fprintf(w, "  [FAIL] %d validation issue(s):\n", len(result.Issues))
	for _, issue := range result.Issues {
		if issue.Path != "" {
			fmt.Fprintf(w, "    - %s: %s\n", issue.Path, issue.Message)
		} else {
			fmt.Fprintf(w, "    - %s\n", issue.Message)
		}
	}
	return false
}

func runArtifactsCheck(w io.Writer) bool {
	fmt.Fprintln(w, "Artifacts check:")
	p, plan, ok := doctorPlan(w)
	if !ok {
		return false
	}

	err := stage.CheckSources(plan)
	var missing *stage.MissingArtifactError
	switch {
	case errors.As(err, &missing):
		for _, path := range missing.Paths {
			fmt.Fprintf(w, "  [MISS] %s\n", p.rel(path))
		}
		return false
	case err != nil:
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return false
	}
	for _, e := range plan.Entries {
		fmt.Fprintf(w, "  [ OK ] %s\n", p.rel(e.Source))
	}
	return true
}

func runStagedCheck(w io.Writer) bool {
	fmt.Fprintln(w, "Staged tree check:")
	_, plan, ok := doctorPlan(w)
	if !ok {
		return false
	}

	rec, err := stage.VerifyPlan(plan)
	switch {
	case errors.Is(err, stage.ErrNotStaged):
		fmt.Fprintf(w, "  [MISS] Not staged (run `%s stage`)\n", branding.CLIName())
		return false
	case err != nil:
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return false
	}
	fmt.Fprintf(w, "  [ OK ] %d libraries match run %s\n", len(rec.Entries), rec.RunID)
	return true
}

func doctorPlan(w io.Writer) (*project, *stage.Plan, bool) {
	p, err := loadProject()
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return nil, nil, false
	}
	plan, err := p.plan()
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return nil, nil, false
	}
	return p, plan, true
}
