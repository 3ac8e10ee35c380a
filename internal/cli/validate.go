package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vacco-oss/nativestage/internal/branding"
	"github.com/vacco-oss/nativestage/internal/manifest"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a project manifest",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := filepath.Join(projectDir, branding.ProjectFile())
		if manifestPath != "" {
			path = manifestPath
		}
		if len(args) == 1 {
			path = args[0]
		}

		result, err := manifest.ValidateFile(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if result.Valid {
			p, err := manifest.ParseFile(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: valid (%s %s, %s profile, %d target(s))\n", path, p.Name, p.Version, p.Profile, len(p.Targets))
			return nil
		}
		fmt.Fprintf(out, "%s: %d issue(s)\n", path, len(result.Issues))
		for _, issue := range result.Issues {
			loc := issue.Path
			if loc == "" {
				loc = "/"
			}
			fmt.Fprintf(out, "  %s: %s (%s)\n", loc, issue.Message, issue.Keyword)
		}
		return fmt.Errorf("manifest validation failed")
	},
}
