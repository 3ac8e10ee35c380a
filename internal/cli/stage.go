package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vacco-oss/nativestage/internal/config"
	"github.com/vacco-oss/nativestage/internal/stage"
)

var (
	stageProfile string
	printer      = message.NewPrinter(language.English)
)

func init() {
	stageCmd.Flags().StringVar(&stageProfile, "profile", "", "Staging profile: cross or host (overrides the manifest)")
	rootCmd.AddCommand(stageCmd)
}

var stageCmd = &cobra.Command{
	Use:     "stage",
	Aliases: []string{"copyNativeLibraries"},
	Short:   "Copy prebuilt native libraries into the resource tree",
	Long: `Copy the prebuilt native libraries for every target into <resources>/native.

The cross profile copies build/lib/<os-arch>/<lib> to native/<os-arch>/<lib> for
every configured target. The host profile resolves the library filename from the
host OS and copies build/lib/<lib> to native/<lib>.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if stageProfile != "" {
			settings.Set(config.KeyProfile, stageProfile)
		}
		p, err := loadProject()
		if err != nil {
			return err
		}
		plan, err := p.plan()
		if err != nil {
			return err
		}

		rec, err := newStager(p).Run(cmd.Context(), plan)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		var total int64
		for i, e := range rec.Entries {
			fmt.Fprintf(out, "  %-12s %s\n", e.Key, p.rel(plan.Entries[i].Dest))
			total += e.Size
		}
		printer.Fprintf(out, "Staged %d native libraries (%d bytes, profile %s)\n", len(rec.Entries), total, rec.Profile)
		return nil
	},
}

func newStager(p *project) *stage.Stager {
	return stage.New(stage.WithLogger(logr), stage.WithVersion(p.manifest.Version))
}
