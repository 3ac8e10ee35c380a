package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vacco-oss/nativestage/internal/stage"
)

func init() {
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(cleanCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check staged libraries against the staging record and the project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject()
		if err != nil {
			return err
		}
		plan, err := p.plan()
		if err != nil {
			return err
		}
		rec, err := stage.VerifyPlan(plan)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "OK: %d native libraries match run %s (%s profile, staged %s)\n",
			len(rec.Entries), rec.RunID, rec.Profile, rec.StagedAt.Format("2006-01-02 15:04:05 MST"))
		return nil
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove staged native libraries and the staging record",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject()
		if err != nil {
			return err
		}
		plan, err := p.plan()
		if err != nil {
			return err
		}
		if err := stage.Clean(plan); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed staged libraries from %s\n", p.rel(plan.Layout.NativeRoot()))
		return nil
	},
}
