package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vacco-oss/nativestage/internal/config"
	"github.com/vacco-oss/nativestage/internal/fetch"
)

var fetchURL string

func init() {
	fetchCmd.Flags().StringVar(&fetchURL, "url", "", "Mirror base URL (overrides fetch.base_url)")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download prebuilt native libraries for every cross target",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if fetchURL != "" {
			settings.Set(config.KeyFetchURL, fetchURL)
		}
		p, err := loadProject()
		if err != nil {
			return err
		}
		if p.manifest.Fetch == nil {
			return fmt.Errorf("no mirror configured: set fetch.base_url in the manifest or pass --url")
		}
		keys, err := p.manifest.TargetKeys()
		if err != nil {
			return err
		}

		paths, err := fetch.New(p.manifest.Fetch.BaseURL, fetch.WithLogger(logr)).Fetch(cmd.Context(), p.layout(), keys)
		if err != nil {
			return err
		}
		for _, path := range paths {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", p.rel(path))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Fetched %d native libraries\n", len(paths))
		return nil
	},
}
