package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vacco-oss/nativestage/internal/config"
	"github.com/vacco-oss/nativestage/internal/loader"
)

var (
	extractFrom string
	extractTo   string
)

func init() {
	extractCmd.Flags().StringVar(&extractFrom, "from", "", "Resource tree to extract from (default: the project's resources directory)")
	extractCmd.Flags().StringVar(&extractTo, "to", "", "Directory for the extracted library (default: system temp dir)")
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract the host's native library from a resource tree",
	Long: `Resolve the library for this host in a packaged resource tree and copy it to a
temporary file, the way the runtime loader does before loading it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from := extractFrom
		if from == "" {
			p, err := loadProject()
			if err != nil {
				return err
			}
			from = p.abs(p.manifest.ResourcesDir)
		}
		if extractTo != "" {
			if err := os.MkdirAll(extractTo, 0755); err != nil {
				return fmt.Errorf("creating %s: %w", extractTo, err)
			}
		}

		osName, arch := config.HostPlatform(settings)
		x := &loader.Extractor{
			Resources: os.DirFS(from),
			OS:        osName,
			Arch:      arch,
			TempDir:   extractTo,
		}
		path, err := x.Extract()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}
