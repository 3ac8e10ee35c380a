package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vacco-oss/nativestage/internal/config"
	"github.com/vacco-oss/nativestage/internal/platform"
)

var (
	platformOS   string
	platformArch string
	platformLib  string
)

func init() {
	platformCmd.Flags().StringVar(&platformOS, "os", "", "OS name as reported by the build environment")
	platformCmd.Flags().StringVar(&platformArch, "arch", "", "CPU architecture as reported by the build environment")
	platformCmd.Flags().StringVar(&platformLib, "library", platform.DefaultLibrary, "Library base name")
	rootCmd.AddCommand(platformCmd)
}

var platformCmd = &cobra.Command{
	Use:   "platform",
	Short: "Show the platform key and library filename for a host",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		osName, arch := config.HostPlatform(settings)
		if platformOS != "" {
			osName = platformOS
		}
		if platformArch != "" {
			arch = platformArch
		}

		file, err := platform.LibraryFileName(osName, arch, platformLib)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "os:      %s\n", osName)
		fmt.Fprintf(out, "arch:    %s\n", arch)
		if key, err := platform.Normalize(osName, arch); err == nil {
			fmt.Fprintf(out, "key:     %s\n", key)
		} else {
			fmt.Fprintf(out, "key:     (none, architecture not a cross target)\n")
		}
		fmt.Fprintf(out, "library: %s\n", file)
		return nil
	},
}
