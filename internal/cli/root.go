package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vacco-oss/nativestage/internal/branding"
	"github.com/vacco-oss/nativestage/internal/config"
	"github.com/vacco-oss/nativestage/internal/logger"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	configPath   string
	projectDir   string
	manifestPath string
	verbose      bool

	settings *viper.Viper
	logr     *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` copies prebuilt native libraries into the resource tree a package
is assembled from, verifies the staged tree, and runs the packaging steps
that depend on it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		settings = config.New(configPath)
		logr = logger.New(logger.Config{
			Level:  settings.GetString(config.KeyLogLevel),
			Format: settings.GetString(config.KeyLogFormat),
			Debug:  verbose,
			Out:    cmd.ErrOrStderr(),
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "User config file (default ~/"+branding.HomeDir()+"/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project", "C", ".", "Project directory")
	rootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "", "Project manifest (default <project>/"+branding.ProjectFile()+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command with build info injected via ldflags.
// SIGINT and SIGTERM cancel the running command.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
