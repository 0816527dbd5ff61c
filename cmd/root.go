package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/AndyHazz/quickssh/internal/app"
	"github.com/AndyHazz/quickssh/internal/config"
	"github.com/AndyHazz/quickssh/internal/errors"
	"github.com/AndyHazz/quickssh/internal/hostfile"
	"github.com/AndyHazz/quickssh/internal/logging"
)

var (
	verbose       bool
	jsonOutput    bool
	sshConfigFlag string
	configDirFlag string
)

var rootCmd = &cobra.Command{
	Use:   "quickssh",
	Short: "Quick launcher for the hosts in your ssh config",
	Long: `quickssh lists, organizes and connects to the hosts in ~/.ssh/config.

Hosts can be grouped with "# GroupStart <name>" / "# GroupEnd" comments and
annotated with "# Icon", "# MAC" and "# Command [Label] <cmd>" comments that
ssh itself ignores. Everything else in the file is kept as written.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runPick,
}

// Execute runs the root command and reports the error, if any, on stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logging.UserError("%v", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&sshConfigFlag, "ssh-config", "", "ssh config file to manage (default ~/.ssh/config, or $"+config.EnvSSHConfig+")")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "Directory for settings, state and the journal")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// setup configures logging and rebuilds app.Default from the flags and
// settings.toml. The file system and executor of the current default are
// kept so tests can inject fakes.
func setup(cmd *cobra.Command, args []string) error {
	logging.Setup(verbose, jsonOutput, os.Stderr)

	current := app.Default
	paths := current.Paths
	if configDirFlag != "" {
		paths = paths.WithConfigDir(configDirFlag)
	}
	if sshConfigFlag != "" {
		p, err := hostfile.ExpandHome(sshConfigFlag)
		if err != nil {
			return errors.ConfigError("invalid --ssh-config", err)
		}
		paths = paths.WithSSHConfig(p)
	}

	settings, err := config.LoadSettings(paths.SettingsFile)
	if err != nil {
		return errors.ConfigError("failed to load settings", err)
	}

	app.SetDefault(app.New(
		app.WithPaths(paths),
		app.WithSettings(settings),
		app.WithFS(current.FS),
		app.WithExecutor(current.Executor),
	))
	logging.Debug("quickssh started", "sshConfig", paths.SSHConfig, "settings", paths.SettingsFile)
	return nil
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)
