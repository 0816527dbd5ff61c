package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/AndyHazz/quickssh/internal/config"
	"github.com/AndyHazz/quickssh/internal/errors"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the effective settings",
	Long: `Prints the settings in effect, as TOML. Values not set in settings.toml
show their defaults.`,
	Args: cobra.NoArgs,
	RunE: runSettings,
}

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write settings.toml with the default values",
	Args:  cobra.NoArgs,
	RunE:  runSettingsInit,
}

var settingsForce bool

func init() {
	settingsInitCmd.Flags().BoolVarP(&settingsForce, "force", "f", false, "Overwrite an existing settings file")
	settingsCmd.AddCommand(settingsInitCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettings(cmd *cobra.Command, args []string) error {
	a := getApp()

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(a.Settings); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", a.Paths.SettingsFile, buf.String())
	return nil
}

func runSettingsInit(cmd *cobra.Command, args []string) error {
	path := getApp().Paths.SettingsFile
	if _, err := os.Stat(path); err == nil && !settingsForce {
		return errors.ValidationError(path + " already exists (use --force to overwrite)")
	}

	if err := config.SaveSettings(path, config.DefaultSettings()); err != nil {
		return errors.ConfigError("failed to write settings", err)
	}
	logSuccess("Wrote %s", path)
	return nil
}
