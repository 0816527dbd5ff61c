package cmd

import (
	"github.com/spf13/cobra"

	"github.com/AndyHazz/quickssh/internal/errors"
	"github.com/AndyHazz/quickssh/internal/journal"
)

var wakeCmd = &cobra.Command{
	Use:   "wake <alias>",
	Short: "Send a Wake-on-LAN packet to a host",
	Long: `Broadcasts a magic packet for the MAC address given by the host's
"# MAC" comment. The broadcast address and port come from wol_broadcast and
wol_port in settings.toml.`,
	Args: cobra.ExactArgs(1),
	RunE: runWake,
}

func init() {
	rootCmd.AddCommand(wakeCmd)
}

func runWake(cmd *cobra.Command, args []string) error {
	_, h, _, err := loadHost(args[0])
	if err != nil {
		return err
	}
	if h.MAC == "" {
		return errors.ValidationError(h.Alias + " has no MAC address; add a \"# MAC\" line above its Host block")
	}

	a := getApp()
	if err := newSender().Wake(cmd.Context(), h.MAC); err != nil {
		a.Record(journal.EventError, h.Alias, err.Error())
		return err
	}

	a.Record(journal.EventWake, h.Alias, h.MAC)
	logSuccess("Magic packet sent to %s (%s)", h.Alias, h.MAC)
	return nil
}
