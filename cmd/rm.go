package cmd

import (
	"github.com/spf13/cobra"

	"github.com/AndyHazz/quickssh/internal/editor"
	"github.com/AndyHazz/quickssh/internal/journal"
	"github.com/AndyHazz/quickssh/internal/logging"
	"github.com/AndyHazz/quickssh/internal/sshconfig"
	"github.com/AndyHazz/quickssh/internal/state"
)

var rmCmd = &cobra.Command{
	Use:     "rm <alias>",
	Aliases: []string{"remove"},
	Short:   "Remove a host from the ssh config",
	Long: `Removes the host block for alias. A group left without hosts is removed
with it. The previous file is kept as a .bak backup.`,
	Args: cobra.ExactArgs(1),
	RunE: runRm,
}

var rmKeepHistory bool

func init() {
	rmCmd.Flags().BoolVar(&rmKeepHistory, "keep-history", false, "Keep the host's favorite flag, history and journal")
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	alias := args[0]
	a := getApp()

	if _, err := a.UpdateConfig(func(doc *sshconfig.Document) (*sshconfig.Document, error) {
		return editor.RemoveHost(doc, alias)
	}); err != nil {
		return err
	}

	if rmKeepHistory {
		a.Record(journal.EventRemove, alias, "")
	} else {
		if _, err := a.UpdateState(func(s *state.State) *state.State {
			return s.Forget(alias)
		}); err != nil {
			logging.Warn("failed to forget host state", "host", alias, "error", err)
		}
		if err := a.Journal().Remove(alias); err != nil {
			logging.Warn("failed to remove journal", "host", alias, "error", err)
		}
	}

	logSuccess("Removed %s", alias)
	return nil
}
