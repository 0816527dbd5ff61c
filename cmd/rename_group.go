package cmd

import (
	"github.com/spf13/cobra"

	"github.com/AndyHazz/quickssh/internal/editor"
	"github.com/AndyHazz/quickssh/internal/logging"
	"github.com/AndyHazz/quickssh/internal/sshconfig"
	"github.com/AndyHazz/quickssh/internal/state"
)

var renameGroupCmd = &cobra.Command{
	Use:   "rename-group <old> <new>",
	Short: "Rename a group",
	Args:  cobra.ExactArgs(2),
	RunE:  runRenameGroup,
}

func init() {
	rootCmd.AddCommand(renameGroupCmd)
}

func runRenameGroup(cmd *cobra.Command, args []string) error {
	oldName, newName := args[0], args[1]
	a := getApp()

	if _, err := a.UpdateConfig(func(doc *sshconfig.Document) (*sshconfig.Document, error) {
		return editor.RenameGroup(doc, oldName, newName)
	}); err != nil {
		return err
	}

	if _, err := a.UpdateState(func(s *state.State) *state.State {
		return s.RenameGroup(oldName, newName)
	}); err != nil {
		logging.Warn("failed to rename collapsed group", "from", oldName, "to", newName, "error", err)
	}

	logSuccess("Renamed %s to %s", groupLabel(oldName), groupLabel(newName))
	return nil
}
