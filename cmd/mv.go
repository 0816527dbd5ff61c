package cmd

import (
	"github.com/spf13/cobra"

	"github.com/AndyHazz/quickssh/internal/editor"
	"github.com/AndyHazz/quickssh/internal/journal"
	"github.com/AndyHazz/quickssh/internal/sshconfig"
)

var mvCmd = &cobra.Command{
	Use:   "mv <alias> <group>",
	Short: "Move a host to another group",
	Long: `Moves a host to the end of group, creating the group if needed.
Use "" as the group to make the host ungrouped.`,
	Args: cobra.ExactArgs(2),
	RunE: runMv,
}

func init() {
	rootCmd.AddCommand(mvCmd)
}

func runMv(cmd *cobra.Command, args []string) error {
	alias, group := args[0], args[1]
	a := getApp()

	if _, err := a.UpdateConfig(func(doc *sshconfig.Document) (*sshconfig.Document, error) {
		return editor.MoveHost(doc, alias, group)
	}); err != nil {
		return err
	}

	a.Record(journal.EventMove, alias, group)
	logSuccess("Moved %s to %s", alias, groupLabel(group))
	return nil
}
