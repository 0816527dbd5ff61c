package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AndyHazz/quickssh/internal/editor"
	"github.com/AndyHazz/quickssh/internal/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit <alias>",
	Short: "Edit a host in an interactive form",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	doc, h, loc, err := loadHost(args[0])
	if err != nil {
		return err
	}

	res, err := tui.RunHostForm(&h, loc.Group, editor.GroupNames(doc))
	if err != nil {
		return fmt.Errorf("form error: %w", err)
	}
	if res == nil {
		logInfo("Cancelled")
		return nil
	}
	return applyHostForm(res)
}
