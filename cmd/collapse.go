package cmd

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/AndyHazz/quickssh/internal/editor"
	"github.com/AndyHazz/quickssh/internal/errors"
	"github.com/AndyHazz/quickssh/internal/model"
	"github.com/AndyHazz/quickssh/internal/state"
)

var collapseCmd = &cobra.Command{
	Use:   "collapse <group>",
	Short: "Toggle whether a group is collapsed",
	Long: `Collapsed groups show only their header in the picker and in
'quickssh list'. Besides config groups, the Recent, Discovered and
Ungrouped sections can be collapsed.`,
	Args: cobra.ExactArgs(1),
	RunE: runCollapse,
}

func init() {
	rootCmd.AddCommand(collapseCmd)
}

func runCollapse(cmd *cobra.Command, args []string) error {
	group := args[0]

	doc, err := loadDocument()
	if err != nil {
		return err
	}
	sections := []string{model.RecentSection, model.DiscoveredSection, model.UngroupedSection}
	if !slices.Contains(editor.GroupNames(doc), group) && !slices.Contains(sections, group) {
		return errors.GroupNotFound(group)
	}

	s, err := getApp().UpdateState(func(s *state.State) *state.State {
		s.CollapsedGroups = state.ToggleGroup(s.CollapsedGroups, group)
		return s
	})
	if err != nil {
		return err
	}

	if state.IsGroupCollapsed(s.CollapsedGroups, group) {
		logSuccess("Collapsed %s", group)
	} else {
		logSuccess("Expanded %s", group)
	}
	return nil
}
