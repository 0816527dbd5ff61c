package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/AndyHazz/quickssh/internal/discovery"
	"github.com/AndyHazz/quickssh/internal/logging"
	"github.com/AndyHazz/quickssh/internal/model"
	"github.com/AndyHazz/quickssh/internal/sshconfig"
	"github.com/AndyHazz/quickssh/internal/tui"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactive host picker",
	Long: `Opens an interactive TUI for choosing a host. This is also what runs
when quickssh is started without a command.

Use arrow keys or j/k to navigate.

Actions:
  Enter   - Connect (or collapse/expand a group header)
  1-9     - Run the host's quick-launch command
  Space   - Collapse/expand the group
  /       - Search
  f       - Toggle favorite
  w       - Send Wake-on-LAN packet
  r       - Re-check which hosts are online
  a / e   - Add / edit a host
  q/Esc   - Quit

When stdout is not a terminal the host list is printed instead.`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
}

// isTerminal reports whether stdin and stdout are both terminals.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func runPick(cmd *cobra.Command, args []string) error {
	a := getApp()

	logging.Debug("picker mode started")

	st, err := a.LoadState()
	if err != nil {
		return err
	}

	var discovered []sshconfig.Host
	if a.Settings.DiscoverHosts {
		doc, err := loadDocument()
		if err != nil {
			return err
		}
		discovered, err = discovery.Discover(cmd.Context(), a.Executor, discovery.ConfiguredNames(doc))
		if err != nil {
			logWarning("discovery skipped: %v", err)
		}
	}

	if !isTerminal() {
		doc, err := loadDocument()
		if err != nil {
			return err
		}
		opts := model.OptionsFor(doc, a.Settings, st)
		opts.Discovered = discovered
		opts.Now = time.Now()
		fmt.Fprint(cmd.OutOrStdout(), tui.PlainList(model.Build(opts), opts.Now))
		return nil
	}

	result, err := tui.RunPicker(cmd.Context(), a, a.Paths.SSHConfig, tui.PickerOptions{
		Settings:   a.Settings,
		State:      st,
		Discovered: discovered,
		Checker:    newChecker(),
		Waker:      newSender(),
	})
	if err != nil {
		return fmt.Errorf("picker error: %w", err)
	}

	logging.Debug("picker result", "action", result.Action, "host", result.Host.Alias)

	switch result.Action {
	case tui.ActionConnect:
		return connectHost(cmd, result.Host, result.Discovered, nil)

	case tui.ActionRun:
		command := result.Command
		return connectHost(cmd, result.Host, result.Discovered, &command)

	case tui.ActionAdd, tui.ActionEdit:
		if result.Form != nil {
			return applyHostForm(result.Form)
		}

	case tui.ActionQuit:
		// Just exit cleanly
	}

	return nil
}
