package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/AndyHazz/quickssh/internal/journal"
	"github.com/AndyHazz/quickssh/internal/logging"
	"github.com/AndyHazz/quickssh/internal/ssh"
	"github.com/AndyHazz/quickssh/internal/sshconfig"
	"github.com/AndyHazz/quickssh/internal/state"
	"github.com/AndyHazz/quickssh/internal/terminal"
)

var connectCmd = &cobra.Command{
	Use:     "connect <alias>",
	Aliases: []string{"c"},
	Short:   "Connect to a host",
	Long: `Connects to a configured host with ssh.

With --run the host's quick-launch command is run instead of a login shell.
The command is chosen by its label or by its position (1 for the first
"# Command" line above the host).

If terminal_command is set in settings.toml (for example "konsole -e") the
session opens in a new terminal window. "auto" picks $TERMINAL or the first
installed of konsole, gnome-terminal, kitty, alacritty, wezterm, foot and
xterm.`,
	Args: cobra.ExactArgs(1),
	RunE: runConnect,
}

var (
	connectRun    string
	connectDryRun bool
)

func init() {
	connectCmd.Flags().StringVarP(&connectRun, "run", "r", "", "Run a quick-launch command (label or number)")
	connectCmd.Flags().BoolVarP(&connectDryRun, "dry-run", "n", false, "Print the ssh command line instead of running it")
	rootCmd.AddCommand(connectCmd)
}

func runConnect(cmd *cobra.Command, args []string) error {
	_, h, _, err := loadHost(args[0])
	if err != nil {
		return err
	}

	var command *sshconfig.Command
	if connectRun != "" {
		c, err := ssh.ResolveCommand(h, connectRun)
		if err != nil {
			return err
		}
		command = &c
	}

	return connectHost(cmd, h, false, command)
}

// connectHost launches ssh for h, optionally running command. History and
// the journal are written before launching because a successful launch
// without a terminal replaces this process.
func connectHost(cmd *cobra.Command, h sshconfig.Host, discovered bool, command *sshconfig.Command) error {
	a := getApp()

	opts, err := ssh.ForHost(h, discovered)
	if err != nil {
		return err
	}
	opts = opts.WithBinary(a.Settings.SSHBinary)
	if !discovered && !isDefaultSSHConfig(a.Paths.SSHConfig) {
		opts = opts.WithConfigFile(a.Paths.SSHConfig)
	}

	remote := ""
	if command != nil {
		opts = opts.WithTTY()
		remote = command.Cmd
	}

	if connectDryRun {
		fmt.Fprintln(cmd.OutOrStdout(), opts.CommandLine(remote))
		return nil
	}

	if !discovered {
		if _, err := a.UpdateState(func(s *state.State) *state.State {
			s.History = state.RecordConnection(s.History, h.Alias, time.Now())
			return s
		}); err != nil {
			logging.Warn("failed to record connection", "host", h.Alias, "error", err)
		}
	}

	name := h.Alias
	if discovered {
		name = opts.Destination
	}
	if command != nil {
		a.Record(journal.EventRun, name, command.Label())
	} else {
		a.Record(journal.EventConnect, name, opts.Target())
	}

	term := terminal.Resolve(a.Settings.TerminalCommand, a.Executor, os.Getenv)
	if err := ssh.Launch(a.Executor, opts, remote, term); err != nil {
		a.Record(journal.EventError, name, err.Error())
		return err
	}
	return nil
}

// isDefaultSSHConfig reports whether path is the file ssh reads on its own,
// in which case no -F flag is needed.
func isDefaultSSHConfig(path string) bool {
	home, err := os.UserHomeDir()
	if err != nil {
		return false
	}
	return filepath.Clean(path) == filepath.Join(home, ".ssh", "config")
}
