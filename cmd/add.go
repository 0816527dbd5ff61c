package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AndyHazz/quickssh/internal/editor"
	"github.com/AndyHazz/quickssh/internal/errors"
	"github.com/AndyHazz/quickssh/internal/journal"
	"github.com/AndyHazz/quickssh/internal/logging"
	"github.com/AndyHazz/quickssh/internal/shell"
	"github.com/AndyHazz/quickssh/internal/sshconfig"
	"github.com/AndyHazz/quickssh/internal/state"
	"github.com/AndyHazz/quickssh/internal/tui"
)

var addCmd = &cobra.Command{
	Use:   "add [alias]",
	Short: "Add a host to the ssh config",
	Long: `Adds a host block to the ssh config.

Quick-launch commands are given as "[Label] command" or just "command":

  quickssh add web --hostname 10.0.0.1 --user admin --group Production \
    --command "[Logs] journalctl -f" --option ForwardAgent=yes

With -i the host is entered in an interactive form instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

var (
	addHostName     string
	addUser         string
	addPort         int
	addIdentityFile string
	addGroup        string
	addIcon         string
	addMAC          string
	addCommands     []string
	addOptions      []string
	addInteractive  bool
)

func init() {
	addCmd.Flags().StringVarP(&addHostName, "hostname", "H", "", "Address to connect to (default: the alias)")
	addCmd.Flags().StringVarP(&addUser, "user", "u", "", "Remote user")
	addCmd.Flags().IntVarP(&addPort, "port", "p", 0, "Remote port")
	addCmd.Flags().StringVar(&addIdentityFile, "identity-file", "", "Private key file")
	addCmd.Flags().StringVarP(&addGroup, "group", "g", "", "Group to add the host to (created if missing)")
	addCmd.Flags().StringVar(&addIcon, "icon", "", "Icon name")
	addCmd.Flags().StringVar(&addMAC, "mac", "", "MAC address for Wake-on-LAN")
	addCmd.Flags().StringArrayVarP(&addCommands, "command", "c", nil, "Quick-launch command, \"[Label] command\" (repeatable)")
	addCmd.Flags().StringArrayVarP(&addOptions, "option", "o", nil, "Extra ssh option as Key=Value (repeatable)")
	addCmd.Flags().BoolVarP(&addInteractive, "interactive", "i", false, "Enter the host in a form")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if addInteractive {
		if len(args) > 0 {
			return errors.ValidationError("an alias cannot be combined with -i")
		}
		doc, err := loadDocument()
		if err != nil {
			return err
		}
		res, err := tui.RunHostForm(nil, addGroup, editor.GroupNames(doc))
		if err != nil {
			return fmt.Errorf("form error: %w", err)
		}
		if res == nil {
			logInfo("Cancelled")
			return nil
		}
		return applyHostForm(res)
	}

	if len(args) == 0 {
		return errors.ValidationError("an alias is required (or use -i)")
	}

	h, err := hostFromFlags(args[0])
	if err != nil {
		return err
	}
	return addHost(addGroup, h)
}

// hostFromFlags builds a host from the add flags.
func hostFromFlags(alias string) (sshconfig.Host, error) {
	h := sshconfig.NewHost(alias)
	if addHostName != "" {
		h.HostName = addHostName
	}
	if addHostName != "" && !shell.IsSafeHostname(addHostName) {
		return h, errors.UnsafeHostname(addHostName)
	}
	h.User = addUser
	if addPort != 0 {
		if addPort < 1 || addPort > 65535 {
			return h, errors.ValidationError(fmt.Sprintf("port %d out of range", addPort))
		}
		h.Port = strconv.Itoa(addPort)
	}
	h.IdentityFile = addIdentityFile
	if addIcon != "" {
		h.Icon = addIcon
	}
	h.MAC = addMAC
	for _, c := range addCommands {
		h.Commands = append(h.Commands, sshconfig.ParseCommand(c))
	}
	opts, err := parseOptions(addOptions)
	if err != nil {
		return h, err
	}
	h.Options = opts
	return h, nil
}

func addHost(group string, h sshconfig.Host) error {
	a := getApp()
	if _, err := a.UpdateConfig(func(doc *sshconfig.Document) (*sshconfig.Document, error) {
		return editor.AddHost(doc, group, h)
	}); err != nil {
		return err
	}

	a.Record(journal.EventAdd, h.Alias, group)
	logSuccess("Added %s to %s", h.Alias, groupLabel(group))
	return nil
}

// applyHostForm saves the result of the host form, adding a new host or
// replacing an edited one. Renames carry the host's state and journal over.
func applyHostForm(res *tui.HostFormResult) error {
	if res.Original == "" {
		return addHost(res.Group, res.Host)
	}

	a := getApp()
	alias := res.Host.Alias
	if _, err := a.UpdateConfig(func(doc *sshconfig.Document) (*sshconfig.Document, error) {
		out, err := editor.UpdateHost(doc, res.Original, func(h *sshconfig.Host) {
			*h = res.Host
		})
		if err != nil {
			return nil, err
		}
		if _, loc, _ := editor.FindHost(out, alias); loc.Group != res.Group {
			return editor.MoveHost(out, alias, res.Group)
		}
		return out, nil
	}); err != nil {
		return err
	}

	if alias != res.Original {
		renameHostRecords(res.Original, alias)
	}
	a.Record(journal.EventEdit, alias, "")
	logSuccess("Updated %s", alias)
	return nil
}

// renameHostRecords moves favorites, history and the journal from one
// alias to another.
func renameHostRecords(oldAlias, newAlias string) {
	a := getApp()
	if _, err := a.UpdateState(func(s *state.State) *state.State {
		return s.RenameAlias(oldAlias, newAlias)
	}); err != nil {
		logging.Warn("failed to rename host state", "from", oldAlias, "to", newAlias, "error", err)
	}
	if err := a.Journal().Rename(oldAlias, newAlias); err != nil {
		logging.Warn("failed to rename journal", "from", oldAlias, "to", newAlias, "error", err)
	}
}
