// Package ssh builds and launches ssh command lines for configured and
// discovered hosts.
package ssh

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AndyHazz/quickssh/internal/errors"
	"github.com/AndyHazz/quickssh/internal/logging"
	"github.com/AndyHazz/quickssh/internal/shell"
	"github.com/AndyHazz/quickssh/internal/sshconfig"
	"github.com/AndyHazz/quickssh/internal/system"
)

// DefaultBinary is the ssh client used when none is configured.
const DefaultBinary = "ssh"

// Options configures an ssh invocation.
type Options struct {
	Binary string
	// ConfigFile is passed with -F when the hosts come from a file other
	// than the client's default.
	ConfigFile     string
	Destination    string
	User           string
	Port           string
	ConnectTimeout int
	BatchMode      bool
	RequestTTY     bool
}

// DefaultOptions returns Options that connect to destination with the
// default client and no extra flags.
func DefaultOptions(destination string) Options {
	return Options{
		Binary:      DefaultBinary,
		Destination: destination,
	}
}

// ForHost returns Options for h. Configured hosts are reached by alias so
// the client applies their config block. Discovered hosts are not in the
// config; they are reached by address, which must be a plain hostname.
func ForHost(h sshconfig.Host, discovered bool) (Options, error) {
	if !discovered {
		return DefaultOptions(h.Alias), nil
	}
	if !shell.IsSafeHostname(h.HostName) {
		return Options{}, errors.UnsafeHostname(h.HostName)
	}
	opts := DefaultOptions(h.HostName)
	opts.User = h.User
	opts.Port = h.Port
	return opts, nil
}

// WithBinary returns a copy using a different ssh client.
func (o Options) WithBinary(binary string) Options {
	if binary != "" {
		o.Binary = binary
	}
	return o
}

// WithConfigFile returns a copy that passes -F path.
func (o Options) WithConfigFile(path string) Options {
	o.ConfigFile = path
	return o
}

// WithBatchMode returns a copy with batch mode enabled.
func (o Options) WithBatchMode() Options {
	o.BatchMode = true
	return o
}

// WithTTY returns a copy with TTY requested.
func (o Options) WithTTY() Options {
	o.RequestTTY = true
	return o
}

// WithTimeout returns a copy with the specified connect timeout.
func (o Options) WithTimeout(seconds int) Options {
	o.ConnectTimeout = seconds
	return o
}

// BaseArgs returns the ssh flags (no destination).
func (o Options) BaseArgs() []string {
	var args []string

	if o.ConfigFile != "" {
		args = append(args, "-F", o.ConfigFile)
	}
	if o.Port != "" {
		args = append(args, "-p", o.Port)
	}
	if o.BatchMode {
		args = append(args, "-o", "BatchMode=yes")
	}
	if o.ConnectTimeout > 0 {
		args = append(args, "-o", fmt.Sprintf("ConnectTimeout=%d", o.ConnectTimeout))
	}
	if o.RequestTTY {
		args = append(args, "-t")
	}
	return args
}

// Target returns the destination, prefixed with user@ when a user is set.
func (o Options) Target() string {
	if o.User != "" {
		return o.User + "@" + o.Destination
	}
	return o.Destination
}

// BuildArgs returns the complete ssh arguments. A non-empty command is
// passed as a single argument for the remote shell to interpret.
func (o Options) BuildArgs(command string) []string {
	args := append(o.BaseArgs(), o.Target())
	if command != "" {
		args = append(args, command)
	}
	return args
}

// BuildArgsWithArgv returns BuildArgs prefixed with the client binary.
func (o Options) BuildArgsWithArgv(command string) []string {
	return append([]string{o.Binary}, o.BuildArgs(command)...)
}

// CommandLine renders the invocation as a shell-quoted string.
func (o Options) CommandLine(command string) string {
	return shell.Join(o.BuildArgsWithArgv(command)...)
}

// ResolveCommand finds one of h's quick-launch commands by label
// (case-insensitive) or by 1-based position.
func ResolveCommand(h sshconfig.Host, ref string) (sshconfig.Command, error) {
	for _, c := range h.Commands {
		if strings.EqualFold(c.Label(), ref) {
			return c, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(h.Commands) {
		return h.Commands[n-1], nil
	}
	return sshconfig.Command{}, errors.ValidationError(fmt.Sprintf("host %s has no command %q", h.Alias, ref))
}

// Launch starts the session. With no terminal it replaces the current
// process and only returns on failure. Otherwise the terminal command line
// (for example "konsole -e") is split into words, the ssh argv appended,
// and the terminal started detached.
func Launch(exec system.CommandExecutor, opts Options, command, terminal string) error {
	argv := opts.BuildArgsWithArgv(command)
	logging.Debug("launching ssh", "command", shell.Join(argv...), "terminal", terminal)

	if terminal == "" {
		if err := exec.Exec(argv[0], argv[1:]...); err != nil {
			return errors.SSHError("failed to start "+opts.Binary, err)
		}
		return nil
	}

	words, err := shell.Split(terminal)
	if err != nil {
		return errors.SSHError("invalid terminal command", err)
	}
	if len(words) == 0 {
		return errors.SSHError("terminal command is empty", nil)
	}
	words = append(words, argv...)
	if err := exec.Start(words[0], words[1:]...); err != nil {
		return errors.SSHError("failed to start terminal "+words[0], err)
	}
	return nil
}
