// Package terminal picks the terminal emulator new ssh sessions open in.
package terminal

import (
	"strings"

	"github.com/AndyHazz/quickssh/internal/shell"
	"github.com/AndyHazz/quickssh/internal/system"
)

// Auto is the terminal_command value that asks for detection.
const Auto = "auto"

// EnvTerminal names the user's preferred terminal, as used by i3 and
// sway's i3-sensible-terminal.
const EnvTerminal = "TERMINAL"

// known lists emulators in preference order, each with the flag after
// which it takes the command to run.
var known = []struct {
	binary string
	args   []string
}{
	{"konsole", []string{"-e"}},
	{"gnome-terminal", []string{"--"}},
	{"kitty", nil},
	{"alacritty", []string{"-e"}},
	{"wezterm", []string{"start", "--"}},
	{"foot", nil},
	{"xterm", []string{"-e"}},
}

// Detect returns a terminal command line for running ssh in a new window,
// or false if no emulator is found. $TERMINAL wins when it is installed;
// it is assumed to accept -e.
func Detect(exec system.CommandExecutor, getenv func(string) string) (string, bool) {
	if t := strings.TrimSpace(getenv(EnvTerminal)); t != "" {
		words, err := shell.Split(t)
		if err == nil && len(words) > 0 {
			if _, err := exec.LookPath(words[0]); err == nil {
				if len(words) == 1 {
					return shell.Join(words[0], "-e"), true
				}
				return t, true
			}
		}
	}

	for _, k := range known {
		if _, err := exec.LookPath(k.binary); err == nil {
			return shell.Join(append([]string{k.binary}, k.args...)...), true
		}
	}
	return "", false
}

// Resolve turns the terminal_command setting into the command line to use.
// An empty setting means "run in the current terminal"; Auto detects one
// and falls back to the current terminal when none is found.
func Resolve(setting string, exec system.CommandExecutor, getenv func(string) string) string {
	if setting != Auto {
		return setting
	}
	t, _ := Detect(exec, getenv)
	return t
}
