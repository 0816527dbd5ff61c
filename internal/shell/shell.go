// Package shell quotes and validates values that are passed to a shell,
// either locally (terminal_command) or on the remote side of ssh.
package shell

import (
	"regexp"
	"strings"

	shellquote "github.com/kballard/go-shellquote"
)

var safeHostname = regexp.MustCompile(`^[a-zA-Z0-9.\-_:]+$`)

// Quote wraps s in single quotes for a POSIX shell. Embedded single quotes
// become '\''.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Join quotes each word and joins them with spaces.
func Join(words ...string) string {
	return shellquote.Join(words...)
}

// Split splits a command line into words using shell quoting rules.
func Split(line string) ([]string, error) {
	return shellquote.Split(line)
}

// IsSafeHostname reports whether name contains only letters, digits and
// the characters . - _ : so it can be interpolated without quoting.
func IsSafeHostname(name string) bool {
	return safeHostname.MatchString(name)
}
