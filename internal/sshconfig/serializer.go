package sshconfig

import (
	"regexp"
	"strings"
	"unicode"
)

const propertyIndent = "    "

var blankRuns = regexp.MustCompile(`\n{3,}`)

// Serialize renders groups and raw blocks as configuration text. Raw blocks
// come first, verbatim and in order; managed groups follow in a normalized
// layout with exactly one alias per Host line. Empty groups are skipped.
// The result has no runs of more than one blank line and ends with a single
// newline unless it is empty.
func Serialize(groups []Group, rawBlocks []string) string {
	var lines []string

	for _, block := range rawBlocks {
		lines = append(lines, block, "")
	}

	for _, g := range groups {
		if len(g.Hosts) == 0 {
			continue
		}
		named := g.Name != ""
		if named {
			lines = append(lines, "# GroupStart "+g.Name, "")
		}
		for _, h := range g.Hosts {
			lines = appendHost(lines, h)
		}
		if named {
			lines = append(lines, "# GroupEnd", "")
		}
	}

	return tidy(strings.Join(lines, "\n"))
}

func appendHost(lines []string, h Host) []string {
	if h.Icon != "" && h.Icon != DefaultIcon {
		lines = append(lines, "# Icon "+h.Icon)
	}
	if h.MAC != "" {
		lines = append(lines, "# MAC "+h.MAC)
	}
	for _, c := range h.Commands {
		lines = append(lines, "# Command "+FormatCommand(c))
	}

	lines = append(lines, "Host "+h.Alias)
	if h.HostName != "" && h.HostName != h.Alias {
		lines = append(lines, propertyIndent+"HostName "+h.HostName)
	}
	if h.User != "" {
		lines = append(lines, propertyIndent+"User "+h.User)
	}
	if h.Port != "" {
		lines = append(lines, propertyIndent+"Port "+h.Port)
	}
	if h.IdentityFile != "" {
		lines = append(lines, propertyIndent+"IdentityFile "+h.IdentityFile)
	}
	for _, o := range h.Options {
		if o.Key == "" {
			continue
		}
		lines = append(lines, propertyIndent+o.Key+" "+o.Value)
	}
	return append(lines, "")
}

// FormatCommand renders a command as the value of a "# Command" line.
func FormatCommand(c Command) string {
	if c.Name != "" {
		return "[" + c.Name + "] " + c.Cmd
	}
	return c.Cmd
}

// tidy collapses blank-line runs, strips trailing whitespace and terminates
// non-empty output with a newline.
func tidy(text string) string {
	text = blankRuns.ReplaceAllString(text, "\n\n")
	text = strings.TrimRightFunc(text, unicode.IsSpace)
	if text == "" {
		return ""
	}
	return text + "\n"
}
