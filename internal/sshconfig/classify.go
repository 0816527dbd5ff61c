package sshconfig

import (
	"regexp"
	"strings"
)

// lineKind is the result of classifying one source line.
type lineKind int

const (
	kindBlank lineKind = iota
	kindComment
	kindGroupStart
	kindGroupEnd
	kindIcon
	kindMAC
	kindCommand
	kindInclude
	kindMatch
	kindHost
	kindProperty
)

var kindNames = [...]string{
	kindBlank:      "blank",
	kindComment:    "comment",
	kindGroupStart: "group-start",
	kindGroupEnd:   "group-end",
	kindIcon:       "icon",
	kindMAC:        "mac",
	kindCommand:    "command",
	kindInclude:    "include",
	kindMatch:      "match",
	kindHost:       "host",
	kindProperty:   "property",
}

func (k lineKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

var (
	macPattern     = regexp.MustCompile(`^[0-9A-Fa-f]{2}(:[0-9A-Fa-f]{2}){5}$`)
	commandPattern = regexp.MustCompile(`^\[([^\]]+)\]\s*(.+)$`)
)

// line is a classified source line.
type line struct {
	kind     lineKind
	number   int
	raw      string // untrimmed source text, trailing whitespace removed
	indented bool
	key      string // keyword as written (property lines)
	value    string // trimmed argument
}

// classify determines the kind of a single source line. It never fails:
// anything unrecognized is a comment or a property line.
func classify(raw string, number int) line {
	raw = strings.TrimRight(raw, " \t\r")
	trimmed := strings.TrimSpace(raw)
	l := line{
		number:   number,
		raw:      raw,
		indented: trimmed != "" && raw[0] != trimmed[0],
	}

	switch {
	case trimmed == "":
		l.kind = kindBlank
	case trimmed[0] == '#':
		l.kind, l.value = classifyDirective(trimmed[1:])
	default:
		l.key, l.value = splitKeyword(trimmed)
		l.kind = classifyKeyword(l.key, l.value)
	}
	return l
}

// classifyDirective handles the text after a leading '#'.
func classifyDirective(rest string) (lineKind, string) {
	keyword, value := splitKeyword(strings.TrimSpace(rest))
	switch {
	case equalFold(keyword, "GroupEnd"):
		return kindGroupEnd, value
	case value == "":
		return kindComment, ""
	case equalFold(keyword, "GroupStart"):
		return kindGroupStart, value
	case equalFold(keyword, "Icon"):
		return kindIcon, value
	case equalFold(keyword, "MAC"):
		return kindMAC, value
	case equalFold(keyword, "Command"):
		return kindCommand, value
	}
	return kindComment, ""
}

func classifyKeyword(key, value string) lineKind {
	if value == "" {
		return kindProperty
	}
	switch {
	case equalFold(key, "Host"):
		return kindHost
	case equalFold(key, "Match"):
		return kindMatch
	case equalFold(key, "Include"):
		return kindInclude
	}
	return kindProperty
}

// splitKeyword splits "Keyword value", "Keyword=value" or "Keyword = value"
// the way ssh_config does. The value is trimmed.
func splitKeyword(s string) (string, string) {
	i := strings.IndexAny(s, " \t=")
	if i < 0 {
		return s, ""
	}
	key, rest := s[:i], strings.TrimLeft(s[i:], " \t")
	if strings.HasPrefix(rest, "=") {
		rest = rest[1:]
	}
	return key, strings.TrimSpace(rest)
}

// endsRawBlock reports whether l terminates raw-block collection. Host,
// Match and group directives always do. Include lines and pending
// directives do only at column zero, which is where the serializer writes
// them right after a raw block (an Include block, or the directives of an
// ungrouped host); indented ones belong to the block.
func (l line) endsRawBlock() bool {
	switch l.kind {
	case kindHost, kindMatch, kindGroupStart, kindGroupEnd:
		return true
	case kindInclude, kindIcon, kindMAC, kindCommand:
		return !l.indented
	}
	return false
}

// ParseCommand splits a "# Command" value into its optional bracketed name
// and the command text.
func ParseCommand(value string) Command {
	if m := commandPattern.FindStringSubmatch(value); m != nil {
		name, cmd := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		if name != "" && cmd != "" {
			return Command{Name: name, Cmd: cmd}
		}
	}
	return Command{Cmd: value}
}

// ValidMAC reports whether s is six colon-separated pairs of hex digits.
func ValidMAC(s string) bool {
	return macPattern.MatchString(s)
}

func hasWildcard(name string) bool {
	return strings.ContainsAny(name, "*?")
}

func equalFold(a, b string) bool {
	return strings.EqualFold(a, b)
}
