package sshconfig

import (
	"fmt"
	"strings"
)

// WarningKind classifies a directive the parser dropped or normalized.
type WarningKind string

const (
	WarnInvalidMAC     WarningKind = "invalid-mac"
	WarnMissingValue   WarningKind = "missing-value"
	WarnOrphanProperty WarningKind = "orphan-property"
	WarnMultiHost      WarningKind = "multi-host"
)

// Warning describes input the parser accepted but did not keep as written.
type Warning struct {
	Line int         `json:"line"`
	Kind WarningKind `json:"kind"`
	Text string      `json:"text"`
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s: %s", w.Line, w.Kind, w.Text)
}

// Parse converts configuration text into a Document. It never fails;
// unrecognized or malformed lines are skipped or preserved as raw blocks.
func Parse(text string) *Document {
	doc, _ := ParseWithWarnings(text)
	return doc
}

// ParseWithWarnings is Parse plus a report of the directive values that
// were dropped (for example an invalid MAC address) and the Host lines that
// will be expanded to one block per alias when serialized. The returned
// document is identical to what Parse returns.
func ParseWithWarnings(text string) (*Document, []Warning) {
	s := newParseState()
	for i, raw := range strings.Split(text, "\n") {
		s.step(classify(raw, i+1))
	}
	s.finish()
	return s.doc, s.warnings
}

// pendingDirectives holds the metadata declared ahead of a Host line.
type pendingDirectives struct {
	icon     string
	mac      string
	commands []Command
}

// parseState is the parser context threaded through every line.
type parseState struct {
	doc      *Document
	group    Group
	host     *Host
	pending  pendingDirectives
	raw      []string
	inRaw    bool
	warnings []Warning
}

func newParseState() *parseState {
	return &parseState{doc: &Document{}}
}

// step applies one classified line to the parser state.
func (s *parseState) step(l line) {
	if s.inRaw {
		if !l.endsRawBlock() {
			s.raw = append(s.raw, l.raw)
			return
		}
		s.flushRaw()
	}

	switch l.kind {
	case kindGroupStart:
		s.flushGroup()
		s.group = Group{Name: l.value}
	case kindGroupEnd:
		s.flushGroup()
		s.group = Group{}
	case kindIcon:
		s.pending.icon = l.value
	case kindMAC:
		if ValidMAC(l.value) {
			s.pending.mac = l.value
		} else {
			s.warn(l, WarnInvalidMAC, "ignoring MAC %q", l.value)
		}
	case kindCommand:
		s.pending.commands = append(s.pending.commands, ParseCommand(l.value))
	case kindInclude:
		// Trimmed: written back indented it would join the preceding raw block.
		s.doc.RawBlocks = append(s.doc.RawBlocks, strings.TrimSpace(l.raw))
	case kindMatch:
		s.startRaw(l)
	case kindBlank, kindComment:
	case kindHost:
		s.hostLine(l)
	case kindProperty:
		s.property(l)
	}
}

func (s *parseState) hostLine(l line) {
	names := strings.Fields(l.value)
	literal := make([]string, 0, len(names))
	for _, name := range names {
		if !hasWildcard(name) {
			literal = append(literal, name)
		}
	}

	if len(literal) == 0 {
		s.startRaw(l)
		s.pending = pendingDirectives{}
		return
	}

	s.flushHost()
	if len(literal) > 1 {
		s.warn(l, WarnMultiHost, "Host line with %d aliases is written back as %d Host blocks; only %q receives the options that follow",
			len(literal), len(literal), literal[len(literal)-1])
	}
	for i, name := range literal {
		h := s.newHost(name)
		if i < len(literal)-1 {
			s.group.Hosts = append(s.group.Hosts, h)
			continue
		}
		s.host = &h
	}
	s.pending = pendingDirectives{}
}

func (s *parseState) newHost(alias string) Host {
	h := NewHost(alias)
	if s.pending.icon != "" {
		h.Icon = s.pending.icon
	}
	h.MAC = s.pending.mac
	if len(s.pending.commands) > 0 {
		h.Commands = append([]Command(nil), s.pending.commands...)
	}
	return h
}

func (s *parseState) property(l line) {
	if s.host == nil {
		s.warn(l, WarnOrphanProperty, "%q outside of a Host block ignored", l.key)
		return
	}
	if l.value == "" {
		s.warn(l, WarnMissingValue, "%q has no value", l.key)
		return
	}

	switch {
	case equalFold(l.key, "HostName"):
		s.host.HostName = l.value
	case equalFold(l.key, "User"):
		s.host.User = l.value
	case equalFold(l.key, "Port"):
		s.host.Port = l.value
	case equalFold(l.key, "IdentityFile"):
		s.host.IdentityFile = l.value
	default:
		s.host.Options = append(s.host.Options, Option{Key: l.key, Value: l.value})
	}
}

// startRaw begins collecting a raw block. The open host is closed first so
// property lines stranded after the block ends are never attached to a host
// that came before it.
func (s *parseState) startRaw(l line) {
	s.flushHost()
	s.inRaw = true
	s.raw = []string{l.raw}
}

// flushRaw stores the collected raw block in the form the serializer writes
// it: runs of blank lines become one and trailing blank lines are dropped.
func (s *parseState) flushRaw() {
	kept := make([]string, 0, len(s.raw))
	for _, r := range s.raw {
		if r == "" && len(kept) > 0 && kept[len(kept)-1] == "" {
			continue
		}
		kept = append(kept, r)
	}
	for len(kept) > 0 && kept[len(kept)-1] == "" {
		kept = kept[:len(kept)-1]
	}
	if len(kept) > 0 {
		s.doc.RawBlocks = append(s.doc.RawBlocks, strings.Join(kept, "\n"))
	}
	s.raw = nil
	s.inRaw = false
}

func (s *parseState) flushHost() {
	if s.host != nil {
		s.group.Hosts = append(s.group.Hosts, *s.host)
		s.host = nil
	}
}

func (s *parseState) flushGroup() {
	s.flushHost()
	if len(s.group.Hosts) > 0 {
		s.doc.Groups = append(s.doc.Groups, s.group)
	}
	s.group = Group{}
}

func (s *parseState) finish() {
	if s.inRaw {
		s.flushRaw()
	}
	s.flushGroup()
}

func (s *parseState) warn(l line, kind WarningKind, format string, args ...any) {
	s.warnings = append(s.warnings, Warning{
		Line: l.number,
		Kind: kind,
		Text: fmt.Sprintf(format, args...),
	})
}
