// Package editor applies host list edits to a parsed ssh config.
//
// Every operation takes a document and returns a new one; the input is
// never modified, so a failed edit leaves the caller's copy intact. Groups
// left without hosts disappear, matching what the serializer would write.
package editor

import (
	"fmt"
	"slices"
	"strings"

	"github.com/AndyHazz/quickssh/internal/errors"
	"github.com/AndyHazz/quickssh/internal/sshconfig"
)

// Location identifies where a host sits in a document.
type Location struct {
	Group      string
	GroupIndex int
	HostIndex  int
}

// ValidateAlias checks that alias can be written as a single-name Host line
// that the parser will read back as a managed host.
func ValidateAlias(alias string) error {
	switch {
	case alias == "":
		return errors.ValidationError("alias cannot be empty")
	case strings.ContainsAny(alias, " \t\r\n"):
		return errors.ValidationError(fmt.Sprintf("alias %q cannot contain whitespace", alias))
	case strings.ContainsAny(alias, "*?"):
		return errors.ValidationError(fmt.Sprintf("alias %q cannot contain wildcards", alias))
	case strings.ContainsAny(alias, "#=!\"'"):
		return errors.ValidationError(fmt.Sprintf("alias %q contains a reserved character", alias))
	}
	return nil
}

// ValidateGroupName checks that name fits on a "# GroupStart" line.
func ValidateGroupName(name string) error {
	if strings.ContainsAny(name, "\r\n") {
		return errors.ValidationError("group name cannot span lines")
	}
	if name != strings.TrimSpace(name) {
		return errors.ValidationError(fmt.Sprintf("group name %q has surrounding whitespace", name))
	}
	return nil
}

// FindHost returns the first host with the given alias.
func FindHost(doc *sshconfig.Document, alias string) (sshconfig.Host, Location, bool) {
	for gi, g := range doc.Groups {
		for hi, h := range g.Hosts {
			if h.Alias == alias {
				return h, Location{Group: g.Name, GroupIndex: gi, HostIndex: hi}, true
			}
		}
	}
	return sshconfig.Host{}, Location{}, false
}

// GroupNames returns the distinct group names in file order. The ungrouped
// section is reported as "".
func GroupNames(doc *sshconfig.Document) []string {
	var names []string
	for _, g := range doc.Groups {
		if !slices.Contains(names, g.Name) {
			names = append(names, g.Name)
		}
	}
	return names
}

// AddHost appends h to the last group called group, creating the group at
// the end of the document when none exists.
func AddHost(doc *sshconfig.Document, group string, h sshconfig.Host) (*sshconfig.Document, error) {
	if err := ValidateAlias(h.Alias); err != nil {
		return nil, err
	}
	if err := ValidateGroupName(group); err != nil {
		return nil, err
	}
	if _, _, ok := FindHost(doc, h.Alias); ok {
		return nil, errors.HostExists(h.Alias)
	}
	if h.MAC != "" && !sshconfig.ValidMAC(h.MAC) {
		return nil, errors.ValidationError(fmt.Sprintf("invalid MAC address %q", h.MAC))
	}
	if h.HostName == "" {
		h.HostName = h.Alias
	}
	if h.Icon == "" {
		h.Icon = sshconfig.DefaultIcon
	}
	h.Status = sshconfig.StatusUnknown

	out := clone(doc)
	target := -1
	for i, g := range out.Groups {
		if g.Name == group {
			target = i
		}
	}
	if target < 0 {
		out.Groups = append(out.Groups, sshconfig.Group{Name: group})
		target = len(out.Groups) - 1
	}
	out.Groups[target].Hosts = append(out.Groups[target].Hosts, cloneHost(h))
	return out, nil
}

// RemoveHost deletes the first host with the given alias.
func RemoveHost(doc *sshconfig.Document, alias string) (*sshconfig.Document, error) {
	_, loc, ok := FindHost(doc, alias)
	if !ok {
		return nil, errors.HostNotFound(alias)
	}

	out := &sshconfig.Document{RawBlocks: slices.Clone(doc.RawBlocks)}
	for gi, g := range doc.Groups {
		ng := sshconfig.Group{Name: g.Name}
		for hi, h := range g.Hosts {
			if gi == loc.GroupIndex && hi == loc.HostIndex {
				continue
			}
			ng.Hosts = append(ng.Hosts, cloneHost(h))
		}
		if len(ng.Hosts) > 0 {
			out.Groups = append(out.Groups, ng)
		}
	}
	return out, nil
}

// MoveHost removes the host from its current group and appends it to group.
// Moving a host into the group it is already in moves it to the end.
func MoveHost(doc *sshconfig.Document, alias, group string) (*sshconfig.Document, error) {
	h, _, ok := FindHost(doc, alias)
	if !ok {
		return nil, errors.HostNotFound(alias)
	}
	if err := ValidateGroupName(group); err != nil {
		return nil, err
	}

	out, err := RemoveHost(doc, alias)
	if err != nil {
		return nil, err
	}
	return AddHost(out, group, h)
}

// RenameGroup renames every group called oldName. Renaming to "" turns
// the hosts into ungrouped hosts.
func RenameGroup(doc *sshconfig.Document, oldName, newName string) (*sshconfig.Document, error) {
	if !slices.Contains(GroupNames(doc), oldName) {
		return nil, errors.GroupNotFound(oldName)
	}
	if err := ValidateGroupName(newName); err != nil {
		return nil, err
	}

	out := clone(doc)
	for i := range out.Groups {
		if out.Groups[i].Name == oldName {
			out.Groups[i].Name = newName
		}
	}
	return out, nil
}

// UpdateHost applies fn to a copy of the host with the given alias. fn may
// change the alias, but not to one that is already taken.
func UpdateHost(doc *sshconfig.Document, alias string, fn func(*sshconfig.Host)) (*sshconfig.Document, error) {
	_, loc, ok := FindHost(doc, alias)
	if !ok {
		return nil, errors.HostNotFound(alias)
	}

	out := clone(doc)
	h := &out.Groups[loc.GroupIndex].Hosts[loc.HostIndex]
	fn(h)

	if h.Alias != alias {
		if err := ValidateAlias(h.Alias); err != nil {
			return nil, err
		}
		if aliasTakenElsewhere(out, h.Alias, loc) {
			return nil, errors.HostExists(h.Alias)
		}
	}
	if h.HostName == "" {
		h.HostName = h.Alias
	}
	if h.MAC != "" && !sshconfig.ValidMAC(h.MAC) {
		return nil, errors.ValidationError(fmt.Sprintf("invalid MAC address %q", h.MAC))
	}
	return out, nil
}

func aliasTakenElsewhere(doc *sshconfig.Document, alias string, self Location) bool {
	for gi, g := range doc.Groups {
		for hi, h := range g.Hosts {
			if h.Alias == alias && (gi != self.GroupIndex || hi != self.HostIndex) {
				return true
			}
		}
	}
	return false
}

func clone(doc *sshconfig.Document) *sshconfig.Document {
	out := &sshconfig.Document{
		RawBlocks: slices.Clone(doc.RawBlocks),
		Groups:    make([]sshconfig.Group, 0, len(doc.Groups)),
	}
	for _, g := range doc.Groups {
		ng := sshconfig.Group{Name: g.Name, Hosts: make([]sshconfig.Host, 0, len(g.Hosts))}
		for _, h := range g.Hosts {
			ng.Hosts = append(ng.Hosts, cloneHost(h))
		}
		out.Groups = append(out.Groups, ng)
	}
	return out
}

func cloneHost(h sshconfig.Host) sshconfig.Host {
	h.Commands = slices.Clone(h.Commands)
	h.Options = slices.Clone(h.Options)
	return h
}
