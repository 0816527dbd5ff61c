package sshconfig

// DefaultIcon is the icon assigned to hosts without an # Icon directive.
const DefaultIcon = "network-server"

// Status is the liveness state of a host. The parser always produces
// StatusUnknown; liveness checks fill in the rest.
type Status string

const (
	StatusUnknown  Status = "unknown"
	StatusOnline   Status = "online"
	StatusOffline  Status = "offline"
	StatusChecking Status = "checking"
)

// Document is the parsed form of a configuration file.
type Document struct {
	Groups    []Group  `json:"groups" yaml:"groups"`
	RawBlocks []string `json:"rawBlocks,omitempty" yaml:"rawBlocks,omitempty"`
}

// Group is an ordered collection of hosts. The empty name is the ungrouped
// section.
type Group struct {
	Name  string `json:"name" yaml:"name"`
	Hosts []Host `json:"hosts" yaml:"hosts"`
}

// Host is one managed SSH destination.
type Host struct {
	Alias        string    `json:"alias" yaml:"alias"`
	HostName     string    `json:"hostname" yaml:"hostname"`
	User         string    `json:"user,omitempty" yaml:"user,omitempty"`
	Port         string    `json:"port,omitempty" yaml:"port,omitempty"`
	IdentityFile string    `json:"identityFile,omitempty" yaml:"identityFile,omitempty"`
	Icon         string    `json:"icon" yaml:"icon"`
	Status       Status    `json:"status" yaml:"status"`
	MAC          string    `json:"mac,omitempty" yaml:"mac,omitempty"`
	Commands     []Command `json:"commands,omitempty" yaml:"commands,omitempty"`
	Options      []Option  `json:"options,omitempty" yaml:"options,omitempty"`
}

// Command is a quick-launch command attached to a host.
type Command struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	Cmd  string `json:"cmd" yaml:"cmd"`
}

// Label returns the command's display name, falling back to the command text.
func (c Command) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Cmd
}

// Option is an SSH directive without a dedicated Host field.
type Option struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// NewHost returns a host with the defaults the parser would assign to a bare
// "Host alias" line.
func NewHost(alias string) Host {
	return Host{
		Alias:    alias,
		HostName: alias,
		Icon:     DefaultIcon,
		Status:   StatusUnknown,
	}
}

// Option returns the value of the first option whose key matches
// case-insensitively, and whether it was found.
func (h Host) Option(key string) (string, bool) {
	for _, o := range h.Options {
		if equalFold(o.Key, key) {
			return o.Value, true
		}
	}
	return "", false
}

// HostCount returns the number of managed hosts across all groups.
func (d *Document) HostCount() int {
	n := 0
	for _, g := range d.Groups {
		n += len(g.Hosts)
	}
	return n
}

// Hosts returns every managed host in file order.
func (d *Document) Hosts() []Host {
	hosts := make([]Host, 0, d.HostCount())
	for _, g := range d.Groups {
		hosts = append(hosts, g.Hosts...)
	}
	return hosts
}

// String serializes the document. It is equivalent to
// Serialize(d.Groups, d.RawBlocks).
func (d *Document) String() string {
	return Serialize(d.Groups, d.RawBlocks)
}
