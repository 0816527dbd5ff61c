// Package model turns a parsed ssh config plus the user's state into the
// flat list of section headers and hosts shown by the picker and by
// `quickssh list`.
package model

import (
	"slices"
	"strings"
	"time"

	"github.com/AndyHazz/quickssh/internal/config"
	"github.com/AndyHazz/quickssh/internal/sshconfig"
	"github.com/AndyHazz/quickssh/internal/state"
)

// Section names used for headers that do not come from the config.
const (
	FavoritesSection  = "Favorites"
	RecentSection     = "Recent"
	DiscoveredSection = "Discovered"
	UngroupedSection  = "Ungrouped"
)

// RecentWindow is how long after a connection a host counts as recent.
const RecentWindow = 24 * time.Hour

// Item is either a section header or a host row.
type Item struct {
	Header bool `json:"header,omitempty" yaml:"header,omitempty"`
	// Section is the header's name, or for hosts the section they are
	// listed under ("" in flat mode).
	Section   string `json:"section,omitempty" yaml:"section,omitempty"`
	HostCount int    `json:"hostCount,omitempty" yaml:"hostCount,omitempty"`
	Collapsed bool   `json:"collapsed,omitempty" yaml:"collapsed,omitempty"`

	Host          sshconfig.Host `json:"host" yaml:"host"`
	Discovered    bool           `json:"discovered,omitempty" yaml:"discovered,omitempty"`
	LastConnected time.Time      `json:"lastConnected" yaml:"lastConnected"`
}

// Options controls Build.
type Options struct {
	Groups          []sshconfig.Group
	Search          string
	HideUnreachable bool
	Grouping        bool
	SortOrder       config.SortOrder
	Favorites       []string
	Collapsed       []string
	History         map[string]time.Time

	DiscoverHosts bool
	Discovered    []sshconfig.Host

	// Now defaults to time.Now().
	Now time.Time
}

// OptionsFor fills Options from a document, the settings and the stored
// state. Search and discovered hosts are left to the caller.
func OptionsFor(doc *sshconfig.Document, s *config.Settings, st *state.State) Options {
	return Options{
		Groups:          doc.Groups,
		HideUnreachable: s.HideUnreachable,
		Grouping:        s.Grouping,
		SortOrder:       s.SortOrder,
		Favorites:       st.Favorites,
		Collapsed:       st.CollapsedGroups,
		History:         st.History,
		DiscoverHosts:   s.DiscoverHosts,
	}
}

// Build produces the display list.
//
// Hosts are filtered by Search (a case-insensitive substring of alias,
// hostname or user) and, with HideUnreachable, by online status. Favorites
// are pulled into a leading section. With grouping on and a sort order
// other than recent, hosts connected within RecentWindow get a Recent
// section after the favorites. Remaining hosts stay in their config
// groups, each with a header, or form one sorted list when grouping is
// off. Discovered hosts are appended in their own section when discovery
// is enabled. Collapsed sections keep their header but list no hosts;
// Favorites never collapses.
func Build(opts Options) []Item {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	search := strings.ToLower(opts.Search)
	showRecent := opts.Grouping && opts.SortOrder != config.SortRecent

	var favorites, recent []sshconfig.Host
	var items []Item

	for _, g := range opts.Groups {
		var hosts []sshconfig.Host
		for _, h := range g.Hosts {
			if opts.HideUnreachable && h.Status != sshconfig.StatusOnline {
				continue
			}
			if !matches(search, h.Alias, h.HostName, h.User) {
				continue
			}

			last := opts.History[h.Alias]
			switch {
			case state.IsFavorite(opts.Favorites, h.Alias):
				favorites = append(favorites, h)
			case showRecent && isRecent(last, now):
				recent = append(recent, h)
			default:
				hosts = append(hosts, h)
			}
		}
		if len(hosts) == 0 {
			continue
		}

		if !opts.Grouping {
			items = appendHosts(items, "", hosts, opts.History, false)
			continue
		}

		name := g.Name
		if name == "" {
			name = UngroupedSection
		}
		collapsed := state.IsGroupCollapsed(opts.Collapsed, name)
		sortHosts(hosts, opts.SortOrder, opts.History)
		items = appendSection(items, name, hosts, collapsed)
		if !collapsed {
			items = appendHosts(items, name, hosts, opts.History, false)
		}
	}

	if !opts.Grouping {
		sortItems(items, opts.SortOrder)
	}

	var head []Item
	if len(favorites) > 0 {
		sortHosts(favorites, opts.SortOrder, opts.History)
		section := ""
		if opts.Grouping {
			section = FavoritesSection
			head = appendSection(head, section, favorites, false)
		}
		head = appendHosts(head, section, favorites, opts.History, false)
	}
	if showRecent && len(recent) > 0 {
		sortHosts(recent, config.SortRecent, opts.History)
		collapsed := state.IsGroupCollapsed(opts.Collapsed, RecentSection)
		head = appendSection(head, RecentSection, recent, collapsed)
		if !collapsed {
			head = appendHosts(head, RecentSection, recent, opts.History, false)
		}
	}
	items = append(head, items...)

	if opts.DiscoverHosts {
		var found []sshconfig.Host
		for _, h := range opts.Discovered {
			if matches(search, h.Alias, h.HostName) {
				found = append(found, h)
			}
		}
		if len(found) > 0 {
			collapsed := state.IsGroupCollapsed(opts.Collapsed, DiscoveredSection)
			items = appendSection(items, DiscoveredSection, found, collapsed)
			if !collapsed {
				items = appendHosts(items, DiscoveredSection, found, opts.History, true)
			}
		}
	}

	return items
}

// Hosts returns the host rows of items, skipping headers.
func Hosts(items []Item) []Item {
	var out []Item
	for _, it := range items {
		if !it.Header {
			out = append(out, it)
		}
	}
	return out
}

func appendSection(items []Item, name string, hosts []sshconfig.Host, collapsed bool) []Item {
	return append(items, Item{Header: true, Section: name, HostCount: len(hosts), Collapsed: collapsed})
}

func appendHosts(items []Item, section string, hosts []sshconfig.Host, history map[string]time.Time, discovered bool) []Item {
	for _, h := range hosts {
		items = append(items, Item{
			Section:       section,
			Host:          h,
			Discovered:    discovered,
			LastConnected: history[h.Alias],
		})
	}
	return items
}

func matches(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

func isRecent(last, now time.Time) bool {
	return !last.IsZero() && now.Sub(last) < RecentWindow
}

// sortHosts orders hosts in place. Config order is left alone; ties keep
// their relative order.
func sortHosts(hosts []sshconfig.Host, order config.SortOrder, history map[string]time.Time) {
	switch order {
	case config.SortAlphabetical:
		slices.SortStableFunc(hosts, func(a, b sshconfig.Host) int {
			return strings.Compare(strings.ToLower(a.Alias), strings.ToLower(b.Alias))
		})
	case config.SortRecent:
		slices.SortStableFunc(hosts, func(a, b sshconfig.Host) int {
			return history[b.Alias].Compare(history[a.Alias])
		})
	}
}

func sortItems(items []Item, order config.SortOrder) {
	switch order {
	case config.SortAlphabetical:
		slices.SortStableFunc(items, func(a, b Item) int {
			return strings.Compare(strings.ToLower(a.Host.Alias), strings.ToLower(b.Host.Alias))
		})
	case config.SortRecent:
		slices.SortStableFunc(items, func(a, b Item) int {
			return b.LastConnected.Compare(a.LastConnected)
		})
	}
}
