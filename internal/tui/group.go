package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AndyHazz/quickssh/internal/model"
	"github.com/AndyHazz/quickssh/internal/sshconfig"
)

// headerItem is a section separator in the picker list. It can be selected
// so that enter/space toggle its collapsed state.
type headerItem struct {
	label     string
	count     int
	collapsed bool
}

func (h headerItem) FilterValue() string { return "" }
func (h headerItem) Title() string {
	arrow := "▾"
	if h.collapsed {
		arrow = "▸"
	}
	return fmt.Sprintf("%s %s (%d)", arrow, h.label, h.count)
}
func (h headerItem) Description() string { return "" }

// hostItem is a host row.
type hostItem struct {
	item     model.Item
	favorite bool
	now      time.Time
}

func (i hostItem) Title() string {
	title := i.item.Host.Alias
	if i.favorite {
		title = "★ " + title
	}
	if i.item.Discovered {
		title += " (discovered)"
	}
	return title
}

func (i hostItem) Description() string {
	h := i.item.Host
	parts := []string{statusGlyph(h.Status) + " " + destination(h)}
	if ago := model.FormatTimeAgo(i.item.LastConnected, i.now); ago != "" {
		parts = append(parts, ago)
	}
	if n := len(h.Commands); n > 0 {
		parts = append(parts, fmt.Sprintf("%d cmd", n))
	}
	if h.MAC != "" {
		parts = append(parts, "wol")
	}
	return strings.Join(parts, " · ")
}

func (i hostItem) FilterValue() string {
	return i.item.Host.Alias
}

func statusGlyph(s sshconfig.Status) string {
	switch s {
	case sshconfig.StatusOnline:
		return "●"
	case sshconfig.StatusOffline:
		return "○"
	case sshconfig.StatusChecking:
		return "…"
	}
	return "·"
}

// destination renders user@hostname:port, leaving out what is unset.
func destination(h sshconfig.Host) string {
	d := h.HostName
	if h.User != "" {
		d = h.User + "@" + d
	}
	if h.Port != "" {
		d += ":" + h.Port
	}
	return d
}

// buildListItems converts display items into list items.
func buildListItems(items []model.Item, favorites []string, now time.Time) []list.Item {
	fav := make(map[string]bool, len(favorites))
	for _, f := range favorites {
		fav[f] = true
	}

	out := make([]list.Item, 0, len(items))
	for _, it := range items {
		if it.Header {
			out = append(out, headerItem{label: it.Section, count: it.HostCount, collapsed: it.Collapsed})
			continue
		}
		out = append(out, hostItem{item: it, favorite: fav[it.Host.Alias] && !it.Discovered, now: now})
	}
	return out
}

// headerStyle is the style for group header items.
var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("241")).
	PaddingLeft(2)

var selectedHeaderStyle = headerStyle.
	Foreground(lipgloss.Color("39"))

// groupedDelegate renders both headerItem and hostItem in the picker list.
type groupedDelegate struct {
	inner list.DefaultDelegate
}

// newGroupedDelegate creates a groupedDelegate wrapping a configured DefaultDelegate.
func newGroupedDelegate() groupedDelegate {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	return groupedDelegate{inner: delegate}
}

func (d groupedDelegate) Height() int                             { return d.inner.Height() }
func (d groupedDelegate) Spacing() int                            { return d.inner.Spacing() }
func (d groupedDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d groupedDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	if h, ok := item.(headerItem); ok {
		style := headerStyle
		if index == m.Index() {
			style = selectedHeaderStyle
		}
		fmt.Fprint(w, style.Render(h.Title()))
		return
	}

	d.inner.Render(w, m, index, item)
}

// selectedHost returns the selected host row, if the cursor is on one.
func selectedHost(l *list.Model) (hostItem, bool) {
	h, ok := l.SelectedItem().(hostItem)
	return h, ok
}

// selectedHeader returns the selected header, if the cursor is on one.
func selectedHeader(l *list.Model) (headerItem, bool) {
	h, ok := l.SelectedItem().(headerItem)
	return h, ok
}

// indexOf finds the row for a host alias or header label so the cursor
// can be restored after the list is rebuilt. It returns -1 when absent.
func indexOf(items []list.Item, key string) int {
	for i, it := range items {
		switch v := it.(type) {
		case headerItem:
			if "#"+v.label == key {
				return i
			}
		case hostItem:
			if v.item.Host.Alias == key {
				return i
			}
		}
	}
	return -1
}

// itemKey is the inverse of indexOf.
func itemKey(it list.Item) string {
	switch v := it.(type) {
	case headerItem:
		return "#" + v.label
	case hostItem:
		return v.item.Host.Alias
	}
	return ""
}

// hostCount returns the number of host rows.
func hostCount(items []list.Item) int {
	count := 0
	for _, item := range items {
		if _, ok := item.(hostItem); ok {
			count++
		}
	}
	return count
}
