// Package tui provides the terminal user interface for quickssh
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AndyHazz/quickssh/internal/config"
	"github.com/AndyHazz/quickssh/internal/editor"
	"github.com/AndyHazz/quickssh/internal/health"
	"github.com/AndyHazz/quickssh/internal/hostfile"
	"github.com/AndyHazz/quickssh/internal/logging"
	"github.com/AndyHazz/quickssh/internal/model"
	"github.com/AndyHazz/quickssh/internal/sshconfig"
	"github.com/AndyHazz/quickssh/internal/state"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionConnect
	ActionRun
	ActionAdd
	ActionEdit
	ActionQuit
)

// PickerResult holds the result of the picker
type PickerResult struct {
	Action     Action
	Host       sshconfig.Host
	Discovered bool
	// Command is set for ActionRun.
	Command sshconfig.Command
	// Form is set for ActionAdd and ActionEdit.
	Form *HostFormResult
}

// Backend loads the config and persists picker state. *app.App satisfies it.
type Backend interface {
	LoadConfig() (*sshconfig.Document, []sshconfig.Warning, error)
	UpdateState(fn func(*state.State) *state.State) (*state.State, error)
}

// Checker probes host liveness. *health.Checker satisfies it.
type Checker interface {
	CheckAll(ctx context.Context, hosts []sshconfig.Host) []health.Result
}

// Waker sends Wake-on-LAN packets. *wol.Sender satisfies it.
type Waker interface {
	Wake(ctx context.Context, mac string) error
}

// PickerOptions configures the picker.
type PickerOptions struct {
	Settings   *config.Settings
	State      *state.State
	Discovered []sshconfig.Host
	// Checker and Waker are optional.
	Checker Checker
	Waker   Waker
	// Now defaults to time.Now.
	Now func() time.Time
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// Messages
type (
	reloadMsg  struct{}
	checkedMsg struct{ results []health.Result }
	wokeMsg    struct {
		alias string
		err   error
	}
)

// Model is the bubbletea model for the host picker
type Model struct {
	backend  Backend
	opts     PickerOptions
	doc      *sshconfig.Document
	statuses map[string]sshconfig.Status

	list      list.Model
	search    textinput.Model
	searching bool
	form      *formModel
	message   string

	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker creates a new host picker over doc.
func NewPicker(backend Backend, doc *sshconfig.Document, opts PickerOptions) Model {
	if opts.Settings == nil {
		opts.Settings = config.DefaultSettings()
	}
	if opts.State == nil {
		opts.State = state.New()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	l := list.New(nil, newGroupedDelegate(), 80, 20)
	l.Title = "quickssh"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = titleStyle

	si := textinput.New()
	si.Prompt = "/ "
	si.Placeholder = "search alias, hostname or user"
	si.CharLimit = 64

	m := Model{
		backend:  backend,
		opts:     opts,
		doc:      doc,
		statuses: map[string]sshconfig.Status{},
		list:     l,
		search:   si,
	}
	m.rebuild()
	return m
}

// rebuild regenerates the list from the document, state and search text,
// keeping the cursor on the same host or header when it still exists.
func (m *Model) rebuild() {
	key := ""
	if it := m.list.SelectedItem(); it != nil {
		key = itemKey(it)
	}

	groups := health.Apply(m.doc.Groups, m.statuses)
	o := model.OptionsFor(&sshconfig.Document{Groups: groups}, m.opts.Settings, m.opts.State)
	o.Search = m.search.Value()
	o.Discovered = m.opts.Discovered
	o.Now = m.opts.Now()

	items := buildListItems(model.Build(o), m.opts.State.Favorites, o.Now)
	m.list.SetItems(items)
	m.list.Title = fmt.Sprintf("quickssh - %d hosts", hostCount(items))

	if i := indexOf(items, key); i >= 0 {
		m.list.Select(i)
	} else if m.list.Index() >= len(items) && len(items) > 0 {
		m.list.Select(len(items) - 1)
	}
}

func (m Model) Init() tea.Cmd {
	return m.checkCmd()
}

func (m Model) checkCmd() tea.Cmd {
	if m.opts.Checker == nil {
		return nil
	}
	checker := m.opts.Checker
	hosts := m.doc.Hosts()
	return func() tea.Msg {
		return checkedMsg{results: checker.CheckAll(context.Background(), hosts)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case reloadMsg:
		doc, _, err := m.backend.LoadConfig()
		if err != nil {
			m.message = err.Error()
			return m, nil
		}
		m.doc = doc
		m.message = "config reloaded"
		m.rebuild()
		return m, m.checkCmd()

	case checkedMsg:
		m.statuses = health.Statuses(msg.results)
		m.rebuild()
		return m, nil

	case wokeMsg:
		if msg.err != nil {
			m.message = fmt.Sprintf("wake %s failed: %v", msg.alias, msg.err)
		} else {
			m.message = "magic packet sent to " + msg.alias
		}
		return m, nil
	}

	if m.form != nil {
		done, res, cmd := m.form.Update(msg)
		if !done {
			return m, cmd
		}
		m.form = nil
		if res == nil {
			return m, nil
		}
		action := ActionAdd
		if res.Original != "" {
			action = ActionEdit
		}
		return m.finish(PickerResult{Action: action, Host: res.Host, Form: res})
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if m.searching {
		return m.updateSearch(keyMsg)
	}

	switch keyMsg.String() {
	case "enter":
		if h, ok := selectedHost(&m.list); ok {
			return m.finish(PickerResult{Action: ActionConnect, Host: h.item.Host, Discovered: h.item.Discovered})
		}
		return m.toggleCollapse()

	case " ":
		return m.toggleCollapse()

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		h, ok := selectedHost(&m.list)
		if !ok {
			return m, nil
		}
		n := int(keyMsg.String()[0] - '0')
		if n > len(h.item.Host.Commands) {
			m.message = fmt.Sprintf("%s has no command %d", h.item.Host.Alias, n)
			return m, nil
		}
		return m.finish(PickerResult{Action: ActionRun, Host: h.item.Host, Discovered: h.item.Discovered, Command: h.item.Host.Commands[n-1]})

	case "/":
		m.searching = true
		return m, m.search.Focus()

	case "f":
		return m.toggleFavorite()

	case "w":
		return m.wake()

	case "r":
		m.message = "checking hosts..."
		return m, m.checkCmd()

	case "a":
		f := newFormModel(nil, "", editor.GroupNames(m.doc))
		if h, ok := selectedHost(&m.list); ok && h.item.Discovered {
			f.inputs[fieldHostName].SetValue(h.item.Host.HostName)
		}
		m.form = &f
		return m, f.Init()

	case "e":
		h, ok := selectedHost(&m.list)
		if !ok || h.item.Discovered {
			return m, nil
		}
		_, loc, found := editor.FindHost(m.doc, h.item.Host.Alias)
		if !found {
			return m, nil
		}
		host := h.item.Host
		f := newFormModel(&host, loc.Group, editor.GroupNames(m.doc))
		m.form = &f
		return m, f.Init()

	case "q", "esc", "ctrl+c":
		return m.finish(PickerResult{Action: ActionQuit})
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.search.SetValue("")
		fallthrough
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		m.rebuild()
		return m, nil
	case tea.KeyDown, tea.KeyUp:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.rebuild()
	return m, cmd
}

func (m Model) finish(res PickerResult) (tea.Model, tea.Cmd) {
	m.result = res
	m.quitting = true
	return m, tea.Quit
}

func (m Model) toggleCollapse() (tea.Model, tea.Cmd) {
	h, ok := selectedHeader(&m.list)
	if !ok || h.label == model.FavoritesSection {
		return m, nil
	}
	m.updateState(func(s *state.State) *state.State {
		s.CollapsedGroups = state.ToggleGroup(s.CollapsedGroups, h.label)
		return s
	})
	return m, nil
}

func (m Model) toggleFavorite() (tea.Model, tea.Cmd) {
	h, ok := selectedHost(&m.list)
	if !ok || h.item.Discovered {
		return m, nil
	}
	m.updateState(func(s *state.State) *state.State {
		s.Favorites = state.ToggleFavorite(s.Favorites, h.item.Host.Alias)
		return s
	})
	return m, nil
}

func (m *Model) updateState(fn func(*state.State) *state.State) {
	s, err := m.backend.UpdateState(fn)
	if err != nil {
		m.message = err.Error()
		return
	}
	m.opts.State = s
	m.rebuild()
}

func (m Model) wake() (tea.Model, tea.Cmd) {
	h, ok := selectedHost(&m.list)
	if !ok {
		return m, nil
	}
	if h.item.Host.MAC == "" {
		m.message = h.item.Host.Alias + " has no MAC address"
		return m, nil
	}
	if m.opts.Waker == nil {
		m.message = "wake-on-LAN is not available"
		return m, nil
	}
	waker, alias, mac := m.opts.Waker, h.item.Host.Alias, h.item.Host.MAC
	return m, func() tea.Msg {
		return wokeMsg{alias: alias, err: waker.Wake(context.Background(), mac)}
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.form != nil {
		return m.form.View()
	}

	var b strings.Builder
	b.WriteString(m.list.View())
	b.WriteString("\n")
	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	if m.message != "" {
		b.WriteString(messageStyle.Render(m.message))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("[enter] Connect  [1-9] Command  [f] Favorite  [space] Collapse  [/] Search  [w] Wake  [r] Refresh  [a] Add  [e] Edit  [q] Quit"))
	return b.String()
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive host picker. The config file is watched
// while the picker is open and the list reloads when it changes.
func RunPicker(ctx context.Context, backend Backend, configPath string, opts PickerOptions) (PickerResult, error) {
	doc, _, err := backend.LoadConfig()
	if err != nil {
		return PickerResult{}, err
	}

	m := NewPicker(backend, doc, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		err := hostfile.Watch(ctx, configPath, hostfile.DefaultDebounce, func(err error) {
			if err == nil {
				p.Send(reloadMsg{})
			}
		})
		if err != nil && ctx.Err() == nil {
			logging.Debug("config watch stopped", "error", err)
		}
	}()

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}

// PlainList renders display items for non-interactive output
func PlainList(items []model.Item, now time.Time) string {
	var sb strings.Builder

	if len(items) == 0 {
		sb.WriteString("No hosts configured.\n")
		sb.WriteString("Add one with: quickssh add <alias> --hostname <address>\n")
		return sb.String()
	}

	n := 0
	for _, it := range items {
		if it.Header {
			h := headerItem{label: it.Section, count: it.HostCount, collapsed: it.Collapsed}
			sb.WriteString(h.Title() + "\n")
			continue
		}
		n++
		hi := hostItem{item: it, now: now}
		sb.WriteString(fmt.Sprintf("%3d. %s\n", n, hi.Title()))
		sb.WriteString(fmt.Sprintf("     %s\n", hi.Description()))
	}

	return sb.String()
}
