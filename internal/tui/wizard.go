package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AndyHazz/quickssh/internal/editor"
	"github.com/AndyHazz/quickssh/internal/sshconfig"
)

// formField identifies an input in the host form.
type formField int

const (
	fieldAlias formField = iota
	fieldHostName
	fieldUser
	fieldPort
	fieldIdentity
	fieldGroup
	fieldIcon
	fieldMAC
	fieldCommand
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldAlias:    "Alias",
	fieldHostName: "HostName",
	fieldUser:     "User",
	fieldPort:     "Port",
	fieldIdentity: "IdentityFile",
	fieldGroup:    "Group",
	fieldIcon:     "Icon",
	fieldMAC:      "MAC",
	fieldCommand:  "Command",
}

var fieldPlaceholders = [fieldCount]string{
	fieldAlias:    "web",
	fieldHostName: "192.168.1.10 (defaults to alias)",
	fieldUser:     "admin",
	fieldPort:     "22",
	fieldIdentity: "~/.ssh/id_ed25519",
	fieldGroup:    "Production (empty for ungrouped)",
	fieldIcon:     sshconfig.DefaultIcon,
	fieldMAC:      "aa:bb:cc:dd:ee:ff",
	fieldCommand:  "[Logs] journalctl -f",
}

// formStep identifies the current step.
type formStep int

const (
	stepEdit formStep = iota
	stepConfirm
)

// HostFormResult is what the form produces.
type HostFormResult struct {
	// Original is the alias being edited, or "" for a new host.
	Original string
	Group    string
	Host     sshconfig.Host
}

// formModel drives the add/edit host form.
type formModel struct {
	step     formStep
	cursor   formField
	inputs   [fieldCount]textinput.Model
	original string
	// extraCommands keeps the commands beyond the first when editing.
	extraCommands []sshconfig.Command
	options       []sshconfig.Option
	err           string
}

var (
	formTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	formLabelStyle = lipgloss.NewStyle().
			Width(14)

	formActiveLabelStyle = formLabelStyle.
				Bold(true).
				Foreground(lipgloss.Color("39"))

	formValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	formDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	formErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// newFormModel returns an empty form, or one filled from existing when
// editing. groups feed the group field's suggestions.
func newFormModel(existing *sshconfig.Host, group string, groups []string) formModel {
	f := formModel{}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = fieldPlaceholders[i]
		ti.CharLimit = 256
		ti.Width = 50
		ti.Prompt = ""
		f.inputs[i] = ti
	}
	f.inputs[fieldGroup].ShowSuggestions = true
	f.inputs[fieldGroup].SetSuggestions(groups)

	if existing != nil {
		h := *existing
		f.original = h.Alias
		f.inputs[fieldAlias].SetValue(h.Alias)
		if h.HostName != h.Alias {
			f.inputs[fieldHostName].SetValue(h.HostName)
		}
		f.inputs[fieldUser].SetValue(h.User)
		f.inputs[fieldPort].SetValue(h.Port)
		f.inputs[fieldIdentity].SetValue(h.IdentityFile)
		f.inputs[fieldGroup].SetValue(group)
		if h.Icon != sshconfig.DefaultIcon {
			f.inputs[fieldIcon].SetValue(h.Icon)
		}
		f.inputs[fieldMAC].SetValue(h.MAC)
		if len(h.Commands) > 0 {
			f.inputs[fieldCommand].SetValue(sshconfig.FormatCommand(h.Commands[0]))
			f.extraCommands = h.Commands[1:]
		}
		f.options = h.Options
	}

	f.inputs[fieldAlias].Focus()
	return f
}

func (f *formModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update processes a message and returns (done, result, cmd).
// done=true with a non-nil result means the form was submitted;
// done=true with a nil result means it was cancelled.
func (f *formModel) Update(msg tea.Msg) (bool, *HostFormResult, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyCtrlC:
			return true, nil, nil
		case tea.KeyEsc:
			if f.step == stepConfirm {
				f.step = stepEdit
				return false, nil, f.focus(f.cursor)
			}
			return true, nil, nil
		}
	}

	if f.step == stepConfirm {
		return f.updateConfirm(msg)
	}
	return f.updateEdit(msg)
}

func (f *formModel) updateEdit(msg tea.Msg) (bool, *HostFormResult, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			if f.cursor < fieldCount-1 {
				return false, nil, f.focus(f.cursor + 1)
			}
			return false, nil, f.submit()
		case tea.KeyCtrlS:
			return false, nil, f.submit()
		case tea.KeyDown, tea.KeyTab:
			if keyMsg.Type == tea.KeyTab && f.cursor == fieldGroup && f.inputs[fieldGroup].CurrentSuggestion() != "" {
				break
			}
			return false, nil, f.focus((f.cursor + 1) % fieldCount)
		case tea.KeyUp, tea.KeyShiftTab:
			return false, nil, f.focus((f.cursor - 1 + fieldCount) % fieldCount)
		}
	}

	var cmd tea.Cmd
	f.inputs[f.cursor], cmd = f.inputs[f.cursor].Update(msg)
	return false, nil, cmd
}

func (f *formModel) updateConfirm(msg tea.Msg) (bool, *HostFormResult, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter", "y":
			res, err := f.result()
			if err != nil {
				f.err = err.Error()
				f.step = stepEdit
				return false, nil, f.focus(f.cursor)
			}
			return true, res, nil
		case "n":
			f.step = stepEdit
			return false, nil, f.focus(fieldAlias)
		}
	}
	return false, nil, nil
}

// submit validates and moves to the confirm step.
func (f *formModel) submit() tea.Cmd {
	if _, err := f.result(); err != nil {
		f.err = err.Error()
		return nil
	}
	f.err = ""
	f.step = stepConfirm
	f.inputs[f.cursor].Blur()
	return nil
}

func (f *formModel) focus(field formField) tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.cursor = field
	return f.inputs[field].Focus()
}

func (f *formModel) value(field formField) string {
	return strings.TrimSpace(f.inputs[field].Value())
}

// result builds the host from the inputs and validates it.
func (f *formModel) result() (*HostFormResult, error) {
	alias := f.value(fieldAlias)
	if err := editor.ValidateAlias(alias); err != nil {
		return nil, err
	}
	group := f.value(fieldGroup)
	if err := editor.ValidateGroupName(group); err != nil {
		return nil, err
	}

	h := sshconfig.NewHost(alias)
	if v := f.value(fieldHostName); v != "" {
		h.HostName = v
	}
	h.User = f.value(fieldUser)
	if port := f.value(fieldPort); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n < 1 || n > 65535 {
			return nil, fmt.Errorf("port must be a number between 1 and 65535")
		}
		h.Port = port
	}
	h.IdentityFile = f.value(fieldIdentity)
	if icon := f.value(fieldIcon); icon != "" {
		h.Icon = icon
	}
	if mac := f.value(fieldMAC); mac != "" {
		if !sshconfig.ValidMAC(mac) {
			return nil, fmt.Errorf("MAC must look like aa:bb:cc:dd:ee:ff")
		}
		h.MAC = mac
	}
	if c := f.value(fieldCommand); c != "" {
		h.Commands = append(h.Commands, sshconfig.ParseCommand(c))
	}
	h.Commands = append(h.Commands, f.extraCommands...)
	h.Options = f.options

	return &HostFormResult{Original: f.original, Group: group, Host: h}, nil
}

func (f *formModel) View() string {
	var b strings.Builder

	title := "Add Host"
	if f.original != "" {
		title = "Edit " + f.original
	}
	b.WriteString(formTitleStyle.Render(title))
	b.WriteString("\n")

	switch f.step {
	case stepEdit:
		for i := formField(0); i < fieldCount; i++ {
			label := formLabelStyle.Render(fieldLabels[i])
			if i == f.cursor {
				label = formActiveLabelStyle.Render(fieldLabels[i])
			}
			b.WriteString(label + f.inputs[i].View() + "\n")
		}
		if f.err != "" {
			b.WriteString("\n" + formErrorStyle.Render(f.err) + "\n")
		}
		b.WriteString("\n")
		b.WriteString(formDimStyle.Render("Tab/↓ next field, Enter on the last field or Ctrl+S to save, Esc to cancel."))
	case stepConfirm:
		res, _ := f.result()
		if res == nil {
			break
		}
		b.WriteString("Save this host?\n\n")
		preview := sshconfig.Serialize([]sshconfig.Group{{Name: res.Group, Hosts: []sshconfig.Host{res.Host}}}, nil)
		for _, line := range strings.Split(strings.TrimRight(preview, "\n"), "\n") {
			b.WriteString("  " + formValueStyle.Render(line) + "\n")
		}
		b.WriteString("\n")
		b.WriteString(formDimStyle.Render("[y/enter] Save  [n] Edit  [esc] Back"))
	}

	return b.String()
}

// formProgram wraps formModel as a standalone tea.Model.
type formProgram struct {
	form   formModel
	result *HostFormResult
}

func (p *formProgram) Init() tea.Cmd { return p.form.Init() }

func (p *formProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	done, res, cmd := p.form.Update(msg)
	if done {
		p.result = res
		return p, tea.Quit
	}
	return p, cmd
}

func (p *formProgram) View() string { return p.form.View() }

// RunHostForm runs the host form on its own. existing, when non-nil, is the
// host being edited and group its current group. It returns nil when the
// user cancels.
func RunHostForm(existing *sshconfig.Host, group string, groups []string) (*HostFormResult, error) {
	p := tea.NewProgram(&formProgram{form: newFormModel(existing, group, groups)})
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	return final.(*formProgram).result, nil
}
