// Package tui provides the terminal user interface for quickssh.
//
// This package uses the Bubble Tea framework for the interactive host
// picker and the add/edit host form.
//
// # Host Picker
//
// The picker shows the display list built by the model package: favorites,
// recent hosts, config groups and discovered hosts, each under a header.
//
//	result, err := tui.RunPicker(ctx, app, paths.SSHConfig, tui.PickerOptions{
//	    Settings: settings,
//	    State:    st,
//	    Checker:  health.NewChecker(timeout, concurrency),
//	    Waker:    wol.NewSender(broadcast, port),
//	})
//	switch result.Action {
//	case tui.ActionConnect:
//	    // ssh to result.Host
//	case tui.ActionRun:
//	    // ssh -t to result.Host running result.Command
//	case tui.ActionAdd, tui.ActionEdit:
//	    // apply result.Form to the config
//	case tui.ActionQuit:
//	    // Exit
//	}
//
// # Picker Features
//
//   - Keyboard navigation (j/k or arrows); enter or space on a header
//     collapses or expands it
//   - Quick actions: enter (connect), 1-9 (quick commands), f (favorite),
//     w (wake-on-LAN), r (refresh liveness), a (add), e (edit), q (quit)
//   - Incremental search with /
//   - Live reload when the ssh config changes on disk (fsnotify)
//   - Liveness statuses filled in asynchronously after start
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - list and textinput components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
