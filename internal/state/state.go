// Package state persists the picker's per-user state: favorite hosts,
// collapsed groups and the time of the last connection to each host.
//
// The list helpers are pure; they return new slices and maps and never
// modify their arguments.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"time"

	"github.com/AndyHazz/quickssh/internal/system"
)

// State is the persisted picker state.
type State struct {
	Favorites       []string             `json:"favorites"`
	CollapsedGroups []string             `json:"collapsedGroups"`
	History         map[string]time.Time `json:"history"`
}

// New returns an empty state.
func New() *State {
	return &State{History: map[string]time.Time{}}
}

// IsFavorite reports whether alias is in favorites.
func IsFavorite(favorites []string, alias string) bool {
	return slices.Contains(favorites, alias)
}

// ToggleFavorite adds alias to favorites, or removes it when present.
func ToggleFavorite(favorites []string, alias string) []string {
	return toggle(favorites, alias)
}

// IsGroupCollapsed reports whether the named group is collapsed.
func IsGroupCollapsed(collapsed []string, group string) bool {
	return slices.Contains(collapsed, group)
}

// ToggleGroup collapses the named group, or expands it when collapsed.
func ToggleGroup(collapsed []string, group string) []string {
	return toggle(collapsed, group)
}

// RecordConnection returns a copy of history with alias stamped at now.
func RecordConnection(history map[string]time.Time, alias string, now time.Time) map[string]time.Time {
	out := make(map[string]time.Time, len(history)+1)
	for k, v := range history {
		out[k] = v
	}
	out[alias] = now
	return out
}

func toggle(list []string, item string) []string {
	if i := slices.Index(list, item); i >= 0 {
		return slices.Delete(slices.Clone(list), i, i+1)
	}
	return append(slices.Clone(list), item)
}

// Forget drops every reference to alias, as after removing the host.
func (s *State) Forget(alias string) *State {
	out := s.clone()
	out.Favorites = slices.DeleteFunc(out.Favorites, func(a string) bool { return a == alias })
	delete(out.History, alias)
	return out
}

// RenameAlias moves favorites and history from oldAlias to newAlias.
func (s *State) RenameAlias(oldAlias, newAlias string) *State {
	out := s.clone()
	for i, a := range out.Favorites {
		if a == oldAlias {
			out.Favorites[i] = newAlias
		}
	}
	if t, ok := out.History[oldAlias]; ok {
		delete(out.History, oldAlias)
		out.History[newAlias] = t
	}
	return out
}

// RenameGroup keeps a collapsed group collapsed under its new name.
func (s *State) RenameGroup(oldName, newName string) *State {
	out := s.clone()
	for i, g := range out.CollapsedGroups {
		if g == oldName {
			out.CollapsedGroups[i] = newName
		}
	}
	return out
}

func (s *State) clone() *State {
	out := &State{
		Favorites:       slices.Clone(s.Favorites),
		CollapsedGroups: slices.Clone(s.CollapsedGroups),
		History:         make(map[string]time.Time, len(s.History)),
	}
	for k, v := range s.History {
		out.History[k] = v
	}
	return out
}

// Load reads the state file. A missing file yields an empty state.
func Load(fsys system.FileSystem, path string) (*State, error) {
	data, err := fsys.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	s := New()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse state %s: %w", path, err)
	}
	if s.History == nil {
		s.History = map[string]time.Time{}
	}
	return s, nil
}

// Save writes the state file, creating its directory.
func Save(fsys system.FileSystem, path string, s *State) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := fsys.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := fsys.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := fsys.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}

// Update loads the state, applies fn and saves the result.
func Update(fsys system.FileSystem, path string, fn func(*State) *State) (*State, error) {
	s, err := Load(fsys, path)
	if err != nil {
		return nil, err
	}
	s = fn(s)
	if err := Save(fsys, path, s); err != nil {
		return nil, err
	}
	return s, nil
}
