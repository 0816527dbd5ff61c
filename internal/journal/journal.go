// Package journal keeps a per-host history of connections and edits.
// Events are stored as JSON Lines (JSONL) files, one per host alias.
package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AndyHazz/quickssh/internal/config"
)

// EventType classifies a journal event.
type EventType string

const (
	EventConnect EventType = "connect"
	EventRun     EventType = "run"
	EventAdd     EventType = "add"
	EventEdit    EventType = "edit"
	EventMove    EventType = "move"
	EventRemove  EventType = "remove"
	EventWake    EventType = "wake"
	EventStatus  EventType = "status"
	EventError   EventType = "error"
)

// Event is a single journal entry.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Host      string    `json:"host"`
	Details   string    `json:"details,omitempty"`
}

// Journal appends and reads host events under Paths.JournalDir.
type Journal struct {
	paths *config.Paths
	now   func() time.Time
}

// New returns a journal rooted at the paths' journal directory.
func New(paths *config.Paths) *Journal {
	return &Journal{paths: paths, now: time.Now}
}

// Log appends an event to the host's journal.
func (j *Journal) Log(event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = j.now()
	}

	path, err := j.paths.JournalFile(event.Host)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create journal directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return nil
}

// Record is shorthand for logging an event stamped with the current time.
func (j *Journal) Record(eventType EventType, host, details string) error {
	return j.Log(Event{Type: eventType, Host: host, Details: details})
}

// Events returns the host's events in the order they were written.
// A host without a journal has no events.
func (j *Journal) Events(host string) ([]Event, error) {
	path, err := j.paths.JournalFile(host)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue // malformed
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("error reading journal: %w", err)
	}
	return events, nil
}

// Rename moves a host's journal to a new alias. Missing journals are fine.
func (j *Journal) Rename(oldHost, newHost string) error {
	from, err := j.paths.JournalFile(oldHost)
	if err != nil {
		return err
	}
	to, err := j.paths.JournalFile(newHost)
	if err != nil {
		return err
	}
	if err := os.Rename(from, to); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Remove deletes a host's journal.
func (j *Journal) Remove(host string) error {
	path, err := j.paths.JournalFile(host)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
