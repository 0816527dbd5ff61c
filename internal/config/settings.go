package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/AndyHazz/quickssh/internal/logging"
)

// SortOrder controls how hosts are ordered inside each section.
type SortOrder string

const (
	SortConfig       SortOrder = "config"
	SortRecent       SortOrder = "recent"
	SortAlphabetical SortOrder = "alphabetical"
)

// ParseSortOrder validates a --sort flag value.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(s); o {
	case SortConfig, SortRecent, SortAlphabetical:
		return o, nil
	}
	return "", fmt.Errorf("invalid sort order %q: must be config, recent or alphabetical", s)
}

// Duration is a time.Duration written as a string ("3s") in TOML.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Settings holds the user preferences from settings.toml
type Settings struct {
	SortOrder        SortOrder `toml:"sort_order"`
	Grouping         bool      `toml:"grouping"`
	HideUnreachable  bool      `toml:"hide_unreachable"`
	DiscoverHosts    bool      `toml:"discover_hosts"`
	CheckTimeout     Duration  `toml:"check_timeout"`
	CheckInterval    Duration  `toml:"check_interval"`
	CheckConcurrency int       `toml:"check_concurrency"`
	SSHBinary        string    `toml:"ssh_binary"`
	TerminalCommand  string    `toml:"terminal_command,omitempty"`
	WOLBroadcast     string    `toml:"wol_broadcast"`
	WOLPort          int       `toml:"wol_port"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() *Settings {
	return &Settings{
		SortOrder:        SortConfig,
		Grouping:         true,
		CheckTimeout:     Duration{3 * time.Second},
		CheckInterval:    Duration{time.Minute},
		CheckConcurrency: 16,
		SSHBinary:        "ssh",
		WOLBroadcast:     "255.255.255.255",
		WOLPort:          9,
	}
}

// Validate checks the settings for out-of-range values
func (s *Settings) Validate() error {
	if _, err := ParseSortOrder(string(s.SortOrder)); err != nil {
		return err
	}
	if s.CheckTimeout.Duration <= 0 {
		return fmt.Errorf("check_timeout must be positive")
	}
	if s.CheckInterval.Duration < time.Second {
		return fmt.Errorf("check_interval must be at least 1s")
	}
	if s.CheckConcurrency < 1 {
		return fmt.Errorf("check_concurrency must be at least 1")
	}
	if s.SSHBinary == "" {
		return fmt.Errorf("ssh_binary is required")
	}
	if s.WOLPort < 1 || s.WOLPort > 65535 {
		return fmt.Errorf("wol_port %d out of range", s.WOLPort)
	}
	return nil
}

// LoadSettings reads settings.toml. A missing file yields the defaults;
// keys absent from the file keep their default values.
func LoadSettings(path string) (*Settings, error) {
	settings := DefaultSettings()

	md, err := toml.DecodeFile(path, settings)
	if errors.Is(err, fs.ErrNotExist) {
		logging.Debug("no settings file, using defaults", "path", path)
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}

	for _, key := range md.Undecoded() {
		logging.Warn("unknown settings key", "path", path, "key", key.String())
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings %s: %w", path, err)
	}
	return settings, nil
}

// SaveSettings writes settings to path as TOML
func SaveSettings(path string, settings *Settings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(settings); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
