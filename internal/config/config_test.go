package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultPaths(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "cfg"))
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv(EnvSSHConfig, "")

	paths := DefaultPaths()

	tests := []struct {
		name, got, want string
	}{
		{"ConfigDir", paths.ConfigDir, filepath.Join(tmp, "cfg", "quickssh")},
		{"StateDir", paths.StateDir, filepath.Join(tmp, ".local", "state", "quickssh")},
		{"SSHConfig", paths.SSHConfig, filepath.Join(tmp, ".ssh", "config")},
		{"SettingsFile", paths.SettingsFile, filepath.Join(tmp, "cfg", "quickssh", "settings.toml")},
		{"StateFile", paths.StateFile, filepath.Join(tmp, ".local", "state", "quickssh", "state.json")},
		{"JournalDir", paths.JournalDir, filepath.Join(tmp, ".local", "state", "quickssh", "journal")},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestDefaultPaths_SSHConfigEnv(t *testing.T) {
	t.Setenv(EnvSSHConfig, "/tmp/custom_config")

	if got := DefaultPaths().SSHConfig; got != "/tmp/custom_config" {
		t.Errorf("SSHConfig = %q, want %q", got, "/tmp/custom_config")
	}
}

func TestPathsOverrides(t *testing.T) {
	paths := NewPaths("/c", "/s", "/home/u/.ssh/config")

	withDir := paths.WithConfigDir("/tmp/q")
	if withDir.SettingsFile != filepath.Join("/tmp/q", "settings.toml") {
		t.Errorf("SettingsFile = %q", withDir.SettingsFile)
	}
	if withDir.StateFile != filepath.Join("/tmp/q", "state", "state.json") {
		t.Errorf("StateFile = %q", withDir.StateFile)
	}
	if withDir.SSHConfig != paths.SSHConfig {
		t.Errorf("SSHConfig = %q, want %q", withDir.SSHConfig, paths.SSHConfig)
	}

	withSSH := paths.WithSSHConfig("/other")
	if withSSH.SSHConfig != "/other" || paths.SSHConfig != "/home/u/.ssh/config" {
		t.Errorf("WithSSHConfig must copy: got %q, original %q", withSSH.SSHConfig, paths.SSHConfig)
	}
}

func TestJournalFile(t *testing.T) {
	base := t.TempDir()
	paths := NewPaths(base, base, "")

	tests := []struct {
		name    string
		alias   string
		wantErr bool
	}{
		{"simple alias", "web", false},
		{"dotted alias", "db.internal", false},
		{"empty", "", true},
		{"parent traversal", "..", true},
		{"contains separator", "../etc/passwd", true},
		{"absolute", "/etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := paths.JournalFile(tt.alias)
			if (err != nil) != tt.wantErr {
				t.Fatalf("JournalFile(%q) error = %v, wantErr %v", tt.alias, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if !strings.HasPrefix(got, paths.JournalDir+string(filepath.Separator)) {
				t.Errorf("JournalFile(%q) = %q, escapes %q", tt.alias, got, paths.JournalDir)
			}
			if filepath.Base(got) != tt.alias+".jsonl" {
				t.Errorf("JournalFile(%q) = %q, want base %q", tt.alias, got, tt.alias+".jsonl")
			}
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	for _, s := range []string{"config", "recent", "alphabetical"} {
		if got, err := ParseSortOrder(s); err != nil || string(got) != s {
			t.Errorf("ParseSortOrder(%q) = %q, %v", s, got, err)
		}
	}
	if _, err := ParseSortOrder("random"); err == nil {
		t.Error("ParseSortOrder(random) should fail")
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Settings)
		wantErr bool
	}{
		{"defaults", func(*Settings) {}, false},
		{"bad sort order", func(s *Settings) { s.SortOrder = "random" }, true},
		{"zero timeout", func(s *Settings) { s.CheckTimeout.Duration = 0 }, true},
		{"short interval", func(s *Settings) { s.CheckInterval.Duration = time.Millisecond }, true},
		{"zero concurrency", func(s *Settings) { s.CheckConcurrency = 0 }, true},
		{"empty ssh binary", func(s *Settings) { s.SSHBinary = "" }, true},
		{"wol port too high", func(s *Settings) { s.WOLPort = 70000 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(s)
			if err := s.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadSettings_Missing(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "settings.toml"))
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if *s != *DefaultSettings() {
		t.Errorf("LoadSettings() = %+v, want defaults", s)
	}
}

func TestLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	data := `sort_order = "recent"
grouping = false
check_timeout = "500ms"
wol_port = 7
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if s.SortOrder != SortRecent {
		t.Errorf("SortOrder = %q, want %q", s.SortOrder, SortRecent)
	}
	if s.Grouping {
		t.Error("Grouping = true, want false")
	}
	if s.CheckTimeout.Duration != 500*time.Millisecond {
		t.Errorf("CheckTimeout = %v, want 500ms", s.CheckTimeout)
	}
	if s.WOLPort != 7 {
		t.Errorf("WOLPort = %d, want 7", s.WOLPort)
	}
	// Untouched keys keep defaults.
	if s.SSHBinary != "ssh" || s.CheckConcurrency != 16 {
		t.Errorf("defaults not preserved: %+v", s)
	}
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax error", "sort_order = \n"},
		{"bad duration", `check_timeout = "soon"`},
		{"fails validation", `sort_order = "random"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.toml")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadSettings(path); err == nil {
				t.Error("LoadSettings() should fail")
			}
		})
	}
}

func TestSaveSettings_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.toml")
	want := DefaultSettings()
	want.SortOrder = SortAlphabetical
	want.HideUnreachable = true
	want.CheckTimeout = Duration{1500 * time.Millisecond}
	want.TerminalCommand = "foot -e"

	if err := SaveSettings(path, want); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	got, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if *got != *want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestSaveSettings_RejectsInvalid(t *testing.T) {
	s := DefaultSettings()
	s.CheckConcurrency = -1
	if err := SaveSettings(filepath.Join(t.TempDir(), "s.toml"), s); err == nil {
		t.Error("SaveSettings() should reject invalid settings")
	}
}
