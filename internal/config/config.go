package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
)

const (
	AppName          = "quickssh"
	SettingsFileName = "settings.toml"
	StateFileName    = "state.json"
	JournalDirName   = "journal"

	// EnvSSHConfig overrides the ssh config file location.
	EnvSSHConfig = "QUICKSSH_SSH_CONFIG"
)

// Paths holds the configured paths
type Paths struct {
	ConfigDir    string
	StateDir     string
	SSHConfig    string
	SettingsFile string
	StateFile    string
	JournalDir   string
}

// DefaultPaths returns the XDG-based path configuration. The ssh config
// defaults to ~/.ssh/config unless QUICKSSH_SSH_CONFIG is set.
func DefaultPaths() *Paths {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = filepath.Join(home, ".local", "state")
	}

	sshConfig := os.Getenv(EnvSSHConfig)
	if sshConfig == "" {
		sshConfig = filepath.Join(home, ".ssh", "config")
	}

	return NewPaths(
		filepath.Join(configHome, AppName),
		filepath.Join(stateHome, AppName),
		sshConfig,
	)
}

// NewPaths derives the settings, state and journal locations from the two
// base directories.
func NewPaths(configDir, stateDir, sshConfig string) *Paths {
	return &Paths{
		ConfigDir:    configDir,
		StateDir:     stateDir,
		SSHConfig:    sshConfig,
		SettingsFile: filepath.Join(configDir, SettingsFileName),
		StateFile:    filepath.Join(stateDir, StateFileName),
		JournalDir:   filepath.Join(stateDir, JournalDirName),
	}
}

// WithConfigDir returns a copy of p rooted at dir for both configuration and
// state, as used by the --config-dir flag.
func (p *Paths) WithConfigDir(dir string) *Paths {
	return NewPaths(dir, filepath.Join(dir, "state"), p.SSHConfig)
}

// WithSSHConfig returns a copy of p pointing at a different ssh config file.
func (p *Paths) WithSSHConfig(path string) *Paths {
	cp := *p
	cp.SSHConfig = path
	return &cp
}

// JournalFile returns the per-host journal path for alias.
func (p *Paths) JournalFile(alias string) (string, error) {
	return safePath(p.JournalDir, alias, ".jsonl")
}

// safePath joins name onto baseDir without letting it escape. Names are
// single path elements; separators and parent references are rejected
// before the join, and securejoin resolves any symlinks inside baseDir.
func safePath(baseDir, name, suffix string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("name cannot be empty")
	}
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("name cannot be an absolute path")
	}
	if strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/') || name == "." || name == ".." {
		return "", fmt.Errorf("name cannot contain path separators")
	}

	path, err := securejoin.SecureJoin(baseDir, name+suffix)
	if err != nil {
		return "", fmt.Errorf("invalid path for %q: %w", name, err)
	}
	return path, nil
}
