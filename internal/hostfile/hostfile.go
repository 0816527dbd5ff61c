package hostfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/AndyHazz/quickssh/internal/logging"
	"github.com/AndyHazz/quickssh/internal/sshconfig"
	"github.com/AndyHazz/quickssh/internal/system"
)

const (
	// FileMode is the mode every saved config gets.
	FileMode fs.FileMode = 0600
	// DirMode is used when the config's directory has to be created.
	DirMode fs.FileMode = 0700

	BackupSuffix = ".bak"
	tempSuffix   = ".quickssh.tmp"
)

var userHomeDir = os.UserHomeDir

// Load reads and parses the config at path. A missing file yields an empty
// document and no error.
func Load(fsys system.FileSystem, path string) (*sshconfig.Document, []sshconfig.Warning, error) {
	data, err := fsys.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logging.Debug("ssh config does not exist yet", "path", path)
		return &sshconfig.Document{}, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, warnings := sshconfig.ParseWithWarnings(string(data))
	for _, w := range warnings {
		logging.Debug("ssh config warning", "path", path, "line", w.Line, "kind", w.Kind, "text", w.Text)
	}
	logging.Debug("loaded ssh config", "path", path, "groups", len(doc.Groups), "hosts", doc.HostCount(), "rawBlocks", len(doc.RawBlocks))
	return doc, warnings, nil
}

// Save serializes doc and replaces the file at path. The previous contents,
// if any, are copied to path+".bak" first.
func Save(fsys system.FileSystem, path string, doc *sshconfig.Document) error {
	return WriteText(fsys, path, doc.String())
}

// WriteText replaces the file at path with text using the same backup and
// rename sequence as Save.
func WriteText(fsys system.FileSystem, path, text string) error {
	if err := fsys.MkdirAll(filepath.Dir(path), DirMode); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	if fsys.Exists(path) {
		if err := fsys.CopyFile(path, path+BackupSuffix); err != nil {
			return fmt.Errorf("failed to back up %s: %w", path, err)
		}
	}

	tmp := path + tempSuffix
	if err := fsys.WriteFile(tmp, []byte(text), FileMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := fsys.Rename(tmp, path); err != nil {
		if rmErr := fsys.Remove(tmp); rmErr != nil {
			logging.Warn("failed to remove temporary file", "path", tmp, "error", rmErr)
		}
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	logging.Debug("saved ssh config", "path", path, "bytes", len(text))
	return nil
}

// Update loads the config, applies fn and saves the result. Nothing is
// written when fn returns an error.
func Update(fsys system.FileSystem, path string, fn func(*sshconfig.Document) (*sshconfig.Document, error)) (*sshconfig.Document, error) {
	doc, _, err := Load(fsys, path)
	if err != nil {
		return nil, err
	}
	updated, err := fn(doc)
	if err != nil {
		return nil, err
	}
	if err := Save(fsys, path, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// ExpandHome expands a leading "~" or "~/" to the user's home directory.
// Other paths are returned unchanged.
func ExpandHome(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}
	if len(path) > 1 && path[1] != '/' && path[1] != filepath.Separator {
		// "~user" is left for the shell.
		return path, nil
	}

	home, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand home directory: %w", err)
	}
	if len(path) == 1 {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
