package testutil

import (
	"path/filepath"
	"testing"

	"github.com/AndyHazz/quickssh/internal/app"
	"github.com/AndyHazz/quickssh/internal/config"
	"github.com/AndyHazz/quickssh/internal/logging"
	"github.com/AndyHazz/quickssh/internal/system"
)

// TestEnv holds the test environment
type TestEnv struct {
	T      testing.TB
	TmpDir string
	Paths  *config.Paths
	FS     *system.MockFS
	Exec   *system.MockExecutor
	App    *app.App
}

// NewTestEnv creates an App backed by a MockFS and MockExecutor and installs
// it as app.Default until the test finishes. The journal is the only thing
// written to disk, under a temporary state directory.
func NewTestEnv(t testing.TB) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()
	paths := config.NewPaths(
		filepath.Join(tmpDir, "config"),
		filepath.Join(tmpDir, "state"),
		filepath.Join(tmpDir, "home", ".ssh", "config"),
	)

	fs := system.NewMockFS()
	exec := system.NewMockExecutor()
	testApp := app.New(
		app.WithPaths(paths),
		app.WithSettings(config.DefaultSettings()),
		app.WithFS(fs),
		app.WithExecutor(exec),
	)

	original := app.Default
	app.SetDefault(testApp)
	logging.Discard()
	t.Cleanup(func() { app.SetDefault(original) })

	return &TestEnv{
		T:      t,
		TmpDir: tmpDir,
		Paths:  paths,
		FS:     fs,
		Exec:   exec,
		App:    testApp,
	}
}

// WriteSSHConfig replaces the ssh config with text.
func (e *TestEnv) WriteSSHConfig(text string) {
	e.FS.AddFile(e.Paths.SSHConfig, []byte(text), 0600)
}

// WriteFixture installs a fixture as the ssh config.
func (e *TestEnv) WriteFixture(name string) {
	e.T.Helper()
	e.WriteSSHConfig(MustSSHConfig(e.T, name))
}

// SSHConfig returns the current ssh config text, or "" if none was written.
func (e *TestEnv) SSHConfig() string {
	data, _ := e.FS.GetFile(e.Paths.SSHConfig)
	return string(data)
}
