package testutil

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
	"testing"
)

//go:embed fixtures/*.sshconfig
var fixturesFS embed.FS

const fixtureExt = ".sshconfig"

// LoadFixture loads a fixture file by name, with or without its extension.
func LoadFixture(name string) ([]byte, error) {
	if !strings.HasSuffix(name, fixtureExt) {
		name += fixtureExt
	}
	return fixturesFS.ReadFile("fixtures/" + name)
}

// MustSSHConfig returns the text of an ssh config fixture, failing the test
// if it does not exist.
func MustSSHConfig(t testing.TB, name string) string {
	t.Helper()
	data, err := LoadFixture(name)
	if err != nil {
		t.Fatalf("failed to load fixture %s: %v", name, err)
	}
	return string(data)
}

// SSHConfigFixtures returns the names of all ssh config fixtures, sorted and
// without extension.
func SSHConfigFixtures() []string {
	entries, err := fs.ReadDir(fixturesFS, "fixtures")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), fixtureExt); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
