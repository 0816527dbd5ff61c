// Package testutil provides test fixtures and utilities.
//
// # Fixtures
//
// ssh config fixtures are embedded using go:embed:
//
//	fixtures/basic.sshconfig      // plain hosts, no groups
//	fixtures/grouped.sshconfig    // GroupStart/GroupEnd blocks
//	fixtures/wildcards.sshconfig  // Host * and pattern blocks
//	fixtures/complex.sshconfig    // Include, Match and custom directives
//	fixtures/edgecases.sshconfig  // orphans and invalid MAC values
//
// Load them with MustSSHConfig, or iterate over SSHConfigFixtures for
// round-trip tests:
//
//	for _, name := range testutil.SSHConfigFixtures() {
//	    doc := sshconfig.Parse(testutil.MustSSHConfig(t, name))
//	    ...
//	}
//
// # Test environment
//
// NewTestEnv builds an app.App over system.MockFS and system.MockExecutor
// and installs it as app.Default for the duration of the test:
//
//	env := testutil.NewTestEnv(t)
//	env.WriteFixture("grouped")
//	// run a command, then inspect env.SSHConfig() and env.Exec.Commands
package testutil
