// Package app provides the application context for quickssh.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    Paths    *config.Paths          // Config, state and ssh config locations
//	    Settings *config.Settings       // settings.toml preferences
//	    FS       system.FileSystem      // File access
//	    Executor system.CommandExecutor // ssh, avahi-browse, terminals
//	}
//
// # Creating an App
//
//	// Production usage
//	a := app.New(app.WithSettings(settings))
//
//	// Testing with fakes
//	a := app.New(
//	    app.WithPaths(testPaths),
//	    app.WithFS(system.NewMockFS()),
//	    app.WithExecutor(system.NewMockExecutor()),
//	)
//
// # Storage helpers
//
// LoadConfig/UpdateConfig and LoadState/UpdateState wrap the hostfile and
// state packages and translate failures into typed errors with the config
// and state exit codes. Record appends to the host journal.
package app
