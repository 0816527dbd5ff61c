package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/AndyHazz/quickssh/internal/app"
	"github.com/AndyHazz/quickssh/internal/config"
	"github.com/AndyHazz/quickssh/internal/editor"
	"github.com/AndyHazz/quickssh/internal/errors"
	"github.com/AndyHazz/quickssh/internal/health"
	"github.com/AndyHazz/quickssh/internal/sshconfig"
	"github.com/AndyHazz/quickssh/internal/wol"
)

// getApp returns the application context set up by the root command.
func getApp() *app.App {
	return app.Default
}

// settings returns the loaded user settings.
func settings() *config.Settings {
	return app.Default.Settings
}

// loadDocument loads the ssh config and logs any parse warnings.
func loadDocument() (*sshconfig.Document, error) {
	doc, warnings, err := getApp().LoadConfig()
	if err != nil {
		return nil, err
	}
	if len(warnings) > 0 {
		logWarning("%s: %d warning(s), run 'quickssh check-config' for details", getApp().Paths.SSHConfig, len(warnings))
	}
	return doc, nil
}

// loadHost loads the ssh config and returns the host named alias, or a
// HostNotFound error.
func loadHost(alias string) (*sshconfig.Document, sshconfig.Host, editor.Location, error) {
	doc, err := loadDocument()
	if err != nil {
		return nil, sshconfig.Host{}, editor.Location{}, err
	}
	h, loc, ok := editor.FindHost(doc, alias)
	if !ok {
		return nil, sshconfig.Host{}, editor.Location{}, errors.HostNotFound(alias)
	}
	return doc, h, loc, nil
}

// newChecker returns a liveness checker configured from the settings.
func newChecker() *health.Checker {
	s := settings()
	return health.NewChecker(s.CheckTimeout.Duration, s.CheckConcurrency)
}

// newSender returns a Wake-on-LAN sender configured from the settings.
func newSender() *wol.Sender {
	s := settings()
	return wol.NewSender(s.WOLBroadcast, s.WOLPort)
}

// groupLabel names a group for messages.
func groupLabel(name string) string {
	if name == "" {
		return "ungrouped"
	}
	return fmt.Sprintf("group %q", name)
}

// printWarnings writes parse warnings one per line.
func printWarnings(w io.Writer, path string, warnings []sshconfig.Warning) {
	for _, warn := range warnings {
		fmt.Fprintf(w, "%s: %s\n", path, warn.String())
	}
}

// parseOptions turns "Key=Value" or "Key Value" flags into options.
func parseOptions(values []string) ([]sshconfig.Option, error) {
	var opts []sshconfig.Option
	for _, v := range values {
		key, value, ok := strings.Cut(v, "=")
		if !ok {
			key, value, ok = strings.Cut(v, " ")
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if !ok || key == "" || value == "" || strings.ContainsAny(key, " \t") {
			return nil, errors.ValidationError(fmt.Sprintf("invalid option %q, expected Key=Value", v))
		}
		opts = append(opts, sshconfig.Option{Key: key, Value: value})
	}
	return opts, nil
}
