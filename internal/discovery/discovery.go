// Package discovery finds SSH servers announced over mDNS with
// avahi-browse and filters out the ones already in the ssh config.
package discovery

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/AndyHazz/quickssh/internal/errors"
	"github.com/AndyHazz/quickssh/internal/logging"
	"github.com/AndyHazz/quickssh/internal/sshconfig"
	"github.com/AndyHazz/quickssh/internal/system"
)

const (
	// Icon marks discovered hosts in listings.
	Icon = "network-wired"

	browseCommand = "avahi-browse"
	serviceType   = "_ssh._tcp"

	// DefaultTimeout bounds a single avahi-browse run.
	DefaultTimeout = 10 * time.Second
)

// avahi-browse -p resolved record fields.
const (
	fieldProtocol = 2
	fieldName     = 3
	fieldHost     = 6
	fieldAddress  = 7
	minFields     = 9
)

// Parse extracts IPv4 SSH services from `avahi-browse -tpr` output. Hosts
// whose address or mDNS host name appears in configured (compared
// case-insensitively) are skipped, as are repeated addresses. Discovered
// hosts are online, carry Icon and have the service name as alias.
func Parse(output string, configured []string) []sshconfig.Host {
	known := make(map[string]bool, len(configured))
	for _, name := range configured {
		known[strings.ToLower(name)] = true
	}

	var hosts []sshconfig.Host
	seen := map[string]bool{}
	for _, line := range strings.Split(output, "\n") {
		if !strings.HasPrefix(line, "=") {
			continue
		}
		fields := strings.Split(line, ";")
		if len(fields) < minFields || fields[fieldProtocol] != "IPv4" {
			continue
		}

		name := unescape(fields[fieldName])
		mdnsHost := fields[fieldHost]
		address := fields[fieldAddress]

		if known[strings.ToLower(address)] || known[strings.ToLower(mdnsHost)] || seen[address] {
			continue
		}
		seen[address] = true

		hosts = append(hosts, sshconfig.Host{
			Alias:    name,
			HostName: address,
			Icon:     Icon,
			Status:   sshconfig.StatusOnline,
		})
	}
	return hosts
}

// ConfiguredNames returns every alias and host name in doc, lowercased, for
// use as the configured argument of Parse.
func ConfiguredNames(doc *sshconfig.Document) []string {
	var names []string
	for _, h := range doc.Hosts() {
		names = append(names, strings.ToLower(h.Alias), strings.ToLower(h.HostName))
	}
	return names
}

// Discover runs avahi-browse and parses its output.
func Discover(ctx context.Context, exec system.CommandExecutor, configured []string) ([]sshconfig.Host, error) {
	if _, err := exec.LookPath(browseCommand); err != nil {
		return nil, errors.DiscoveryError("avahi-browse is not installed", err)
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	out, err := exec.Output(ctx, browseCommand, "-tpr", serviceType)
	if err != nil {
		return nil, errors.DiscoveryError("avahi-browse failed", err)
	}

	hosts := Parse(string(out), configured)
	logging.Debug("mdns discovery finished", "found", len(hosts))
	return hosts, nil
}

// SuggestAlias turns a service name such as "Living Room NAS" into an alias
// that ValidateAlias accepts ("living-room-nas").
func SuggestAlias(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// unescape decodes avahi's \DDD decimal escapes (e.g. "\032" for a space)
// and backslash-escaped punctuation.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		if i+3 < len(s) && isDigits(s[i+1:i+4]) {
			if n, err := strconv.Atoi(s[i+1 : i+4]); err == nil && n < 256 {
				b.WriteByte(byte(n))
				i += 3
				continue
			}
		}
		b.WriteByte(s[i+1])
		i++
	}
	return b.String()
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
