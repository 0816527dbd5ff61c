package health

import (
	"context"
	"net"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/AndyHazz/quickssh/internal/logging"
	"github.com/AndyHazz/quickssh/internal/sshconfig"
)

const (
	// DefaultPort is used for hosts without a Port directive.
	DefaultPort = "22"

	DefaultTimeout     = 3 * time.Second
	DefaultConcurrency = 16
)

// Dialer opens TCP connections. *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Result is the outcome of checking one host.
type Result struct {
	Alias   string           `json:"alias" yaml:"alias"`
	Address string           `json:"address,omitempty" yaml:"address,omitempty"`
	Status  sshconfig.Status `json:"status" yaml:"status"`
	Latency time.Duration    `json:"latency,omitempty" yaml:"latency,omitempty"`
	Error   string           `json:"error,omitempty" yaml:"error,omitempty"`
}

// Checker probes hosts by opening a TCP connection to their ssh port.
type Checker struct {
	Dialer      Dialer
	Timeout     time.Duration
	Concurrency int
}

// NewChecker returns a checker using a net.Dialer. Non-positive values fall
// back to DefaultTimeout and DefaultConcurrency.
func NewChecker(timeout time.Duration, concurrency int) *Checker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Checker{
		Dialer:      &net.Dialer{},
		Timeout:     timeout,
		Concurrency: concurrency,
	}
}

// Address returns the host:port a liveness check dials. Hosts reached
// through ProxyJump or ProxyCommand cannot be probed directly and report
// false.
func Address(h sshconfig.Host) (string, bool) {
	for _, key := range []string{"ProxyJump", "ProxyCommand"} {
		if v, ok := h.Option(key); ok && v != "none" {
			return "", false
		}
	}

	host := h.HostName
	if host == "" {
		host = h.Alias
	}
	port := h.Port
	if port == "" {
		port = DefaultPort
	}
	return net.JoinHostPort(host, port), true
}

// Check dials h once. Unreachable hosts are offline; hosts that cannot be
// probed stay unknown.
func (c *Checker) Check(ctx context.Context, h sshconfig.Host) Result {
	res := Result{Alias: h.Alias, Status: sshconfig.StatusUnknown}

	addr, ok := Address(h)
	if !ok {
		return res
	}
	res.Address = addr

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	start := time.Now()
	conn, err := c.Dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		res.Status = sshconfig.StatusOffline
		res.Error = err.Error()
		logging.Debug("host unreachable", "host", h.Alias, "address", addr, "error", err)
		return res
	}
	res.Latency = time.Since(start)
	conn.Close()

	res.Status = sshconfig.StatusOnline
	return res
}

// CheckAll checks hosts concurrently, at most Concurrency at a time, and
// returns results in the order of hosts.
func (c *Checker) CheckAll(ctx context.Context, hosts []sshconfig.Host) []Result {
	results := make([]Result, len(hosts))

	var g errgroup.Group
	g.SetLimit(c.Concurrency)
	for i, h := range hosts {
		g.Go(func() error {
			results[i] = c.Check(ctx, h)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Statuses maps aliases to their checked status.
func Statuses(results []Result) map[string]sshconfig.Status {
	m := make(map[string]sshconfig.Status, len(results))
	for _, r := range results {
		m[r.Alias] = r.Status
	}
	return m
}

// Apply returns a copy of groups with each host's Status taken from
// statuses. Hosts missing from statuses keep their current status.
func Apply(groups []sshconfig.Group, statuses map[string]sshconfig.Status) []sshconfig.Group {
	out := make([]sshconfig.Group, len(groups))
	for i, g := range groups {
		out[i] = sshconfig.Group{Name: g.Name, Hosts: make([]sshconfig.Host, len(g.Hosts))}
		copy(out[i].Hosts, g.Hosts)
		for j := range out[i].Hosts {
			if s, ok := statuses[out[i].Hosts[j].Alias]; ok {
				out[i].Hosts[j].Status = s
			}
		}
	}
	return out
}

// Summary counts results by status.
func Summary(results []Result) (online, offline, unknown int) {
	for _, r := range results {
		switch r.Status {
		case sshconfig.StatusOnline:
			online++
		case sshconfig.StatusOffline:
			offline++
		default:
			unknown++
		}
	}
	return online, offline, unknown
}

// FormatLatency renders a dial latency for tables.
func FormatLatency(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	if d < time.Millisecond {
		return "<1ms"
	}
	return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
}
