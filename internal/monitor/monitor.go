// Package monitor provides periodic liveness checks for configured hosts.
package monitor

import (
	"context"
	"time"

	"github.com/AndyHazz/quickssh/internal/health"
	"github.com/AndyHazz/quickssh/internal/journal"
	"github.com/AndyHazz/quickssh/internal/logging"
	"github.com/AndyHazz/quickssh/internal/sshconfig"
)

// HostSource returns the hosts to check. It is called before every round so
// edits to the config are picked up.
type HostSource func() ([]sshconfig.Host, error)

// Update is passed to the callback after every round. Changed holds the
// results whose status differs from the previous round; on the first round
// every result counts as changed.
type Update struct {
	Results []health.Result
	Changed []health.Result
}

// Monitor periodically checks the liveness of all hosts.
type Monitor struct {
	interval time.Duration
	checker  *health.Checker
	hosts    HostSource
	onUpdate func(Update)
	journal  *journal.Journal

	last map[string]sshconfig.Status
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithCallback sets the function called after every round.
func WithCallback(fn func(Update)) Option {
	return func(m *Monitor) {
		m.onUpdate = fn
	}
}

// WithJournal records status transitions in the host journal.
func WithJournal(j *journal.Journal) Option {
	return func(m *Monitor) {
		m.journal = j
	}
}

// New creates a new Monitor.
func New(interval time.Duration, checker *health.Checker, hosts HostSource, opts ...Option) *Monitor {
	m := &Monitor{
		interval: interval,
		checker:  checker,
		hosts:    hosts,
		last:     map[string]sshconfig.Status{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run starts the monitoring loop. It blocks until the context is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	logging.Debug("starting host monitor", "interval", m.interval)

	// Run an immediate check, then loop on interval.
	m.checkAll(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Debug("host monitor stopping")
			return ctx.Err()
		case <-ticker.C:
			m.checkAll(ctx)
		}
	}
}

// checkAll runs one round and reports it.
func (m *Monitor) checkAll(ctx context.Context) []health.Result {
	hosts, err := m.hosts()
	if err != nil {
		logging.Warn("monitor failed to load hosts", "error", err)
		return nil
	}

	results := m.checker.CheckAll(ctx, hosts)
	if ctx.Err() != nil {
		return nil
	}

	var changed []health.Result
	seen := make(map[string]sshconfig.Status, len(results))
	for _, r := range results {
		seen[r.Alias] = r.Status
		if prev, ok := m.last[r.Alias]; ok && prev == r.Status {
			continue
		}
		changed = append(changed, r)

		if m.journal != nil {
			if err := m.journal.Record(journal.EventStatus, r.Alias, string(r.Status)); err != nil {
				logging.Debug("failed to journal status", "host", r.Alias, "error", err)
			}
		}
	}
	m.last = seen

	if m.onUpdate != nil {
		m.onUpdate(Update{Results: results, Changed: changed})
	}
	return results
}
