package monitor

import (
	"context"
	"errors"
	"net"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/AndyHazz/quickssh/internal/config"
	"github.com/AndyHazz/quickssh/internal/health"
	"github.com/AndyHazz/quickssh/internal/journal"
	"github.com/AndyHazz/quickssh/internal/sshconfig"
)

type switchDialer struct {
	mu sync.Mutex
	up map[string]bool
}

func (d *switchDialer) set(addr string, up bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.up[addr] = up
}

func (d *switchDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	d.mu.Lock()
	up := d.up[address]
	d.mu.Unlock()
	if !up {
		return nil, errors.New("connection refused")
	}
	client, server := net.Pipe()
	server.Close()
	return client, nil
}

func testChecker(d health.Dialer) *health.Checker {
	return &health.Checker{Dialer: d, Timeout: time.Second, Concurrency: 4}
}

func staticHosts(aliases ...string) HostSource {
	return func() ([]sshconfig.Host, error) {
		var hosts []sshconfig.Host
		for _, a := range aliases {
			hosts = append(hosts, sshconfig.NewHost(a))
		}
		return hosts, nil
	}
}

func TestMonitor_New(t *testing.T) {
	m := New(30*time.Second, health.NewChecker(0, 0), staticHosts())
	if m.interval != 30*time.Second {
		t.Errorf("interval = %v, want %v", m.interval, 30*time.Second)
	}
	if m.onUpdate != nil || m.journal != nil {
		t.Error("callback and journal should default to nil")
	}
}

func TestMonitor_CheckAllEmpty(t *testing.T) {
	m := New(time.Second, testChecker(&switchDialer{up: map[string]bool{}}), staticHosts())

	if results := m.checkAll(context.Background()); len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestMonitor_SourceError(t *testing.T) {
	called := false
	m := New(time.Second, testChecker(&switchDialer{up: map[string]bool{}}),
		func() ([]sshconfig.Host, error) { return nil, errors.New("parse failed") },
		WithCallback(func(Update) { called = true }),
	)

	if results := m.checkAll(context.Background()); results != nil {
		t.Errorf("got %v, want nil", results)
	}
	if called {
		t.Error("callback should not run when hosts cannot be loaded")
	}
}

func TestMonitor_ReportsChanges(t *testing.T) {
	d := &switchDialer{up: map[string]bool{"web:22": true}}
	var updates []Update
	m := New(time.Second, testChecker(d), staticHosts("web", "db"),
		WithCallback(func(u Update) { updates = append(updates, u) }),
	)
	ctx := context.Background()

	m.checkAll(ctx)
	m.checkAll(ctx)
	d.set("db:22", true)
	m.checkAll(ctx)

	if len(updates) != 3 {
		t.Fatalf("got %d updates, want 3", len(updates))
	}
	if n := len(updates[0].Changed); n != 2 {
		t.Errorf("first round changed = %d, want 2", n)
	}
	if n := len(updates[1].Changed); n != 0 {
		t.Errorf("second round changed = %d, want 0", n)
	}
	if c := updates[2].Changed; len(c) != 1 || c[0].Alias != "db" || c[0].Status != sshconfig.StatusOnline {
		t.Errorf("third round changed = %+v, want db online", c)
	}
	if n := len(updates[2].Results); n != 2 {
		t.Errorf("third round results = %d, want 2", n)
	}
}

func TestMonitor_Journal(t *testing.T) {
	dir := t.TempDir()
	j := journal.New(config.NewPaths(filepath.Join(dir, "c"), filepath.Join(dir, "s"), ""))
	d := &switchDialer{up: map[string]bool{"web:22": true}}
	m := New(time.Second, testChecker(d), staticHosts("web"), WithJournal(j))
	ctx := context.Background()

	m.checkAll(ctx)
	m.checkAll(ctx)
	d.set("web:22", false)
	m.checkAll(ctx)

	events, err := j.Events("web")
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Details != "online" || events[1].Details != "offline" {
		t.Errorf("details = %q, %q; want online, offline", events[0].Details, events[1].Details)
	}
	if events[0].Type != journal.EventStatus {
		t.Errorf("type = %q, want %q", events[0].Type, journal.EventStatus)
	}
}

func TestMonitor_RunCancellation(t *testing.T) {
	var mu sync.Mutex
	rounds := 0
	m := New(50*time.Millisecond, testChecker(&switchDialer{up: map[string]bool{}}), staticHosts("web"),
		WithCallback(func(Update) {
			mu.Lock()
			rounds++
			mu.Unlock()
		}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- m.Run(ctx)
	}()

	time.Sleep(180 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not stop after context cancellation")
	}

	mu.Lock()
	defer mu.Unlock()
	if rounds < 2 {
		t.Errorf("rounds = %d, want at least 2", rounds)
	}
}
