package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/AndyHazz/quickssh/internal/errors"
	"github.com/AndyHazz/quickssh/internal/health"
	"github.com/AndyHazz/quickssh/internal/monitor"
	"github.com/AndyHazz/quickssh/internal/sshconfig"
)

var statusCmd = &cobra.Command{
	Use:   "status [alias...]",
	Short: "Check which hosts are reachable",
	Long: `Opens a TCP connection to the ssh port of every host (or only the given
aliases) and reports it online or offline. Hosts reached through ProxyJump
or ProxyCommand cannot be probed and are reported as unknown.

With --watch the check repeats every check_interval and only changes are
printed; transitions are also written to each host's journal.`,
	RunE: runStatus,
}

var (
	statusWatch  bool
	statusFormat string
)

func init() {
	statusCmd.Flags().BoolVarP(&statusWatch, "watch", "w", false, "Keep checking and report changes")
	statusCmd.Flags().StringVarP(&statusFormat, "format", "o", "table", "Output format: table, json or yaml")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	source := func() ([]sshconfig.Host, error) {
		doc, _, err := getApp().LoadConfig()
		if err != nil {
			return nil, err
		}
		return selectHosts(doc, args)
	}
	hosts, err := source()
	if err != nil {
		return err
	}

	checker := newChecker()
	out := cmd.OutOrStdout()

	if statusWatch {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watchStatus(ctx, out, checker, source)
	}

	if len(hosts) == 0 {
		logInfo("No hosts to check")
		return nil
	}

	results := checker.CheckAll(cmd.Context(), hosts)
	if statusFormat != "table" {
		return encode(out, statusFormat, results)
	}
	if err := writeResults(out, results); err != nil {
		return err
	}
	online, offline, unknown := health.Summary(results)
	logInfo("%d online, %d offline, %d unknown", online, offline, unknown)
	return nil
}

// selectHosts returns the hosts named by aliases, or every host.
func selectHosts(doc *sshconfig.Document, aliases []string) ([]sshconfig.Host, error) {
	if len(aliases) == 0 {
		return doc.Hosts(), nil
	}
	var hosts []sshconfig.Host
	for _, alias := range aliases {
		found := false
		for _, h := range doc.Hosts() {
			if h.Alias == alias {
				hosts = append(hosts, h)
				found = true
				break
			}
		}
		if !found {
			return nil, errors.HostNotFound(alias)
		}
	}
	return hosts, nil
}

func writeResults(out io.Writer, results []health.Result) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALIAS\tADDRESS\tSTATUS\tLATENCY")
	fmt.Fprintln(w, "-----\t-------\t------\t-------")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Alias, dash(r.Address), formatStatus(r.Status), health.FormatLatency(r.Latency))
	}
	return w.Flush()
}

func watchStatus(ctx context.Context, out io.Writer, checker *health.Checker, source monitor.HostSource) error {
	interval := settings().CheckInterval.Duration
	logInfo("Checking every %s, press Ctrl+C to stop", interval)

	m := monitor.New(interval, checker, source,
		monitor.WithJournal(getApp().Journal()),
		monitor.WithCallback(func(u monitor.Update) {
			ts := time.Now().Format("15:04:05")
			for _, r := range u.Changed {
				fmt.Fprintf(out, "[%s] %-20s %s\n", ts, r.Alias, formatStatus(r.Status))
			}
		}),
	)

	if err := m.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func formatStatus(s sshconfig.Status) string {
	switch s {
	case sshconfig.StatusOnline:
		return "● online"
	case sshconfig.StatusOffline:
		return "○ offline"
	default:
		return "· " + string(s)
	}
}
