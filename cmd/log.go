package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log <alias>",
	Short: "Show the journal for a host",
	Long: `Shows what quickssh recorded for a host: connections, quick-launch
commands, edits, wake requests and status changes seen by 'status --watch'.`,
	Args: cobra.ExactArgs(1),
	RunE: runLog,
}

var (
	logJSONL bool
	logTail  int
)

func init() {
	logCmd.Flags().BoolVar(&logJSONL, "jsonl", false, "Output events as JSON lines")
	logCmd.Flags().IntVarP(&logTail, "tail", "n", 0, "Only show the last n events")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	alias := args[0]
	out := cmd.OutOrStdout()

	events, err := getApp().Journal().Events(alias)
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}

	if len(events) == 0 {
		logInfo("No events recorded for %s", alias)
		return nil
	}
	if logTail > 0 && len(events) > logTail {
		events = events[len(events)-logTail:]
	}

	for _, e := range events {
		if logJSONL {
			data, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("failed to marshal event: %w", err)
			}
			fmt.Fprintln(out, string(data))
			continue
		}
		ts := e.Timestamp.Local().Format("2006-01-02 15:04:05")
		if e.Details != "" {
			fmt.Fprintf(out, "[%s] %-8s %s (%s)\n", ts, e.Type, e.Host, e.Details)
		} else {
			fmt.Fprintf(out, "[%s] %-8s %s\n", ts, e.Type, e.Host)
		}
	}

	return nil
}
