package cmd

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/AndyHazz/quickssh/internal/model"
	"github.com/AndyHazz/quickssh/internal/state"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently connected hosts",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var (
	historyLimit int
	historyClear bool
)

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "Maximum number of hosts to show (0 for all)")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Forget all connection history")
	rootCmd.AddCommand(historyCmd)
}

type historyEntry struct {
	alias string
	at    time.Time
}

func runHistory(cmd *cobra.Command, args []string) error {
	a := getApp()

	if historyClear {
		if _, err := a.UpdateState(func(s *state.State) *state.State {
			s.History = map[string]time.Time{}
			return s
		}); err != nil {
			return err
		}
		logSuccess("Cleared connection history")
		return nil
	}

	s, err := a.LoadState()
	if err != nil {
		return err
	}
	if len(s.History) == 0 {
		logInfo("No connections recorded yet")
		return nil
	}

	entries := make([]historyEntry, 0, len(s.History))
	for alias, at := range s.History {
		entries = append(entries, historyEntry{alias: alias, at: at})
	}
	slices.SortFunc(entries, func(a, b historyEntry) int {
		if c := b.at.Compare(a.at); c != 0 {
			return c
		}
		return strings.Compare(a.alias, b.alias)
	})
	if historyLimit > 0 && len(entries) > historyLimit {
		entries = entries[:historyLimit]
	}

	now := time.Now()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALIAS\tLAST CONNECTED\tWHEN")
	fmt.Fprintln(w, "-----\t--------------\t----")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.alias, e.at.Local().Format("2006-01-02 15:04"), dash(model.FormatTimeAgo(e.at, now)))
	}
	return w.Flush()
}
