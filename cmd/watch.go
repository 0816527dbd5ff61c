package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AndyHazz/quickssh/internal/hostfile"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-check the ssh config whenever it changes",
	Long: `Watches the ssh config and parses it again after every save, printing a
summary and any warnings. Useful while editing the file by hand.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	a := getApp()
	path := a.Paths.SSHConfig
	out := cmd.OutOrStdout()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report := func() {
		doc, warnings, err := a.LoadConfig()
		if err != nil {
			logWarning("%v", err)
			return
		}
		logInfo("%s: %d host(s) in %d group(s), %d warning(s)", path, doc.HostCount(), len(doc.Groups), len(warnings))
		printWarnings(out, path, warnings)
	}

	report()
	logInfo("Watching %s, press Ctrl+C to stop", path)

	err := hostfile.Watch(ctx, path, hostfile.DefaultDebounce, func(err error) {
		if err != nil {
			logWarning("watch error: %v", err)
			return
		}
		report()
	})
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
