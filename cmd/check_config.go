package cmd

import (
	"github.com/spf13/cobra"

	"github.com/AndyHazz/quickssh/internal/errors"
)

var checkConfigCmd = &cobra.Command{
	Use:   "check-config",
	Short: "Report lines quickssh will not keep as written",
	Long: `Parses the ssh config and lists every warning: invalid MAC addresses,
multi-name Host lines, options with no value and options outside any Host
block. Saving the file through quickssh normalizes or drops these lines.`,
	Args: cobra.NoArgs,
	RunE: runCheckConfig,
}

var checkConfigStrict bool

func init() {
	checkConfigCmd.Flags().BoolVar(&checkConfigStrict, "strict", false, "Exit with an error when there are warnings")
	rootCmd.AddCommand(checkConfigCmd)
}

func runCheckConfig(cmd *cobra.Command, args []string) error {
	a := getApp()
	path := a.Paths.SSHConfig

	doc, warnings, err := a.LoadConfig()
	if err != nil {
		return err
	}

	if len(warnings) == 0 {
		logSuccess("%s: %d host(s) in %d group(s), no warnings", path, doc.HostCount(), len(doc.Groups))
		return nil
	}

	printWarnings(cmd.OutOrStdout(), path, warnings)
	if checkConfigStrict {
		return errors.ValidationError("ssh config has warnings")
	}
	logWarning("%d warning(s)", len(warnings))
	return nil
}
