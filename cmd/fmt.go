package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AndyHazz/quickssh/internal/errors"
	"github.com/AndyHazz/quickssh/internal/hostfile"
	"github.com/AndyHazz/quickssh/internal/sshconfig"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt",
	Short: "Rewrite the ssh config in canonical form",
	Long: `Parses the ssh config and writes it back the way quickssh saves it:
one host per block, four-space indentation, directives in a fixed order and
a single blank line between blocks. Blocks quickssh does not manage (Match,
wildcard Host patterns) are kept and moved to the end of the file.

The previous file is kept as a .bak backup.`,
	Args: cobra.NoArgs,
	RunE: runFmt,
}

var (
	fmtCheck  bool
	fmtDiff   bool
	fmtStdout bool
)

func init() {
	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "Exit with an error if the file is not formatted, without writing")
	fmtCmd.Flags().BoolVar(&fmtDiff, "diff", false, "Show the lines that would change")
	fmtCmd.Flags().BoolVar(&fmtStdout, "stdout", false, "Print the formatted config instead of writing it")
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	a := getApp()
	path := a.Paths.SSHConfig
	out := cmd.OutOrStdout()

	data, err := a.FS.ReadFile(path)
	if err != nil {
		return errors.ConfigError("failed to read ssh config", err)
	}
	original := string(data)
	formatted := sshconfig.Parse(original).String()

	if fmtStdout {
		_, err := io.WriteString(out, formatted)
		return err
	}

	changed := formatted != original
	if fmtDiff && changed {
		writeLineDiff(out, original, formatted)
	}
	if fmtCheck {
		if changed {
			return errors.ValidationError(path + " is not formatted")
		}
		logInfo("%s is formatted", path)
		return nil
	}
	if !changed {
		logInfo("%s is already formatted", path)
		return nil
	}

	if err := hostfile.WriteText(a.FS, path, formatted); err != nil {
		return errors.ConfigError("failed to write ssh config", err)
	}
	logSuccess("Formatted %s (backup in %s%s)", path, path, hostfile.BackupSuffix)
	return nil
}

// writeLineDiff lists lines that appear more often in one text than the
// other, removed lines first. Order within the file is not compared.
func writeLineDiff(w io.Writer, before, after string) {
	counts := map[string]int{}
	for _, l := range strings.Split(before, "\n") {
		counts[l]++
	}
	for _, l := range strings.Split(after, "\n") {
		counts[l]--
	}

	removed, added := 0, 0
	for _, l := range strings.Split(before, "\n") {
		if counts[l] > 0 {
			fmt.Fprintf(w, "- %s\n", l)
			counts[l]--
			removed++
		}
	}
	for _, l := range strings.Split(after, "\n") {
		if counts[l] < 0 {
			fmt.Fprintf(w, "+ %s\n", l)
			counts[l]++
			added++
		}
	}
	fmt.Fprintf(w, "%d line(s) removed, %d line(s) added\n", removed, added)
}
