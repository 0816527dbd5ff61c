package cmd

import (
	"github.com/spf13/cobra"

	"github.com/AndyHazz/quickssh/internal/sshconfig"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the parsed ssh config as JSON or YAML",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var exportFormat string

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "o", "json", "Output format: json or yaml")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument()
	if err != nil {
		return err
	}
	if doc.Groups == nil {
		doc.Groups = []sshconfig.Group{}
	}
	return encode(cmd.OutOrStdout(), exportFormat, doc)
}
