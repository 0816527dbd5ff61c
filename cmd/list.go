package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AndyHazz/quickssh/internal/config"
	"github.com/AndyHazz/quickssh/internal/errors"
	"github.com/AndyHazz/quickssh/internal/model"
	"github.com/AndyHazz/quickssh/internal/sshconfig"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List configured hosts by group",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var (
	listFormat  string
	listSearch  string
	listSort    string
	listNoGroup bool
)

func init() {
	listCmd.Flags().StringVarP(&listFormat, "format", "o", "table", "Output format: table, json or yaml")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Only show hosts whose alias, hostname or user contains this text")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort order: config, recent or alphabetical (default from settings)")
	listCmd.Flags().BoolVar(&listNoGroup, "no-group", false, "Show one flat list instead of sections")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument()
	if err != nil {
		return err
	}
	st, err := getApp().LoadState()
	if err != nil {
		return err
	}

	opts := model.OptionsFor(doc, settings(), st)
	opts.Search = listSearch
	opts.Grouping = opts.Grouping && !listNoGroup
	// Discovery and liveness are separate commands.
	opts.DiscoverHosts = false
	opts.HideUnreachable = false
	if listSort != "" {
		order, err := config.ParseSortOrder(listSort)
		if err != nil {
			return errors.ValidationError(err.Error())
		}
		opts.SortOrder = order
	}
	opts.Now = time.Now()

	items := model.Build(opts)
	return writeItems(cmd.OutOrStdout(), listFormat, items, opts.Now)
}

// writeItems renders display items as a table, JSON or YAML.
func writeItems(out io.Writer, format string, items []model.Item, now time.Time) error {
	if format == "table" || format == "" {
		return writeTable(out, items, now)
	}
	return encode(out, format, nonNil(items))
}

// encode writes v as indented JSON or YAML.
func encode(out io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return errors.ValidationError(fmt.Sprintf("unknown format %q: must be table, json or yaml", format))
}

func nonNil(items []model.Item) []model.Item {
	if items == nil {
		return []model.Item{}
	}
	return items
}

func writeTable(out io.Writer, items []model.Item, now time.Time) error {
	if len(items) == 0 {
		logInfo("No hosts found. Add one with: quickssh add <alias> --hostname <address>")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SECTION\tALIAS\tADDRESS\tUSER\tCOMMANDS\tLAST CONNECTED")
	fmt.Fprintln(w, "-------\t-----\t-------\t----\t--------\t--------------")

	for _, it := range items {
		if it.Header {
			if it.Collapsed {
				fmt.Fprintf(w, "%s\t(%d hidden)\t\t\t\t\n", it.Section, it.HostCount)
			}
			continue
		}
		h := it.Host
		alias := h.Alias
		if it.Discovered {
			alias += " (discovered)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			dash(it.Section), alias, address(h), dash(h.User),
			dash(commandCount(h)), dash(model.FormatTimeAgo(it.LastConnected, now)))
	}

	return w.Flush()
}

// address renders hostname[:port].
func address(h sshconfig.Host) string {
	if h.Port != "" {
		return h.HostName + ":" + h.Port
	}
	return h.HostName
}

func commandCount(h sshconfig.Host) string {
	if len(h.Commands) == 0 {
		return ""
	}
	return fmt.Sprintf("%d", len(h.Commands))
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
