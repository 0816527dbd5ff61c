package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AndyHazz/quickssh/internal/discovery"
	"github.com/AndyHazz/quickssh/internal/editor"
	"github.com/AndyHazz/quickssh/internal/journal"
	"github.com/AndyHazz/quickssh/internal/sshconfig"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find ssh servers on the local network",
	Long: `Browses mDNS for _ssh._tcp services with avahi-browse and lists the
IPv4 hosts that are not in the ssh config yet.

With --add every discovered host is added to the config, under an alias
derived from its service name.`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

var (
	discoverAdd   bool
	discoverGroup string
)

func init() {
	discoverCmd.Flags().BoolVar(&discoverAdd, "add", false, "Add the discovered hosts to the ssh config")
	discoverCmd.Flags().StringVarP(&discoverGroup, "group", "g", "", "Group for hosts added with --add")
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	a := getApp()
	doc, err := loadDocument()
	if err != nil {
		return err
	}

	hosts, err := discovery.Discover(cmd.Context(), a.Executor, discovery.ConfiguredNames(doc))
	if err != nil {
		return err
	}
	if len(hosts) == 0 {
		logInfo("No new ssh servers found")
		return nil
	}

	if discoverAdd {
		return addDiscovered(hosts)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tADDRESS\tSUGGESTED ALIAS")
	fmt.Fprintln(w, "----\t-------\t---------------")
	for _, h := range hosts {
		fmt.Fprintf(w, "%s\t%s\t%s\n", h.Alias, h.HostName, dash(discovery.SuggestAlias(h.Alias)))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	logInfo("Add them with: quickssh discover --add")
	return nil
}

// addDiscovered adds hosts in one write. Names that produce no usable or an
// already taken alias fall back to the address.
func addDiscovered(hosts []sshconfig.Host) error {
	a := getApp()
	var added []string

	if _, err := a.UpdateConfig(func(doc *sshconfig.Document) (*sshconfig.Document, error) {
		added = nil
		for _, h := range hosts {
			host := sshconfig.NewHost(discovery.SuggestAlias(h.Alias))
			if editor.ValidateAlias(host.Alias) != nil {
				host.Alias = h.HostName
			}
			if _, _, taken := editor.FindHost(doc, host.Alias); taken {
				host.Alias = h.HostName
			}
			host.HostName = h.HostName
			host.Icon = h.Icon

			next, err := editor.AddHost(doc, discoverGroup, host)
			if err != nil {
				return nil, err
			}
			doc = next
			added = append(added, host.Alias)
		}
		return doc, nil
	}); err != nil {
		return err
	}

	for _, alias := range added {
		a.Record(journal.EventAdd, alias, "discovered")
		logSuccess("Added %s to %s", alias, groupLabel(discoverGroup))
	}
	return nil
}
