package sshconfig_test

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/AndyHazz/quickssh/internal/sshconfig"
	"github.com/AndyHazz/quickssh/internal/testutil"
)

func onlyHost(t *testing.T, doc *sshconfig.Document) sshconfig.Host {
	t.Helper()
	if len(doc.Groups) != 1 || len(doc.Groups[0].Hosts) != 1 {
		t.Fatalf("want exactly one host, got %+v", doc.Groups)
	}
	return doc.Groups[0].Hosts[0]
}

func TestParse_Empty(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty string", ""},
		{"whitespace only", "   \n\n   \n"},
		{"comments only", "# just a comment\n# another comment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sshconfig.Parse(tt.input)
			if len(doc.Groups) != 0 {
				t.Errorf("Groups = %+v, want none", doc.Groups)
			}
			if len(doc.RawBlocks) != 0 {
				t.Errorf("RawBlocks = %q, want none", doc.RawBlocks)
			}
		})
	}
}

func TestParse_SingleHost(t *testing.T) {
	doc := sshconfig.Parse("Host myserver\n  HostName 10.0.0.1\n  User admin")

	if doc.Groups[0].Name != "" {
		t.Errorf("group name = %q, want ungrouped", doc.Groups[0].Name)
	}
	want := sshconfig.Host{
		Alias:    "myserver",
		HostName: "10.0.0.1",
		User:     "admin",
		Icon:     sshconfig.DefaultIcon,
		Status:   sshconfig.StatusUnknown,
	}
	if got := onlyHost(t, doc); !reflect.DeepEqual(got, want) {
		t.Errorf("host = %+v, want %+v", got, want)
	}
}

func TestParse_BasicFixture(t *testing.T) {
	doc := sshconfig.Parse(testutil.MustSSHConfig(t, "basic.sshconfig"))

	if len(doc.Groups) != 1 {
		t.Fatalf("len(Groups) = %d, want 1", len(doc.Groups))
	}
	hosts := doc.Groups[0].Hosts
	want := []struct{ alias, hostname, user string }{
		{"webserver", "192.168.1.10", "admin"},
		{"dbserver", "192.168.1.20", "root"},
	}
	if len(hosts) != len(want) {
		t.Fatalf("len(Hosts) = %d, want %d", len(hosts), len(want))
	}
	for i, w := range want {
		if hosts[i].Alias != w.alias || hosts[i].HostName != w.hostname || hosts[i].User != w.user {
			t.Errorf("host[%d] = %s/%s/%s, want %s/%s/%s", i,
				hosts[i].Alias, hosts[i].HostName, hosts[i].User, w.alias, w.hostname, w.user)
		}
	}
}

func TestParse_HostNameDefaultsToAlias(t *testing.T) {
	h := onlyHost(t, sshconfig.Parse("Host mybox\n  User me"))
	if h.HostName != "mybox" {
		t.Errorf("HostName = %q, want %q", h.HostName, "mybox")
	}
}

func TestParse_DedicatedFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(sshconfig.Host) string
		want  string
	}{
		{"Port", "Host s\n  Port 2222", func(h sshconfig.Host) string { return h.Port }, "2222"},
		{"port lowercase", "Host s\n  port 3333", func(h sshconfig.Host) string { return h.Port }, "3333"},
		{"IdentityFile", "Host s\n  IdentityFile ~/.ssh/id_rsa", func(h sshconfig.Host) string { return h.IdentityFile }, "~/.ssh/id_rsa"},
		{"identityfile lowercase", "Host s\n  identityfile /tmp/key", func(h sshconfig.Host) string { return h.IdentityFile }, "/tmp/key"},
		{"HOSTNAME uppercase", "HOST s\n  HOSTNAME 10.0.0.1", func(h sshconfig.Host) string { return h.HostName }, "10.0.0.1"},
		{"USER uppercase", "HOST s\n  USER admin", func(h sshconfig.Host) string { return h.User }, "admin"},
		{"equals separator", "Host s\n  User=admin", func(h sshconfig.Host) string { return h.User }, "admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(onlyHost(t, sshconfig.Parse(tt.input))); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_Options(t *testing.T) {
	input := strings.Join([]string{
		"Host myserver",
		"  HostName 10.0.0.1",
		"  User admin",
		"  Port 2222",
		"  ProxyJump bastion",
		"  IdentityFile ~/.ssh/id_rsa",
		"  ForwardAgent yes",
		"  LocalForward 8080 localhost:80",
	}, "\n")

	h := onlyHost(t, sshconfig.Parse(input))
	want := []sshconfig.Option{
		{Key: "ProxyJump", Value: "bastion"},
		{Key: "ForwardAgent", Value: "yes"},
		{Key: "LocalForward", Value: "8080 localhost:80"},
	}
	if !reflect.DeepEqual(h.Options, want) {
		t.Errorf("Options = %+v, want %+v", h.Options, want)
	}
	if h.Port != "2222" || h.IdentityFile != "~/.ssh/id_rsa" {
		t.Errorf("dedicated fields not set: %+v", h)
	}
}

func TestParse_KnownDirectivesNotInOptions(t *testing.T) {
	input := "Host myserver\n  HostName 10.0.0.1\n  User admin\n  Port 22\n  IdentityFile ~/.ssh/key"
	if h := onlyHost(t, sshconfig.Parse(input)); len(h.Options) != 0 {
		t.Errorf("Options = %+v, want none", h.Options)
	}
}

func TestParse_Whitespace(t *testing.T) {
	input := "  \t Host myserver  \n\t  HostName  10.0.0.1  \n  \tUser  admin  "
	h := onlyHost(t, sshconfig.Parse(input))
	if h.Alias != "myserver" || h.HostName != "10.0.0.1" || h.User != "admin" {
		t.Errorf("host = %+v", h)
	}
}

func TestParse_CRLF(t *testing.T) {
	h := onlyHost(t, sshconfig.Parse("Host win\r\n  HostName 10.0.0.9\r\n  User me\r\n"))
	if h.HostName != "10.0.0.9" || h.User != "me" {
		t.Errorf("host = %+v", h)
	}
}

func TestParse_Groups(t *testing.T) {
	doc := sshconfig.Parse(testutil.MustSSHConfig(t, "grouped.sshconfig"))

	if len(doc.Groups) != 2 {
		t.Fatalf("len(Groups) = %d, want 2", len(doc.Groups))
	}
	for i, want := range []string{"Production", "Staging"} {
		if doc.Groups[i].Name != want {
			t.Errorf("Groups[%d].Name = %q, want %q", i, doc.Groups[i].Name, want)
		}
		if len(doc.Groups[i].Hosts) != 2 {
			t.Errorf("len(Groups[%d].Hosts) = %d, want 2", i, len(doc.Groups[i].Hosts))
		}
	}
}

func TestParse_GroupLifecycle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string][]string
		order []string
	}{
		{
			name:  "GroupStart implicitly closes previous group",
			input: "# GroupStart Group A\nHost a1\n  HostName 10.0.0.1\n# GroupStart Group B\nHost b1\n  HostName 10.0.0.2",
			order: []string{"Group A", "Group B"},
			want:  map[string][]string{"Group A": {"a1"}, "Group B": {"b1"}},
		},
		{
			name:  "GroupEnd without GroupStart",
			input: "Host standalone\n  HostName 10.0.0.1\n# GroupEnd",
			order: []string{""},
			want:  map[string][]string{"": {"standalone"}},
		},
		{
			name:  "hosts after GroupEnd are ungrouped",
			input: "# GroupStart Grouped\nHost grouped1\n# GroupEnd\nHost ungrouped1",
			order: []string{"Grouped", ""},
			want:  map[string][]string{"Grouped": {"grouped1"}, "": {"ungrouped1"}},
		},
		{
			name:  "empty group is dropped",
			input: "# GroupStart Empty\n# GroupEnd\nHost a",
			order: []string{""},
			want:  map[string][]string{"": {"a"}},
		},
		{
			name:  "case-insensitive directives",
			input: "# groupstart MyGroup\nHost s1\n# groupend",
			order: []string{"MyGroup"},
			want:  map[string][]string{"MyGroup": {"s1"}},
		},
		{
			name:  "extra spacing",
			input: "#  GroupStart  Spaced Group  \nHost s\n#  GroupEnd",
			order: []string{"Spaced Group"},
			want:  map[string][]string{"Spaced Group": {"s"}},
		},
		{
			name:  "last group flushed at end of input",
			input: "# GroupStart Final\nHost final",
			order: []string{"Final"},
			want:  map[string][]string{"Final": {"final"}},
		},
		{
			name:  "ungrouped hosts before and after a group stay separate",
			input: "Host a\n# GroupStart G\nHost b\n# GroupEnd\nHost c",
			order: []string{"", "G", ""},
			want:  map[string][]string{"": {"c"}, "G": {"b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sshconfig.Parse(tt.input)
			var names []string
			for _, g := range doc.Groups {
				names = append(names, g.Name)
			}
			if !reflect.DeepEqual(names, tt.order) {
				t.Fatalf("group names = %q, want %q", names, tt.order)
			}
			// Last group with a given name wins in the map comparison.
			got := map[string][]string{}
			for _, g := range doc.Groups {
				var aliases []string
				for _, h := range g.Hosts {
					aliases = append(aliases, h.Alias)
				}
				got[g.Name] = aliases
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("groups = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParse_Wildcards(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		aliases   []string
		rawBlocks int
	}{
		{"star only", "Host *\n  ServerAliveInterval 60\n\nHost real\n  HostName 10.0.0.1", []string{"real"}, 1},
		{"question mark", "Host web-?\n  User webadmin", nil, 1},
		{"all names wildcards", "Host * ?server\n  User root", nil, 1},
		{"mixed names", "Host real * alsoreal\n  HostName 10.0.0.1", []string{"real", "alsoreal"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sshconfig.Parse(tt.input)
			var aliases []string
			for _, h := range doc.Hosts() {
				aliases = append(aliases, h.Alias)
			}
			if !reflect.DeepEqual(aliases, tt.aliases) {
				t.Errorf("aliases = %q, want %q", aliases, tt.aliases)
			}
			if len(doc.RawBlocks) != tt.rawBlocks {
				t.Errorf("len(RawBlocks) = %d, want %d", len(doc.RawBlocks), tt.rawBlocks)
			}
		})
	}
}

func TestParse_WildcardFixture(t *testing.T) {
	doc := sshconfig.Parse(testutil.MustSSHConfig(t, "wildcards.sshconfig"))

	h := onlyHost(t, doc)
	if h.Alias != "production" {
		t.Errorf("Alias = %q, want %q", h.Alias, "production")
	}
	want := []string{
		"Host *\n    ServerAliveInterval 60",
		"Host *.internal\n    ProxyJump bastion",
		"Host web-?\n    User webadmin",
	}
	if !reflect.DeepEqual(doc.RawBlocks, want) {
		t.Errorf("RawBlocks = %q, want %q", doc.RawBlocks, want)
	}
}

func TestParse_MultiHostLine(t *testing.T) {
	doc := sshconfig.Parse("Host foo bar baz\n  HostName shared.example.com\n  User deploy")

	hosts := doc.Groups[0].Hosts
	if len(hosts) != 3 {
		t.Fatalf("len(Hosts) = %d, want 3", len(hosts))
	}
	want := []struct{ alias, hostname, user string }{
		{"foo", "foo", ""},
		{"bar", "bar", ""},
		{"baz", "shared.example.com", "deploy"},
	}
	for i, w := range want {
		if hosts[i].Alias != w.alias || hosts[i].HostName != w.hostname || hosts[i].User != w.user {
			t.Errorf("host[%d] = %s/%s/%q, want %s/%s/%q", i,
				hosts[i].Alias, hosts[i].HostName, hosts[i].User, w.alias, w.hostname, w.user)
		}
	}
}

func TestParse_TwoNameExample(t *testing.T) {
	doc := sshconfig.Parse("Host foo bar\n    HostName shared.example.com\n    User deploy\n")

	want := []sshconfig.Host{
		{Alias: "foo", HostName: "foo", Icon: sshconfig.DefaultIcon, Status: sshconfig.StatusUnknown},
		{Alias: "bar", HostName: "shared.example.com", User: "deploy", Icon: sshconfig.DefaultIcon, Status: sshconfig.StatusUnknown},
	}
	if !reflect.DeepEqual(doc.Hosts(), want) {
		t.Errorf("Hosts() = %+v, want %+v", doc.Hosts(), want)
	}
}

func TestParse_MultiHostSharesPendingDirectives(t *testing.T) {
	doc := sshconfig.Parse("# Icon custom\n# MAC 11:22:33:44:55:66\n# Command uptime\nHost foo bar\n  HostName shared.local")

	for _, h := range doc.Hosts() {
		if h.Icon != "custom" {
			t.Errorf("%s: Icon = %q, want %q", h.Alias, h.Icon, "custom")
		}
		if h.MAC != "11:22:33:44:55:66" {
			t.Errorf("%s: MAC = %q, want %q", h.Alias, h.MAC, "11:22:33:44:55:66")
		}
		if len(h.Commands) != 1 || h.Commands[0].Cmd != "uptime" {
			t.Errorf("%s: Commands = %+v", h.Alias, h.Commands)
		}
	}

	// Each entry owns its command slice.
	hosts := doc.Groups[0].Hosts
	hosts[0].Commands[0].Cmd = "changed"
	if hosts[1].Commands[0].Cmd != "uptime" {
		t.Error("multi-host entries share the same Commands backing array")
	}
}

func TestParse_Icon(t *testing.T) {
	doc := sshconfig.Parse("# Icon server-database\nHost first\n  HostName 10.0.0.1\nHost second\n  HostName 10.0.0.2")

	hosts := doc.Groups[0].Hosts
	if hosts[0].Icon != "server-database" {
		t.Errorf("first Icon = %q, want %q", hosts[0].Icon, "server-database")
	}
	if hosts[1].Icon != sshconfig.DefaultIcon {
		t.Errorf("second Icon = %q, want default %q", hosts[1].Icon, sshconfig.DefaultIcon)
	}
}

func TestParse_LastIconWins(t *testing.T) {
	h := onlyHost(t, sshconfig.Parse("# Icon one\n# Icon two\nHost s"))
	if h.Icon != "two" {
		t.Errorf("Icon = %q, want %q", h.Icon, "two")
	}
}

func TestParse_MAC(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"valid", "# MAC aa:bb:cc:dd:ee:ff\nHost wol-server\n  HostName 10.0.0.1", "aa:bb:cc:dd:ee:ff"},
		{"uppercase", "# MAC AA:BB:CC:DD:EE:FF\nHost server", "AA:BB:CC:DD:EE:FF"},
		{"too short", "# MAC aa:bb:cc\nHost server\n  HostName 10.0.0.1", ""},
		{"non-hex", "# MAC zz:zz:zz:zz:zz:zz\nHost s\n  HostName 1.1.1.1", ""},
		{"trailing garbage", "# MAC aa:bb:cc:dd:ee:ff00\nHost s", ""},
		{"invalid does not clear earlier valid", "# MAC aa:bb:cc:dd:ee:ff\n# MAC nope\nHost s", "aa:bb:cc:dd:ee:ff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := onlyHost(t, sshconfig.Parse(tt.input)).MAC; got != tt.want {
				t.Errorf("MAC = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_Commands(t *testing.T) {
	input := strings.Join([]string{
		"# Command [Deploy] deploy.sh --prod",
		"# Command check-logs",
		"# Command [Restart] systemctl restart nginx",
		"Host server",
		"  HostName 10.0.0.1",
	}, "\n")

	want := []sshconfig.Command{
		{Name: "Deploy", Cmd: "deploy.sh --prod"},
		{Cmd: "check-logs"},
		{Name: "Restart", Cmd: "systemctl restart nginx"},
	}
	if got := onlyHost(t, sshconfig.Parse(input)).Commands; !reflect.DeepEqual(got, want) {
		t.Errorf("Commands = %+v, want %+v", got, want)
	}
}

func TestParse_PendingDirectivesDoNotLeak(t *testing.T) {
	input := strings.Join([]string{
		"# Icon custom-icon",
		"# MAC 11:22:33:44:55:66",
		"# Command do-thing",
		"Host first",
		"  HostName 10.0.0.1",
		"Host second",
		"  HostName 10.0.0.2",
	}, "\n")

	hosts := sshconfig.Parse(input).Groups[0].Hosts
	first, second := hosts[0], hosts[1]
	if first.Icon != "custom-icon" || first.MAC != "11:22:33:44:55:66" || len(first.Commands) != 1 {
		t.Errorf("first = %+v", first)
	}
	if second.Icon != sshconfig.DefaultIcon {
		t.Errorf("second.Icon = %q, want default", second.Icon)
	}
	if second.MAC != "" {
		t.Errorf("second.MAC = %q, want empty", second.MAC)
	}
	if len(second.Commands) != 0 {
		t.Errorf("second.Commands = %+v, want none", second.Commands)
	}
}

func TestParse_WildcardHostResetsPendingDirectives(t *testing.T) {
	input := strings.Join([]string{
		"# Icon custom-icon",
		"# MAC aa:bb:cc:dd:ee:ff",
		"# Command do-thing",
		"Host *",
		"    ServerAliveInterval 60",
		"",
		"Host myserver",
		"    HostName 10.0.0.1",
	}, "\n")

	h := onlyHost(t, sshconfig.Parse(input))
	if h.Icon != sshconfig.DefaultIcon || h.MAC != "" || len(h.Commands) != 0 {
		t.Errorf("pending directives leaked into %+v", h)
	}
}

func TestParse_OrphanPropertiesIgnored(t *testing.T) {
	h := onlyHost(t, sshconfig.Parse("HostName orphan.local\nUser orphan\nHost real\n  HostName 10.0.0.1\n  User admin"))
	if h.HostName != "10.0.0.1" || h.User != "admin" {
		t.Errorf("host = %+v", h)
	}
}

func TestParse_CommentsAndBlankLines(t *testing.T) {
	input := strings.Join([]string{
		"# This is a comment",
		"",
		"Host server",
		"  # Inline comment area",
		"  HostName 10.0.0.1",
		"",
		"  User admin",
	}, "\n")

	h := onlyHost(t, sshconfig.Parse(input))
	if h.User != "admin" || len(h.Options) != 0 {
		t.Errorf("host = %+v", h)
	}
}

func TestParse_RawBlocks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "Host * before managed host",
			input: "Host *\n    ServerAliveInterval 60\n    ServerAliveCountMax 3\n\nHost myserver\n    HostName 10.0.0.1",
			want:  []string{"Host *\n    ServerAliveInterval 60\n    ServerAliveCountMax 3"},
		},
		{
			name:  "Host * at end of file",
			input: "Host myserver\n    HostName 10.0.0.1\n\nHost *\n    ForwardAgent no\n",
			want:  []string{"Host *\n    ForwardAgent no"},
		},
		{
			name:  "Include line",
			input: "Include ~/.ssh/config.d/*\n\nHost myserver",
			want:  []string{"Include ~/.ssh/config.d/*"},
		},
		{
			name:  "Match block",
			input: "Match host bastion\n    ForwardAgent yes\n    IdentityFile ~/.ssh/bastion_key\n\nHost myserver",
			want:  []string{"Match host bastion\n    ForwardAgent yes\n    IdentityFile ~/.ssh/bastion_key"},
		},
		{
			name:  "comments inside a raw block are kept",
			input: "Match all\n    # keep me\n\n    Compression yes\n# GroupStart G\nHost a",
			want:  []string{"Match all\n    # keep me\n\n    Compression yes"},
		},
		{
			name:  "indented Include belongs to the block",
			input: "Host *.corp\n    Include corp.conf\n    User me\nHost a",
			want:  []string{"Host *.corp\n    Include corp.conf\n    User me"},
		},
		{
			name:  "consecutive raw blocks stay separate",
			input: "Host *\n  A yes\nMatch all\n  B yes\nHost web-?\n  C yes",
			want:  []string{"Host *\n  A yes", "Match all\n  B yes", "Host web-?\n  C yes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sshconfig.Parse(tt.input).RawBlocks; !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RawBlocks = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_PendingDirectiveEndsRawBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"directly before host", "Host *\n    User x\n# Icon db\nHost mydb"},
		{"indented lines after directive", "Host *\n    User x\n# Icon db\n    User bob\nHost mydb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sshconfig.Parse(tt.input)

			h := onlyHost(t, doc)
			if h.Icon != "db" || h.User != "" {
				t.Errorf("host = %+v, want icon db and no user", h)
			}
			if want := []string{"Host *\n    User x"}; !reflect.DeepEqual(doc.RawBlocks, want) {
				t.Errorf("RawBlocks = %q, want %q", doc.RawBlocks, want)
			}
		})
	}
}

func TestParse_LinesAfterRawBlockNotAttachedToEarlierHost(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantRaw      []string
		wantOrphaned int
	}{
		{
			name:         "Include inside wildcard block",
			input:        "Host a\n    HostName 10.0.0.1\nHost *\n    User root\nInclude conf.d/*\n    ForwardAgent yes\n    Port 2222\n",
			wantRaw:      []string{"Host *\n    User root", "Include conf.d/*"},
			wantOrphaned: 2,
		},
		{
			name:         "directive inside wildcard block",
			input:        "Host a\n    HostName 10.0.0.1\nHost *\n  User root\n# Icon db\n  User bob\n",
			wantRaw:      []string{"Host *\n  User root"},
			wantOrphaned: 1,
		},
		{
			name:         "Include inside Match block",
			input:        "Host a\n    HostName 10.0.0.1\nMatch user git\n    User git\nInclude extra\n    Port 2222\n",
			wantRaw:      []string{"Match user git\n    User git", "Include extra"},
			wantOrphaned: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, warnings := sshconfig.ParseWithWarnings(tt.input)

			want := sshconfig.NewHost("a")
			want.HostName = "10.0.0.1"
			if h := onlyHost(t, doc); !reflect.DeepEqual(h, want) {
				t.Errorf("host a = %+v, want %+v", h, want)
			}
			if !reflect.DeepEqual(doc.RawBlocks, tt.wantRaw) {
				t.Errorf("RawBlocks = %q, want %q", doc.RawBlocks, tt.wantRaw)
			}

			orphaned := 0
			for _, w := range warnings {
				if w.Kind == sshconfig.WarnOrphanProperty {
					orphaned++
				}
			}
			if orphaned != tt.wantOrphaned {
				t.Errorf("orphan-property warnings = %d, want %d (%+v)", orphaned, tt.wantOrphaned, warnings)
			}
		})
	}
}

func TestParse_RawBlockBlankRunsCollapsed(t *testing.T) {
	doc := sshconfig.Parse("Match host x\n    User a\n\n\n\n    Port 1\n\n\nHost s")

	if want := []string{"Match host x\n    User a\n\n    Port 1"}; !reflect.DeepEqual(doc.RawBlocks, want) {
		t.Errorf("RawBlocks = %q, want %q", doc.RawBlocks, want)
	}
}

func TestParse_ComplexFixture(t *testing.T) {
	doc := sshconfig.Parse(testutil.MustSSHConfig(t, "complex.sshconfig"))

	if len(doc.Groups) != 3 {
		t.Fatalf("len(Groups) = %d, want 3", len(doc.Groups))
	}

	servers := doc.Groups[0]
	if servers.Name != "Servers" || len(servers.Hosts) != 2 {
		t.Fatalf("Groups[0] = %q with %d hosts", servers.Name, len(servers.Hosts))
	}
	primary := servers.Hosts[0]
	wantMain := sshconfig.Host{
		Alias:        "main-server",
		HostName:     "192.168.1.100",
		User:         "admin",
		Port:         "2222",
		IdentityFile: "~/.ssh/id_ed25519",
		Icon:         "server-database",
		Status:       sshconfig.StatusUnknown,
		MAC:          "aa:bb:cc:dd:ee:ff",
		Commands: []sshconfig.Command{
			{Cmd: "restart-nginx"},
			{Name: "Logs", Cmd: "tail -f /var/log/syslog"},
		},
		Options: []sshconfig.Option{{Key: "ForwardAgent", Value: "yes"}},
	}
	if !reflect.DeepEqual(primary, wantMain) {
		t.Errorf("main-server = %+v\nwant %+v", primary, wantMain)
	}

	backup := servers.Hosts[1]
	if backup.Icon != sshconfig.DefaultIcon || backup.MAC != "" || len(backup.Commands) != 0 {
		t.Errorf("backup-server inherited directives: %+v", backup)
	}

	if doc.Groups[1].Name != "Development" || len(doc.Groups[1].Hosts) != 1 {
		t.Errorf("Groups[1] = %+v", doc.Groups[1])
	}
	if doc.Groups[2].Name != "" || doc.Groups[2].Hosts[0].Alias != "standalone" {
		t.Errorf("Groups[2] = %+v", doc.Groups[2])
	}

	wantRaw := []string{
		"Include ~/.ssh/config.d/*",
		"Host *\n    ServerAliveInterval 60\n    ServerAliveCountMax 3",
		"Match host bastion exec \"test -f ~/.ssh/bastion\"\n    ForwardAgent yes\n    IdentityFile ~/.ssh/bastion_key",
	}
	if !reflect.DeepEqual(doc.RawBlocks, wantRaw) {
		t.Errorf("RawBlocks = %q\nwant %q", doc.RawBlocks, wantRaw)
	}
}

func TestParse_EdgeCaseFixture(t *testing.T) {
	doc, warnings := sshconfig.ParseWithWarnings(testutil.MustSSHConfig(t, "edgecases.sshconfig"))

	if len(doc.Groups) != 0 {
		t.Errorf("Groups = %+v, want none", doc.Groups)
	}
	kinds := map[sshconfig.WarningKind]int{}
	for _, w := range warnings {
		kinds[w.Kind]++
	}
	if kinds[sshconfig.WarnOrphanProperty] != 2 {
		t.Errorf("orphan-property warnings = %d, want 2", kinds[sshconfig.WarnOrphanProperty])
	}
	if kinds[sshconfig.WarnInvalidMAC] != 1 {
		t.Errorf("invalid-mac warnings = %d, want 1", kinds[sshconfig.WarnInvalidMAC])
	}
}

func TestParseWithWarnings(t *testing.T) {
	input := "# MAC zz:zz:zz:zz:zz:zz\nHost s\n  HostName 1.1.1.1\nHost a b\n  Compression"
	doc, warnings := sshconfig.ParseWithWarnings(input)

	if !reflect.DeepEqual(doc, sshconfig.Parse(input)) {
		t.Error("ParseWithWarnings document differs from Parse")
	}
	want := []struct {
		line int
		kind sshconfig.WarningKind
	}{
		{1, sshconfig.WarnInvalidMAC},
		{4, sshconfig.WarnMultiHost},
		{5, sshconfig.WarnMissingValue},
	}
	if len(warnings) != len(want) {
		t.Fatalf("warnings = %v, want %d", warnings, len(want))
	}
	for i, w := range want {
		if warnings[i].Line != w.line || warnings[i].Kind != w.kind {
			t.Errorf("warnings[%d] = %v, want line %d %s", i, warnings[i], w.line, w.kind)
		}
	}
	if !strings.Contains(warnings[0].String(), "line 1") {
		t.Errorf("String() = %q", warnings[0].String())
	}
}

func TestParse_InvalidMACExample(t *testing.T) {
	h := onlyHost(t, sshconfig.Parse("# MAC zz:zz:zz:zz:zz:zz\nHost s\n  HostName 1.1.1.1"))
	if h.MAC != "" {
		t.Errorf("MAC = %q, want empty", h.MAC)
	}
	if h.HostName != "1.1.1.1" {
		t.Errorf("HostName = %q, want %q", h.HostName, "1.1.1.1")
	}
}

func TestParse_DuplicateAliasesPreserved(t *testing.T) {
	doc := sshconfig.Parse("Host dup\n  User a\nHost dup\n  User b")
	hosts := doc.Hosts()
	if len(hosts) != 2 || hosts[0].User != "a" || hosts[1].User != "b" {
		t.Errorf("Hosts() = %+v", hosts)
	}
}

func TestParse_StatusAlwaysUnknown(t *testing.T) {
	for _, h := range sshconfig.Parse(testutil.MustSSHConfig(t, "complex.sshconfig")).Hosts() {
		if h.Status != sshconfig.StatusUnknown {
			t.Errorf("%s: Status = %q, want %q", h.Alias, h.Status, sshconfig.StatusUnknown)
		}
	}
}

func TestParse_LargeInput(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 600; i++ {
		fmt.Fprintf(&b, "Host server-%d\n  HostName 10.0.%d.%d\n  User user%d\n\n", i, i/256, i%256, i)
	}

	doc := sshconfig.Parse(b.String())
	if got := doc.HostCount(); got != 600 {
		t.Errorf("HostCount() = %d, want 600", got)
	}
	if last := doc.Hosts()[599]; last.HostName != "10.0.2.87" || last.User != "user599" {
		t.Errorf("last host = %+v", last)
	}
}

func TestParse_Deterministic(t *testing.T) {
	text := testutil.MustSSHConfig(t, "complex.sshconfig")
	if !reflect.DeepEqual(sshconfig.Parse(text), sshconfig.Parse(text)) {
		t.Error("two parses of the same text differ")
	}
}
