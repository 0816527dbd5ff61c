package shell

import (
	"reflect"
	"testing"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "''"},
		{"hello", "'hello'"},
		{"hello world", "'hello world'"},
		{"it's", `'it'\''s'`},
		{"$(rm -rf /)", "'$(rm -rf /)'"},
		{"a\nb", "'a\nb'"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Quote(tt.in); got != tt.want {
				t.Errorf("Quote(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestJoinSplit(t *testing.T) {
	words := []string{"tail", "-f", "/var/log/my app.log", "it's"}

	line := Join(words...)
	got, err := Split(line)
	if err != nil {
		t.Fatalf("Split(%q) error: %v", line, err)
	}
	if !reflect.DeepEqual(got, words) {
		t.Errorf("Split(Join(%q)) = %q", words, got)
	}
}

func TestSplit_Unterminated(t *testing.T) {
	if _, err := Split(`echo "oops`); err == nil {
		t.Error("Split should fail on an unterminated quote")
	}
}

func TestIsSafeHostname(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"server", true},
		{"my-server.local", true},
		{"192.168.1.10", true},
		{"fe80::1", true},
		{"host_name", true},
		{"", false},
		{"host name", false},
		{"host;rm", false},
		{"$(whoami)", false},
		{"host`id`", false},
		{"a/b", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSafeHostname(tt.name); got != tt.want {
				t.Errorf("IsSafeHostname(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
