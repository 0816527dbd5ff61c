// Package config provides path layout and user settings for quickssh.
//
// # Paths
//
// Paths follows the XDG base directory layout:
//
//	$XDG_CONFIG_HOME/quickssh/settings.toml   user settings
//	$XDG_STATE_HOME/quickssh/state.json       favorites, collapsed groups, history
//	$XDG_STATE_HOME/quickssh/journal/*.jsonl  per-host event journal
//	~/.ssh/config                             managed ssh config ($QUICKSSH_SSH_CONFIG)
//
// Per-host file names are joined with securejoin so an alias can never
// address a file outside the journal directory.
//
// # Settings
//
// Settings are read from TOML:
//
//	sort_order        = "config"   # config, recent or alphabetical
//	grouping          = true
//	hide_unreachable  = false
//	discover_hosts    = false
//	check_timeout     = "3s"
//	check_interval    = "1m0s"
//	check_concurrency = 16
//	ssh_binary        = "ssh"
//	terminal_command  = ""
//	wol_broadcast     = "255.255.255.255"
//	wol_port          = 9
//
// LoadSettings returns DefaultSettings when the file does not exist and
// validates whatever it reads.
package config
