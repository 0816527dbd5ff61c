// Package sshconfig parses and serializes OpenSSH client configuration files
// extended with quickssh's comment directives.
//
// # Directives
//
// Besides the regular ssh_config keywords, the following comment directives
// are understood:
//
//	# GroupStart <name>   start a named group (closes any open group)
//	# GroupEnd            close the current group
//	# Icon <name>         icon for the next Host line
//	# MAC <aa:bb:..:ff>   Wake-on-LAN address for the next Host line
//	# Command [name] cmd  quick-launch command for the next Host line (repeatable)
//
// Icon, MAC and Command are pending directives: they apply to the next Host
// line only and are discarded after it.
//
// # Managed and unmanaged content
//
// Host lines with at least one literal alias become managed [Host] entries
// inside a [Group]. Everything the parser does not model (wildcard-only Host
// blocks, Match blocks, Include lines) is kept as opaque raw blocks that are
// written back verbatim, ahead of the managed groups.
//
// # Round trip
//
//	doc := sshconfig.Parse(text)
//	// ... edit doc.Groups ...
//	out := doc.String()
//
// Parsing never fails. Parse(out) yields the same groups as doc, except that a
// Host line naming several aliases is written back as one Host block per
// alias. Callers that want to tell users about dropped directive values use
// ParseWithWarnings.
//
// The package performs no I/O and keeps no package-level mutable state, so
// all functions are safe for concurrent use.
package sshconfig
