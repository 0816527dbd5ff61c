// Package health checks whether configured hosts are reachable.
//
// A host is probed by opening a TCP connection to its HostName and Port
// (22 when unset). No ssh handshake is attempted, so a host counts as
// online as soon as something accepts connections on that port.
//
// # Status
//
// Results use the sshconfig status values:
//
//	sshconfig.StatusOnline  - the port accepted a connection
//	sshconfig.StatusOffline - the dial failed or timed out
//	sshconfig.StatusUnknown - the host uses ProxyJump/ProxyCommand
//
// # Checking many hosts
//
//	checker := health.NewChecker(settings.CheckTimeout.Duration, settings.CheckConcurrency)
//	results := checker.CheckAll(ctx, doc.Hosts())
//	groups := health.Apply(doc.Groups, health.Statuses(results))
//
// CheckAll bounds concurrency with an errgroup limit and keeps results in
// input order.
package health
