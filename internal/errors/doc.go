// Package errors provides typed errors with exit codes for quickssh.
//
// # Error Types
//
// QuickError wraps an error with an exit code:
//
//	type QuickError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
//	ExitSuccess         = 0  // Success
//	ExitGeneralError    = 1  // General/unknown errors
//	ExitHostNotFound    = 2  // Alias is not in the ssh config
//	ExitGroupNotFound   = 3  // Group does not exist
//	ExitConfigError     = 4  // ssh config or settings could not be read or written
//	ExitStateError      = 5  // Favorites, history or journal storage failed
//	ExitSSHError        = 6  // ssh could not be launched
//	ExitDiscoveryError  = 7  // mDNS discovery failed
//	ExitWakeError       = 8  // Wake-on-LAN packet could not be sent
//	ExitValidationError = 9  // Invalid user input
//
// # Error Constructors
//
//	errors.HostNotFound("web")
//	errors.ConfigError("failed to save ssh config", err)
//	errors.WakeError("no MAC address for nas", nil)
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
