package errors

import (
	"errors"
	"fmt"
)

// Exit codes for quickssh
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitHostNotFound    = 2
	ExitGroupNotFound   = 3
	ExitConfigError     = 4
	ExitStateError      = 5
	ExitSSHError        = 6
	ExitDiscoveryError  = 7
	ExitWakeError       = 8
	ExitValidationError = 9
)

// QuickError is the base error type for quickssh
type QuickError struct {
	Code    int
	Message string
	Cause   error
}

func (e *QuickError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *QuickError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *QuickError) ExitCode() int {
	return e.Code
}

// New creates a new QuickError
func New(code int, message string) *QuickError {
	return &QuickError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a QuickError
func Wrap(code int, message string, cause error) *QuickError {
	return &QuickError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// HostNotFound returns an error for an alias missing from the ssh config
func HostNotFound(alias string) *QuickError {
	return New(ExitHostNotFound, fmt.Sprintf("host not found: %s", alias))
}

// GroupNotFound returns an error for a missing group
func GroupNotFound(name string) *QuickError {
	return New(ExitGroupNotFound, fmt.Sprintf("group not found: %s", name))
}

// HostExists returns an error when adding an alias that is already managed
func HostExists(alias string) *QuickError {
	return New(ExitValidationError, fmt.Sprintf("host already exists: %s", alias))
}

// ConfigError returns an error for reading or writing the ssh config or settings
func ConfigError(message string, cause error) *QuickError {
	return Wrap(ExitConfigError, message, cause)
}

// StateError returns an error for favorites, history or journal storage
func StateError(message string, cause error) *QuickError {
	return Wrap(ExitStateError, message, cause)
}

// SSHError returns an error for launching ssh
func SSHError(message string, cause error) *QuickError {
	return Wrap(ExitSSHError, message, cause)
}

// DiscoveryError returns an error for mDNS discovery
func DiscoveryError(message string, cause error) *QuickError {
	return Wrap(ExitDiscoveryError, message, cause)
}

// WakeError returns an error for sending a Wake-on-LAN packet
func WakeError(message string, cause error) *QuickError {
	return Wrap(ExitWakeError, message, cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *QuickError {
	return New(ExitValidationError, message)
}

// UnsafeHostname returns an error for a hostname that must not reach a shell
func UnsafeHostname(hostname string) *QuickError {
	return New(ExitValidationError, fmt.Sprintf("unsafe hostname: %q", hostname))
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var quickErr *QuickError
	if errors.As(err, &quickErr) {
		return quickErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
