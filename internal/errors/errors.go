package errors

import (
	"errors"
	"fmt"
)

// Exit codes for smd
const (
	ExitSuccess        = 0
	ExitGeneralError   = 1
	ExitUnsupportedURL = 2
	ExitEngineError    = 3
	ExitConfigError    = 4
	ExitSetupError     = 5
)

// CommandError is the base error type for smd commands
type CommandError struct {
	Code    int
	Message string
	Cause   error
}

func (e *CommandError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CommandError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *CommandError) ExitCode() int {
	return e.Code
}

// New creates a new CommandError
func New(code int, message string) *CommandError {
	return &CommandError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a CommandError
func Wrap(code int, message string, cause error) *CommandError {
	return &CommandError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// UnsupportedURL returns an error for a URL no platform handler matches
func UnsupportedURL(url string) *CommandError {
	return New(ExitUnsupportedURL, fmt.Sprintf("unsupported URL: %s", url))
}

// EngineError returns an error for yt-dlp engine failures
func EngineError(message string, cause error) *CommandError {
	return Wrap(ExitEngineError, message, cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *CommandError {
	return Wrap(ExitConfigError, message, cause)
}

// SetupError returns an error for environment provisioning failures
func SetupError(cause error) *CommandError {
	return Wrap(ExitSetupError, "setup failed", cause)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode()
	}
	return ExitGeneralError
}
