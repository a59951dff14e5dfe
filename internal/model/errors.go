package model

import "fmt"

// ExitCode defines the standard CLI exit codes. These codes allow scripts
// and CI systems to programmatically determine the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitBibleNotFound indicates the requested version, book, chapter or
	// verse does not exist (the API returned its NULL sentinel, or the
	// reference is outside the canonical corpus).
	ExitBibleNotFound ExitCode = 2

	// ExitAPIUnavailable indicates getbible.net could not be reached or
	// kept failing after retries.
	ExitAPIUnavailable ExitCode = 3

	// ExitCacheError indicates the local SQLite store could not be opened,
	// read, or written.
	ExitCacheError ExitCode = 4

	// ExitProvisionFailed indicates a provisioning step (extension install,
	// lab build, kernel registration) exited non-zero.
	ExitProvisionFailed ExitCode = 5

	// ExitInvalidQuery indicates a search phrase violated the word-count
	// bounds or a command argument failed validation.
	ExitInvalidQuery ExitCode = 6
)

// CLIError is a custom error type that carries an exit code, allowing the
// CLI layer to translate domain errors into appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
