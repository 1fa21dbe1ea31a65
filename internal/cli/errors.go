package cli

import "fmt"

// CommandError lleva el mensaje para el usuario y el exit code.
type CommandError struct {
	Message  string
	Cause    error
	ExitCode int
}

func (e CommandError) Error() string {
	switch {
	case e.Message != "" && e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	case e.Message != "":
		return e.Message
	case e.Cause != nil:
		return e.Cause.Error()
	}
	return "command failed"
}

func (e CommandError) Unwrap() error { return e.Cause }

// ExitStatus returns the process exit code associated with the error.
func (e CommandError) ExitStatus() int {
	if e.ExitCode != 0 {
		return e.ExitCode
	}
	return 1
}

func newCommandError(message string, cause error, exitCode int) CommandError {
	return CommandError{Message: message, Cause: cause, ExitCode: exitCode}
}
