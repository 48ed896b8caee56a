package shell

import (
	"errors"
	"fmt"
)

// ExitError carries the process exit code a shell run resolved to.
// Run always returns one, so the host process can mirror the exit
// code of the signal that stopped the app.
type ExitError struct {
	ExitCode int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("shell exited with %d", e.ExitCode)
}

func NewExitError(exitCode int) *ExitError {
	return &ExitError{ExitCode: exitCode}
}

// IsExitError reports whether err carries a shell exit code.
func IsExitError(err error) bool {
	if err == nil {
		return false
	}

	var exitErr *ExitError
	return errors.As(err, &exitErr)
}
