package errUtils

import (
	"os/exec"

	"github.com/cockroachdb/errors"
)

// exitCoder is implemented by errors that carry an explicit process exit code.
type exitCoder interface {
	ExitCode() int
}

// ExitCodeError wraps an error with the exit status of an external command or
// hook so the CLI can propagate it instead of the generic failure code.
type ExitCodeError struct {
	Err  error
	Code int
}

func (e ExitCodeError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit status error"
}

func (e ExitCodeError) Unwrap() error {
	return e.Err
}

// ExitCode returns the wrapped exit status.
func (e ExitCodeError) ExitCode() int {
	return e.Code
}

// GetExitCode resolves the process exit code for err.
//
// Precedence: a nil error exits 0; any error in the chain implementing
// exitCoder (including ExitCodeError) wins; an *exec.ExitError from a child
// process contributes its status; everything else exits 1.
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}

	var coder exitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	return 1
}
