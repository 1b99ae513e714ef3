package errUtils

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
)

// OsExit is a variable for testing, so tests can mock os.Exit.
var OsExit = os.Exit

// Verbose controls whether printed errors include the context details
// recorded with WithContext. The root command enables it at debug level.
var Verbose bool

// Exit terminates the process with the given code.
func Exit(code int) {
	OsExit(code)
}

// CheckErrorAndPrint prints err to stderr using the terminal formatter.
// A nil error prints nothing.
func CheckErrorAndPrint(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, Format(err, Verbose))
}

// CheckErrorPrintAndExit prints err and exits with its resolved exit code.
// A nil error does nothing.
func CheckErrorPrintAndExit(err error) {
	if err == nil {
		return
	}
	CheckErrorAndPrint(err)
	Exit(GetExitCode(err))
}

// IsAny reports whether err matches any of the given sentinels.
func IsAny(err error, sentinels ...error) bool {
	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
