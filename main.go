package main

import (
	"os"
	"os/signal"
	"syscall"

	log "github.com/workshoplabs/labctl/pkg/logger"

	"github.com/workshoplabs/labctl/cmd"
	errUtils "github.com/workshoplabs/labctl/errors"
)

func main() {
	// Set up signal handling for graceful shutdown.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		cmd.Cleanup()
		// Exit with correct POSIX exit code (128 + signal number).
		// Use errUtils.OsExit to allow test interception (Go 1.25+ panics on os.Exit in tests).
		if s, ok := sig.(syscall.Signal); ok {
			errUtils.OsExit(128 + int(s))
		}
		// Fallback to SIGINT exit code if signal type assertion fails.
		errUtils.OsExit(130)
	}()

	// Run the application and exit with the appropriate code.
	// Use errUtils.OsExit to allow test interception (Go 1.25+ panics on os.Exit in tests).
	errUtils.OsExit(run())
}

// run executes the main application logic and returns an exit code.
// This separation allows proper cleanup via defer before os.Exit in main().
func run() int {
	// Ensure cleanup happens on normal exit.
	defer cmd.Cleanup()

	// Handle --version at the entry point so the flag works without going
	// through command dispatch (tests call cmd.Execute() directly).
	if hasVersionFlag(os.Args) {
		err := cmd.ExecuteVersion()
		if err != nil {
			os.Stderr.WriteString(errUtils.Format(err, errUtils.Verbose) + "\n")
			return errUtils.GetExitCode(err)
		}
		return 0
	}

	err := cmd.Execute()
	if err != nil {
		// Format and print the error using the centralized formatter.
		os.Stderr.WriteString(errUtils.Format(err, errUtils.Verbose) + "\n")

		// Extract and use the correct exit code.
		exitCode := errUtils.GetExitCode(err)
		log.Debug("Exiting with exit code", "code", exitCode)
		return exitCode
	}

	return 0
}

// hasVersionFlag checks if --version is the first argument after the program
// name. Other flag combinations go through normal cobra processing.
func hasVersionFlag(args []string) bool {
	return len(args) > 1 && args[1] == "--version"
}
