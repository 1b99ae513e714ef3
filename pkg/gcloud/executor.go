package gcloud

import (
	"context"
	"os/exec"
)

// CommandExecutor abstracts command execution so tests can substitute fakes.
type CommandExecutor interface {
	LookPath(name string) (string, error)
	CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd
}

// osExecutor runs commands through os/exec.
type osExecutor struct{}

func (osExecutor) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (osExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, name, args...)
}

// executor is the package-level executor used by all Client methods.
var executor CommandExecutor = osExecutor{}

// setExecutor replaces the package executor. Test helper.
func setExecutor(e CommandExecutor) {
	executor = e
}

// resetExecutor restores the default executor after a test.
func resetExecutor() {
	executor = osExecutor{}
}
