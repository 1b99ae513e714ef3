// Package hooks runs the shell commands configured to follow a successful
// setup, e.g. enabling service APIs on the fresh project.
package hooks

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	errUtils "github.com/workshoplabs/labctl/errors"
	log "github.com/workshoplabs/labctl/pkg/logger"
	"github.com/workshoplabs/labctl/pkg/perf"
	"github.com/workshoplabs/labctl/pkg/schema"
)

// RunAfterSetup executes every hooks.after_setup command in order, stopping
// at the first failure. Each command sees the managed env key exported with
// the configured project, so `gcloud services enable ...` style hooks hit the
// right project.
func RunAfterSetup(ctx context.Context, cfg *schema.Configuration, projectID string) error {
	defer perf.Track(nil, "hooks.RunAfterSetup")()

	commands := cfg.Hooks.AfterSetup
	if len(commands) == 0 {
		return nil
	}

	env := []string{cfg.Env.Key + "=" + projectID}
	for i, command := range commands {
		log.Info("Running after-setup hook", "hook", fmt.Sprintf("%d/%d", i+1, len(commands)), "command", command)

		name := fmt.Sprintf("hooks.after_setup[%d]", i)
		if err := runShell(ctx, command, name, env, os.Stdout); err != nil {
			return errUtils.Build(errUtils.ErrHookFailed).
				WithCause(err).
				WithContext("command", command).
				Err()
		}
	}

	return nil
}

// runShell parses and runs one command with mvdan.cc/sh so hooks behave the
// same on every platform, without requiring a system shell.
func runShell(ctx context.Context, command string, name string, env []string, out io.Writer) error {
	file, err := syntax.NewParser().Parse(strings.NewReader(command), name)
	if err != nil {
		return err
	}

	runner, err := interp.New(
		interp.Env(expand.ListEnviron(append(os.Environ(), env...)...)),
		interp.StdIO(os.Stdin, out, os.Stderr),
	)
	if err != nil {
		return err
	}

	return runner.Run(ctx, file)
}
