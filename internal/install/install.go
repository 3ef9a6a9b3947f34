// SPDX-License-Identifier: EPL-2.0

// Package install shells out to the external PDK package installer. The
// installer contract is minimal: it accepts a package identifier argument,
// exits zero on success, and writes diagnostics to its standard streams.
// Everything beyond that — resolution, download, placement — belongs to the
// installer itself.
package install

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"mvdan.cc/sh/v3/shell"
)

// DefaultCommand is the installer invocation used when none is configured.
const DefaultCommand = "pdk-get install"

// DefaultTimeout is the hard wall-clock limit for one installer run. On
// expiry the subprocess is terminated and the install reports failure
// rather than hanging the request loop.
const DefaultTimeout = 5 * time.Minute

type (
	// Runner invokes the external installer.
	Runner struct {
		// Command is the installer command line; it is split with shell
		// word rules and the package identifier is appended as the final
		// argument.
		Command string
		// Timeout bounds a single run; zero means DefaultTimeout.
		Timeout time.Duration
	}

	// Result captures one installer run. TimedOut and Err are mutually
	// exclusive failure modes distinct from an ordinary non-zero exit.
	Result struct {
		Output     string
		ReturnCode int
		TimedOut   bool
		Err        error
	}
)

// Ok reports whether the run completed with a zero exit code.
func (r Result) Ok() bool {
	return r.Err == nil && !r.TimedOut && r.ReturnCode == 0
}

// NewRunner builds a Runner, applying defaults for unset fields.
func NewRunner(command string, timeout time.Duration) *Runner {
	if command == "" {
		command = DefaultCommand
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{Command: command, Timeout: timeout}
}

// Install runs the installer for one package identifier, capturing combined
// output and the exit code.
func (r *Runner) Install(ctx context.Context, pkg string) Result {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	command := r.Command
	if command == "" {
		command = DefaultCommand
	}

	fields, err := shell.Fields(command, nil)
	if err != nil || len(fields) == 0 {
		if err == nil {
			err = errors.New("empty installer command")
		}
		return Result{
			Output:     fmt.Sprintf("invalid installer command %q: %v", command, err),
			ReturnCode: -1,
			Err:        err,
		}
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := append(fields[1:], pkg)
	cmd := exec.CommandContext(runCtx, fields[0], args...)
	output, runErr := cmd.CombinedOutput()

	if runCtx.Err() == context.DeadlineExceeded {
		return Result{Output: "Installation timed out", ReturnCode: -1, TimedOut: true}
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return Result{Output: string(output), ReturnCode: exitErr.ExitCode()}
		}
		// Spawn failure: the installer never ran.
		return Result{Output: runErr.Error(), ReturnCode: -1, Err: runErr}
	}

	return Result{Output: string(output), ReturnCode: 0}
}
