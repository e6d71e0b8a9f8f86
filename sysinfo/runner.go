package sysinfo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/rs/zerolog"
)

// Result is the captured outcome of one external command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes external commands. A non-nil error means the command could not be
// started or was interrupted; a non-zero exit status is reported through ExitCode.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	Log zerolog.Logger
}

// Run implements Runner.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr) && ctx.Err() == nil:
		res.ExitCode = exitErr.ExitCode()
	default:
		return res, fmt.Errorf("run %s: %w", name, err)
	}

	r.Log.Debug().
		Str("cmd", name).
		Strs("args", args).
		Int("exit", res.ExitCode).
		Dur("took", time.Since(start)).
		Msg("command finished")
	return res, nil
}

// runChecked runs a command and treats a non-zero exit as an error carrying stderr.
func runChecked(ctx context.Context, r Runner, name string, args ...string) (string, error) {
	res, err := r.Run(ctx, name, args...)
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", &ExitError{Command: name, Code: res.ExitCode, Stderr: res.Stderr}
	}
	return res.Stdout, nil
}

// ExitError reports a command that ran but exited unsuccessfully.
type ExitError struct {
	Command string
	Code    int
	Stderr  string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
	if s := trimOutput(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}
