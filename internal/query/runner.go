// Package query runs the release-upgrade query tool and extracts the
// release it announces.
package query

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/obentoo/upgrade-notifier/internal/common/logger"
)

// EchoPrefix marks raw query output echoed in verbose mode
const EchoPrefix = "> "

// waitDelay bounds how long Run waits for output pipes after the command is
// killed, in case a descendant process inherited them.
const waitDelay = 100 * time.Millisecond

// Runner executes the query tool as a child process
type Runner struct {
	log *logger.Logger
}

// RunnerOption is a functional option for configuring Runner
type RunnerOption func(*Runner)

// WithLogger sets the logger used to echo raw output
func WithLogger(l *logger.Logger) RunnerOption {
	return func(r *Runner) {
		r.log = l
	}
}

// NewRunner creates a Runner logging through the default logger
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{log: logger.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes req with stdout and stderr combined. The child is killed when
// req.Timeout elapses; a request without a positive timeout is not started.
func (r *Runner) Run(ctx context.Context, req Request) Result {
	if req.Timeout <= 0 {
		return Result{Err: &Failure{
			Kind:     KindLaunch,
			Command:  req.Argv(),
			Timeout:  req.Timeout,
			ExitCode: -1,
			Err:      ErrNoTimeout,
		}}
	}

	ctx, cancel := context.WithTimeout(ctx, req.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, req.Command, req.Args...)
	cmd.WaitDelay = waitDelay

	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	err := cmd.Run()
	output := combined.String()

	if output != "" {
		r.log.DebugLines(EchoPrefix, output)
	}

	if err != nil {
		return Result{Output: output, Err: classify(ctx, req, output, err)}
	}

	return Parse(output)
}

// Parse builds the successful result for the query tool's output
func Parse(output string) Result {
	result := Result{Output: output}
	if release, ok := ExtractRelease(output); ok {
		result.Release = release
		result.Notice = FormatNotice(release)
	}
	return result
}

// classify turns an os/exec error into a *Failure
func classify(ctx context.Context, req Request, output string, err error) *Failure {
	f := &Failure{
		Command:  req.Argv(),
		Output:   output,
		Timeout:  req.Timeout,
		ExitCode: -1,
		Err:      err,
	}

	var exitErr *exec.ExitError
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		f.Kind = KindTimeout
	case errors.As(err, &exitErr):
		f.Kind = KindNonzeroExit
		f.ExitCode = exitErr.ExitCode()
	default:
		f.Kind = KindLaunch
	}

	return f
}
