// Package notifier ties the frequency gate, the state store and the release
// query together into a single invocation and reports the outcome.
package notifier

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/obentoo/upgrade-notifier/internal/common/output"
	"github.com/obentoo/upgrade-notifier/internal/query"
)

// NoMessage is printed in verbose mode when no release is available
const NoMessage = "NO MESSAGE"

// Exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
)

// Reporter prints query results and maps them to exit codes
type Reporter struct {
	stdout  io.Writer
	stderr  io.Writer
	verbose bool
}

// NewReporter creates a Reporter writing notices to stdout and failures to stderr
func NewReporter(stdout, stderr io.Writer, verbose bool) *Reporter {
	return &Reporter{stdout: stdout, stderr: stderr, verbose: verbose}
}

// Report prints result and returns the process exit code.
// Failures always exit non-zero but are only described in verbose mode.
func (r *Reporter) Report(result query.Result) int {
	if result.Err != nil {
		r.Fail(result.Err)
		return ExitFailure
	}

	if result.Notice != "" {
		fmt.Fprintln(r.stdout, result.Notice)
		return ExitOK
	}

	if r.verbose {
		output.Fprintln(r.stdout, output.Dim, NoMessage)
	}
	return ExitOK
}

// Fail describes err on stderr in verbose mode
func (r *Reporter) Fail(err error) {
	if !r.verbose {
		return
	}

	output.FprintError(r.stderr, "%v", err)

	var f *query.Failure
	if errors.As(err, &f) && f.Kind != query.KindTimeout && strings.TrimSpace(f.Output) != "" {
		fmt.Fprintln(r.stderr, "captured output:")
		for _, line := range strings.Split(strings.TrimRight(f.Output, "\n"), "\n") {
			fmt.Fprintln(r.stderr, query.EchoPrefix+line)
		}
	}
}
