package query

import (
	"context"
	"time"
)

// Request describes a single invocation of the query tool
type Request struct {
	Command string
	Args    []string
	Timeout time.Duration
}

// Argv returns the full command line
func (r Request) Argv() []string {
	return append([]string{r.Command}, r.Args...)
}

// Result is the outcome of one query. Err is nil on success, in which case
// Notice is the message to show, or empty when no release is available.
// Otherwise Err is a *Failure.
type Result struct {
	Release string
	Notice  string
	Output  string
	Err     error
}

// ExitCode is 0 for a successful query and 1 for any failure
func (r Result) ExitCode() int {
	if r.Err != nil {
		return 1
	}
	return 0
}

// Available reports whether the query announced a new release
func (r Result) Available() bool {
	return r.Err == nil && r.Release != ""
}

// Executor runs release-upgrade queries.
// This interface allows for mocking the query tool in tests.
type Executor interface {
	Run(ctx context.Context, req Request) Result
}
