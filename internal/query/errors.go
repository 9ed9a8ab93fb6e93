package query

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrLaunch      = errors.New("query command could not be started")
	ErrTimeout     = errors.New("query command timed out")
	ErrNonzeroExit = errors.New("query command failed")
	// ErrNoTimeout rejects requests that would run without a time limit
	ErrNoTimeout = errors.New("query timeout must be positive")
)

// Kind classifies a failed query
type Kind int

const (
	KindLaunch Kind = iota
	KindTimeout
	KindNonzeroExit
)

func (k Kind) String() string {
	switch k {
	case KindLaunch:
		return "launch"
	case KindTimeout:
		return "timeout"
	case KindNonzeroExit:
		return "nonzero-exit"
	default:
		return "unknown"
	}
}

// Failure describes why a query produced no usable output.
// It matches ErrLaunch, ErrTimeout or ErrNonzeroExit with errors.Is.
type Failure struct {
	Kind     Kind
	Command  []string
	Output   string
	Timeout  time.Duration
	ExitCode int   // Exit status of the command, -1 if it never exited
	Err      error // Underlying os/exec error
}

func (f *Failure) sentinel() error {
	switch f.Kind {
	case KindTimeout:
		return ErrTimeout
	case KindNonzeroExit:
		return ErrNonzeroExit
	default:
		return ErrLaunch
	}
}

func (f *Failure) Error() string {
	command := strings.Join(f.Command, " ")
	switch f.Kind {
	case KindTimeout:
		return fmt.Sprintf("%v after %s: %s", ErrTimeout, f.Timeout, command)
	case KindNonzeroExit:
		return fmt.Sprintf("%v with exit status %d: %s", ErrNonzeroExit, f.ExitCode, command)
	default:
		return fmt.Sprintf("%v: %s: %v", ErrLaunch, command, f.Err)
	}
}

// Is reports whether target is the sentinel for this failure's kind
func (f *Failure) Is(target error) bool {
	return target == f.sentinel()
}

func (f *Failure) Unwrap() error {
	return f.Err
}
