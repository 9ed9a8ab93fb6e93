package notifier

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/obentoo/upgrade-notifier/internal/common/config"
	"github.com/obentoo/upgrade-notifier/internal/common/logger"
	"github.com/obentoo/upgrade-notifier/internal/common/output"
	"github.com/obentoo/upgrade-notifier/internal/frequency"
	"github.com/obentoo/upgrade-notifier/internal/query"
	"github.com/obentoo/upgrade-notifier/internal/state"
)

// Options configures a single invocation
type Options struct {
	Config *config.Config

	// Verbose describes failures and prints NoMessage when nothing is available
	Verbose bool
	// Force queries even when the frequency gate is closed
	Force bool
	// SetFrequency, when non-empty, stores a new frequency instead of querying
	SetFrequency string

	Stdout io.Writer
	Stderr io.Writer

	// Optional collaborators, built from Config when nil
	Store    *state.Store
	Executor query.Executor
	Now      func() time.Time
}

func (o *Options) setDefaults() error {
	if o.Config == nil {
		o.Config = config.Default()
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Store == nil {
		path, err := o.Config.StatePath()
		if err != nil {
			return err
		}
		o.Store = state.NewStore(path)
	}
	if o.Executor == nil {
		o.Executor = query.NewRunner()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return nil
}

// Run performs one invocation and returns the process exit code
func Run(ctx context.Context, opts Options) int {
	err := opts.setDefaults()
	reporter := NewReporter(opts.Stdout, opts.Stderr, opts.Verbose)
	if err != nil {
		reporter.Fail(err)
		return ExitFailure
	}

	if opts.SetFrequency != "" {
		return setFrequency(opts)
	}

	if err := opts.Config.Validate(); err != nil {
		reporter.Fail(err)
		return ExitFailure
	}

	st, err := opts.Store.Load()
	if err != nil {
		reporter.Fail(err)
		return ExitFailure
	}

	gate := frequency.NewGate(frequency.WithNowFunc(opts.Now))
	decision := gate.Evaluate(st.Frequency, st.LastNotified)
	if !decision.Open && !opts.Force {
		logger.Debug("frequency %s: last notification %s ago, not checking",
			decision.Policy, decision.Elapsed.Round(time.Second))
		return ExitOK
	}

	if err := opts.Store.Save(st.RecordNotification(decision.Now)); err != nil {
		reporter.Fail(err)
		return ExitFailure
	}

	req := query.Request{
		Command: opts.Config.Query.Command,
		Args:    opts.Config.Query.Args,
		Timeout: opts.Config.Timeout(),
	}
	logger.Debug("running %v (timeout %s)", req.Argv(), req.Timeout)

	return reporter.Report(opts.Executor.Run(ctx, req))
}

// setFrequency stores a new frequency without querying
func setFrequency(opts Options) int {
	st, err := opts.Store.SetFrequency(opts.SetFrequency)
	if err != nil {
		logger.Error("%v", err)
		return ExitFailure
	}

	output.FprintSuccess(opts.Stdout, "Notification frequency set to %s", st.Frequency)
	return ExitOK
}
