package frequency

import "time"

// Decision is the outcome of evaluating a policy at a single instant
type Decision struct {
	Policy  Policy
	Now     time.Time
	Last    time.Time
	Elapsed time.Duration
	Open    bool
}

// Gate applies a policy to the last notification time using an injectable clock
type Gate struct {
	nowFunc func() time.Time
}

// GateOption is a functional option for configuring Gate
type GateOption func(*Gate)

// WithNowFunc sets a custom time function for testing
func WithNowFunc(fn func() time.Time) GateOption {
	return func(g *Gate) {
		g.nowFunc = fn
	}
}

// NewGate creates a Gate using the wall clock unless overridden
func NewGate(opts ...GateOption) *Gate {
	g := &Gate{nowFunc: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Evaluate reads the clock once and applies policy to last.
// The returned Now is the instant to record if the caller notifies.
func (g *Gate) Evaluate(policy Policy, last time.Time) Decision {
	now := g.nowFunc()
	return Decision{
		Policy:  policy,
		Now:     now,
		Last:    last,
		Elapsed: now.Sub(last),
		Open:    policy.Allows(now, last),
	}
}

// ShouldNotify reports whether policy permits a notification given the last one
func (g *Gate) ShouldNotify(policy Policy, last time.Time) bool {
	return g.Evaluate(policy, last).Open
}
