package query

import "context"

// MockRunner implements Executor for testing.
// RunFunc controls the result; otherwise Output is parsed as the command's output.
type MockRunner struct {
	RunFunc  func(ctx context.Context, req Request) Result
	Output   string
	Requests []Request
}

// NewMockRunner creates a MockRunner that reports output as a successful query
func NewMockRunner(output string) *MockRunner {
	return &MockRunner{Output: output}
}

// Run records the request and returns the configured result
func (m *MockRunner) Run(ctx context.Context, req Request) Result {
	m.Requests = append(m.Requests, req)
	if m.RunFunc != nil {
		return m.RunFunc(ctx, req)
	}
	return Parse(m.Output)
}

// Calls returns how many queries were run
func (m *MockRunner) Calls() int {
	return len(m.Requests)
}
