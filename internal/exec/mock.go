package exec

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockResponse is the canned result of a mocked command.
type MockResponse struct {
	Stdout []byte
	Err    error
}

// MockCall records one command run through a MockExecutor.
type MockCall struct {
	Dir  string
	Name string
	Args []string
}

type mockRule struct {
	name   string
	args   []string
	prefix bool
	resp   MockResponse
}

// MockExecutor answers commands from registered rules. Exact matches are
// checked before prefix matches; unmatched commands go to the fallback, or
// fail when there is none.
type MockExecutor struct {
	mu       sync.Mutex
	rules    []mockRule
	calls    []MockCall
	missing  map[string]bool
	fallback CommandExecutor
}

// NewMockExecutor returns a mock. fallback may be nil.
func NewMockExecutor(fallback CommandExecutor) *MockExecutor {
	return &MockExecutor{fallback: fallback, missing: make(map[string]bool)}
}

// AddExactMatch answers name with exactly args.
func (m *MockExecutor) AddExactMatch(name string, args []string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules = append(m.rules, mockRule{name: name, args: args, resp: resp})
}

// AddPrefixMatch answers name when its args start with args.
func (m *MockExecutor) AddPrefixMatch(name string, args []string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules = append(m.rules, mockRule{name: name, args: args, prefix: true, resp: resp})
}

// SetMissing makes LookPath fail for name.
func (m *MockExecutor) SetMissing(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.missing[name] = true
}

// Calls returns every command run so far.
func (m *MockExecutor) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall(nil), m.calls...)
}

func (m *MockExecutor) Output(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Dir: dir, Name: name, Args: args})
	resp, ok := m.match(name, args)
	m.mu.Unlock()

	if ok {
		return resp.Stdout, resp.Err
	}
	if m.fallback != nil {
		return m.fallback.Output(ctx, dir, name, args...)
	}
	return nil, fmt.Errorf("mock: unexpected command: %s %s", name, strings.Join(args, " "))
}

func (m *MockExecutor) Run(ctx context.Context, dir, name string, args ...string) error {
	_, err := m.Output(ctx, dir, name, args...)
	return err
}

func (m *MockExecutor) LookPath(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.missing[name] {
		return "", fmt.Errorf("mock: %s not found", name)
	}
	return "/usr/bin/" + name, nil
}

func (m *MockExecutor) match(name string, args []string) (MockResponse, bool) {
	for _, r := range m.rules {
		if !r.prefix && r.name == name && equalArgs(r.args, args) {
			return r.resp, true
		}
	}
	for _, r := range m.rules {
		if r.prefix && r.name == name && len(args) >= len(r.args) && equalArgs(r.args, args[:len(r.args)]) {
			return r.resp, true
		}
	}
	return MockResponse{}, false
}

func equalArgs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
