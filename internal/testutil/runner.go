package testutil

import (
	"context"
	"sync"

	"github.com/vk/routergen/internal/build"
)

// FakeRunner stands in for the build toolchain. It returns ExitCodes in
// order (zero once they run out) and records every command it was given.
type FakeRunner struct {
	ExitCodes []int
	Output    string
	Err       error

	mu    sync.Mutex
	calls []build.Command
}

var _ build.Runner = (*FakeRunner)(nil)

// Run records cmd and returns the next scripted result.
func (r *FakeRunner) Run(_ context.Context, cmd build.Command) (*build.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, cmd)
	if r.Err != nil {
		return nil, r.Err
	}
	code := 0
	if len(r.ExitCodes) > 0 {
		code, r.ExitCodes = r.ExitCodes[0], r.ExitCodes[1:]
	}
	return &build.Result{ExitCode: code, Output: []byte(r.Output)}, nil
}

// Calls returns the commands run so far.
func (r *FakeRunner) Calls() []build.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]build.Command(nil), r.calls...)
}
