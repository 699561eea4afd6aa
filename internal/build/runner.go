package build

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/vk/routergen/internal/config"
)

// Command is one external build invocation.
type Command struct {
	Args []string
	// Dir is the working directory of the command.
	Dir string
}

func (c Command) String() string {
	return strings.Join(c.Args, " ")
}

// Result is what a finished command reported.
type Result struct {
	ExitCode int
	// Output is the combined stdout and stderr of the command.
	Output   []byte
	Duration time.Duration
}

// Runner executes a command and waits for it to exit. A non-zero exit is
// reported through Result; the error return is only for commands that could
// not run at all.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// ExecRunner runs commands as child processes. The child inherits the
// environment so the toolchain finds its caches. There is no timeout beyond
// ctx.
type ExecRunner struct {
	// Stream, when set, receives the output while the command runs.
	Stream io.Writer
}

var _ Runner = (*ExecRunner)(nil)

// Run starts cmd and blocks until it exits.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (*Result, error) {
	if len(cmd.Args) == 0 || cmd.Args[0] == "" {
		return nil, config.BuildError("", errors.New("build command is empty"))
	}

	c := exec.CommandContext(ctx, cmd.Args[0], cmd.Args[1:]...)
	c.Dir = cmd.Dir

	var out bytes.Buffer
	var w io.Writer = &out
	if r.Stream != nil {
		w = io.MultiWriter(&out, r.Stream)
	}
	c.Stdout = w
	c.Stderr = w

	start := time.Now()
	err := c.Run()
	elapsed := time.Since(start)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, config.BuildError(cmd.String(), err)
		}
		exitCode = exitErr.ExitCode()
	}

	return &Result{ExitCode: exitCode, Output: out.Bytes(), Duration: elapsed}, nil
}
