package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gookit/color"
	"github.com/vk/routergen/internal/app"
	"github.com/vk/routergen/internal/build"
	"github.com/vk/routergen/internal/cli"
)

// main is the entrypoint for the routergen application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(context.Background(), os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, color.Danger.Sprintf("routergen: %v", err))
		os.Exit(cli.ExitCode(err))
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// A panic anywhere in the pipeline is a bug; report it as an internal
	// failure instead of a stack trace.
	defer func() {
		if r := recover(); r != nil {
			err = &cli.ExitError{Code: cli.ExitInternal, Message: fmt.Sprintf("internal error: %v", r)}
		}
	}()

	routergen, err := app.NewApp(outW, appConfig)
	if err != nil {
		return err
	}
	defer routergen.Close()

	res, err := routergen.Run(ctx)
	if err != nil {
		return err
	}

	printOutcome(outW, res)
	return nil
}

// printOutcome writes the one-line summary of a run.
func printOutcome(w io.Writer, res *app.Result) {
	n := len(res.Set)
	switch res.Outcome {
	case build.Skipped:
		fmt.Fprintln(w, color.Info.Sprintf("unchanged: %d dependencies, build skipped", n))
	case build.Built:
		fmt.Fprintln(w, color.Success.Sprintf("built: %d dependencies in %s", n, res.Build.Result.Duration.Round(time.Millisecond)))
	case build.BuildFailed:
		fmt.Fprintln(w, color.Warn.Sprintf("build failed with exit code %d: snapshot kept, the next run will retry", res.Build.Result.ExitCode))
	}
}
