package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/routergen/internal/app"
	"github.com/vk/routergen/internal/config"
)

// Process exit codes.
const (
	ExitOK         = 0
	ExitInternal   = 1
	ExitUsage      = 2
	ExitFormat     = 3
	ExitIO         = 4
	ExitResolution = 5
	ExitBuild      = 6
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// ExitCode maps a pipeline error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if exitErr, ok := err.(*ExitError); ok {
		return exitErr.Code
	}
	switch config.KindOf(err) {
	case config.KindFormat:
		return ExitFormat
	case config.KindIO:
		return ExitIO
	case config.KindResolution:
		return ExitResolution
	case config.KindBuild:
		return ExitBuild
	default:
		return ExitInternal
	}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("routergen", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
routergen - generates and builds a namespace dispatcher over handler modules.

Usage:
  routergen [options] TARGET_DIR [CHECK_CHANGES]

Arguments:
  TARGET_DIR
    Directory that receives go.mod, cmd/<program>/main.go and last-deps.json.
  CHECK_CHANGES
    The literal "true" skips the run when the dependency set is unchanged
    since the last successful build. Anything else always rebuilds.

Options:
`)
		flagSet.PrintDefaults()
	}

	targetFlag := flagSet.String("target", "", "Target directory (overrides TARGET_DIR).")
	checkFlag := flagSet.String("check-changes", "", `Skip unchanged builds when set to "true" (overrides CHECK_CHANGES).`)
	depsFlag := flagSet.String("deps", "deps.json", "Dependency list: a .json, .yaml or .hcl file, or a directory of .hcl files.")
	depsInlineFlag := flagSet.String("deps-inline", "", "Dependency list given inline. Wins over -deps.")
	depsFormatFlag := flagSet.String("deps-format", "auto", "Dependency list format. Options: 'auto', 'json', 'yaml' or 'hcl'.")
	configFlag := flagSet.String("config", "", "Optional HCL tool config (program, frameworks, build command).")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFileFlag := flagSet.String("log-file", "", "Write diagnostics to this file instead of stdout.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 2 {
		return nil, false, &ExitError{Code: ExitUsage, Message: fmt.Sprintf("too many arguments: %q", flagSet.Args()[2:])}
	}

	target := *targetFlag
	if target == "" && flagSet.NArg() > 0 {
		target = flagSet.Arg(0)
	}
	if target == "" {
		slog.Debug("No target directory provided, printing usage.")
		flagSet.Usage()
		return nil, false, &ExitError{Code: ExitUsage, Message: "missing TARGET_DIR"}
	}

	check := *checkFlag
	if check == "" && flagSet.NArg() > 1 {
		check = flagSet.Arg(1)
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	cfg, err := app.NewConfig(app.Config{
		TargetDir:      target,
		CheckChanges:   check == "true",
		DepsPath:       *depsFlag,
		DepsInline:     *depsInlineFlag,
		DepsFormat:     config.SourceFormat(strings.ToLower(*depsFormatFlag)),
		ToolConfigPath: *configFlag,
		LogFormat:      logFormat,
		LogLevel:       logLevel,
		LogFile:        *logFileFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}
