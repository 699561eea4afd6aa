package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/routergen/internal/build"
	"github.com/vk/routergen/internal/config"
	"github.com/vk/routergen/internal/ctxlog"
	"github.com/vk/routergen/internal/hcl"
	"github.com/vk/routergen/internal/loader"
	"github.com/vk/routergen/internal/resolver"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	logSink  io.Closer
	config   *Config
	tool     config.Tool
	loader   config.SpecLoader
	resolver config.Resolver
	runner   build.Runner
}

// Option customizes an App. Tests use options to replace the stages that
// touch the outside world.
type Option func(*App)

// WithLoader replaces the dependency list loader.
func WithLoader(l config.SpecLoader) Option {
	return func(a *App) { a.loader = l }
}

// WithResolver replaces the descriptor resolver.
func WithResolver(r config.Resolver) Option {
	return func(a *App) { a.resolver = r }
}

// WithRunner replaces the build command runner.
func WithRunner(r build.Runner) Option {
	return func(a *App) { a.runner = r }
}

// NewApp is the constructor for the main application. It builds the logger
// once, loads the tool configuration and wires the default stages.
func NewApp(outW io.Writer, appConfig *Config, opts ...Option) (*App, error) {
	sink, closer, err := openLogSink(appConfig.LogFile, outW)
	if err != nil {
		return nil, config.IOError("open log file", appConfig.LogFile, err)
	}
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, sink)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	tool, err := hcl.LoadTool(ctx, appConfig.ToolConfigPath)
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, err
	}

	if tool.UsesPlaceholderRouter() {
		logger.Warn("Router framework is the built-in placeholder; the build will fail until -config names a real router module.",
			"module", config.DefaultRouterModule)
	}

	a := &App{
		outW:     outW,
		logger:   logger,
		logSink:  closer,
		config:   appConfig,
		tool:     tool,
		loader:   loader.New(),
		resolver: resolver.New(),
		runner:   &build.ExecRunner{},
	}
	for _, opt := range opts {
		opt(a)
	}
	logger.Debug("App wired.", "target", appConfig.TargetDir, "program", tool.Program.Name, "check_changes", appConfig.CheckChanges)
	return a, nil
}

// Tool returns the effective tool configuration.
func (a *App) Tool() config.Tool {
	return a.tool
}

// Close releases the log file, if one was opened.
func (a *App) Close() error {
	if a.logSink == nil {
		return nil
	}
	return a.logSink.Close()
}
