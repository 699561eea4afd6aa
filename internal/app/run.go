package app

import (
	"context"
	"fmt"

	"github.com/vk/routergen/internal/build"
	"github.com/vk/routergen/internal/codegen"
	"github.com/vk/routergen/internal/config"
	"github.com/vk/routergen/internal/ctxlog"
	"github.com/vk/routergen/internal/snapshot"
)

// Result summarizes one run.
type Result struct {
	Outcome build.Outcome
	// Set is the canonical dependency set of this run.
	Set config.DependencySet
	// Build is nil when the run was skipped.
	Build *build.Report
}

// Run executes one generate-and-build cycle: load the dependency list,
// resolve descriptors, compare with the snapshot, and unless the set is
// unchanged, generate the program and build it.
func (a *App) Run(ctx context.Context) (*Result, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	specs, err := a.loader.Load(ctx, a.config.source())
	if err != nil {
		return nil, fmt.Errorf("failed to load dependency list: %w", err)
	}

	resolved, err := a.resolver.Resolve(ctx, specs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dependencies: %w", err)
	}

	detector := &snapshot.Detector{
		Store:        snapshot.NewStore(a.config.TargetDir),
		CheckChanges: a.config.CheckChanges,
	}
	set, unchanged := detector.Detect(ctx, resolved)
	if unchanged {
		a.logger.Info("Dependencies unchanged since last successful build, skipping.", "dependencies", len(set))
		return &Result{Outcome: build.Skipped, Set: set}, nil
	}
	a.logger.Info("Generating dispatcher.", "dependencies", len(set), "namespaces", set.Namespaces())

	artifacts, err := codegen.New(a.tool).Generate(set)
	if err != nil {
		return nil, fmt.Errorf("failed to generate program: %w", err)
	}

	invoker := build.NewInvoker(
		build.Layout{Dir: a.config.TargetDir, Program: a.tool.Program.Name},
		a.runner,
		a.tool.BuildCommand,
	)
	report, err := invoker.Invoke(ctx, set, artifacts)
	if err != nil {
		return nil, fmt.Errorf("failed to build program: %w", err)
	}

	a.logger.Debug("App.Run method finished.", "outcome", report.Outcome)
	return &Result{Outcome: report.Outcome, Set: set, Build: report}, nil
}
