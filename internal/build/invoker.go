package build

import (
	"context"
	"path/filepath"

	"github.com/vk/routergen/internal/codegen"
	"github.com/vk/routergen/internal/config"
	"github.com/vk/routergen/internal/ctxlog"
	"github.com/vk/routergen/internal/fsutil"
	"github.com/vk/routergen/internal/snapshot"
)

// Outcome is how a run ended.
type Outcome int

const (
	// Skipped: the dependency set matched the snapshot, nothing was written.
	Skipped Outcome = iota
	// Built: the build succeeded and the snapshot was updated.
	Built
	// BuildFailed: the build command exited non-zero. The snapshot was kept.
	BuildFailed
)

func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case Built:
		return "built"
	case BuildFailed:
		return "build failed"
	default:
		return "unknown"
	}
}

// Report describes one invocation.
type Report struct {
	Outcome Outcome
	Command Command
	Result  *Result
	// Written lists the artifact paths replaced in the target directory.
	Written []string
}

// Invoker drives one generate-and-build cycle in a target directory.
type Invoker struct {
	Layout  Layout
	Runner  Runner
	Store   *snapshot.Store
	Command []string
}

// NewInvoker creates an invoker whose snapshot lives in layout.Dir.
func NewInvoker(layout Layout, runner Runner, command []string) *Invoker {
	return &Invoker{
		Layout:  layout,
		Runner:  runner,
		Store:   snapshot.NewStore(layout.Dir),
		Command: command,
	}
}

// Invoke writes artifacts, runs the build and saves set as the new snapshot
// when the build exits with status zero.
func (inv *Invoker) Invoke(ctx context.Context, set config.DependencySet, art *codegen.Artifacts) (*Report, error) {
	logger := ctxlog.FromContext(ctx)

	written, err := inv.writeArtifacts(ctx, art)
	if err != nil {
		return nil, err
	}

	cmd := Command{Args: inv.Command, Dir: inv.Layout.Dir}
	logger.Info("Running build command.", "command", cmd.String(), "dir", cmd.Dir)

	res, err := inv.Runner.Run(ctx, cmd)
	if err != nil {
		logger.Error("Build command could not be run.", "command", cmd.String(), "error", err)
		return nil, err
	}

	report := &Report{Command: cmd, Result: res, Written: written}
	if res.ExitCode != 0 {
		logger.Error("Build failed, keeping previous snapshot.",
			"exit_code", res.ExitCode, "duration", res.Duration, "output", string(res.Output))
		report.Outcome = BuildFailed
		return report, nil
	}

	logger.Info("Build succeeded.", "duration", res.Duration)
	if err := inv.Store.Save(ctx, set); err != nil {
		return nil, err
	}
	report.Outcome = Built
	return report, nil
}

// writeArtifacts stages both files before renaming either. If a rename
// fails, files already renamed are restored from their backups, so a failed
// write leaves the previous generation in place.
func (inv *Invoker) writeArtifacts(ctx context.Context, art *codegen.Artifacts) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	for _, dir := range []string{inv.Layout.Dir, inv.Layout.EntryPointDir()} {
		created, err := fsutil.EnsureDir(dir, 0o755)
		if err != nil {
			return nil, config.IOError("mkdir", dir, err)
		}
		if created {
			logger.Debug("Created directory.", "dir", dir)
		}
	}

	files := []struct {
		path string
		data []byte
	}{
		{inv.Layout.ManifestPath(), art.Manifest},
		{inv.Layout.EntryPointPath(), art.EntryPoint},
	}

	staged := make([]*fsutil.Staged, 0, len(files))
	defer func() {
		for _, st := range staged {
			st.Discard()
		}
	}()
	for _, file := range files {
		st, err := fsutil.Stage(file.path, file.data, 0o644)
		if err != nil {
			return nil, config.IOError("write", file.path, err)
		}
		staged = append(staged, st)
	}

	backups := make([]*fsutil.Backup, 0, len(staged))
	for _, st := range staged {
		b, err := fsutil.TakeBackup(st.Dest())
		if err != nil {
			return nil, config.IOError("read", st.Dest(), err)
		}
		backups = append(backups, b)
	}

	written := make([]string, 0, len(staged))
	for i, st := range staged {
		if err := st.Commit(); err != nil {
			inv.restore(ctx, backups[:i])
			return nil, config.IOError("rename", st.Dest(), err)
		}
		rel, _ := filepath.Rel(inv.Layout.Dir, st.Dest())
		logger.Debug("Artifact written.", "file", rel)
		written = append(written, st.Dest())
	}
	return written, nil
}

// restore puts back artifacts already committed when a later rename fails,
// so the manifest and entry point never come from different generations.
func (inv *Invoker) restore(ctx context.Context, backups []*fsutil.Backup) {
	logger := ctxlog.FromContext(ctx)
	for i := len(backups) - 1; i >= 0; i-- {
		if err := backups[i].Restore(); err != nil {
			logger.Error("Could not restore artifact.", "error", err)
		}
	}
}
