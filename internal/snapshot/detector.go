package snapshot

import (
	"context"

	"github.com/vk/routergen/internal/config"
	"github.com/vk/routergen/internal/ctxlog"
)

// Detector decides whether a freshly resolved set differs from the last
// successful build.
type Detector struct {
	Store *Store
	// CheckChanges enables skipping. When false every run rebuilds.
	CheckChanges bool
}

// Detect canonicalizes resolved and compares it with the snapshot. unchanged
// is true only when checking is enabled, a snapshot exists and it equals the
// canonical set.
func (d *Detector) Detect(ctx context.Context, resolved []config.ResolvedDependency) (set config.DependencySet, unchanged bool) {
	logger := ctxlog.FromContext(ctx)
	set = Canonicalize(resolved)

	if !d.CheckChanges {
		logger.Debug("Change checking disabled, rebuilding.")
		return set, false
	}

	prev, ok := d.Store.Load(ctx)
	if !ok {
		return set, false
	}

	unchanged = set.Equal(prev)
	logger.Debug("Compared dependency set with snapshot.", "unchanged", unchanged, "current", len(set), "previous", len(prev))
	return set, unchanged
}
