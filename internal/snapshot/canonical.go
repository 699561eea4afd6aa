package snapshot

import (
	"cmp"
	"slices"

	"github.com/vk/routergen/internal/config"
)

// Canonicalize returns a copy of resolved sorted ascending by namespace.
// Items sharing a namespace keep their relative input order. The input is
// never modified.
func Canonicalize(resolved []config.ResolvedDependency) config.DependencySet {
	set := make(config.DependencySet, len(resolved))
	copy(set, resolved)
	slices.SortStableFunc(set, func(a, b config.ResolvedDependency) int {
		return cmp.Compare(a.Spec.Namespace, b.Spec.Namespace)
	})
	return set
}
