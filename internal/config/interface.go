package config

import "context"

// SourceFormat names the syntax of a dependency specification list.
type SourceFormat string

const (
	FormatAuto SourceFormat = "auto"
	FormatJSON SourceFormat = "json"
	FormatYAML SourceFormat = "yaml"
	FormatHCL  SourceFormat = "hcl"
)

// Source tells a SpecLoader where the dependency list comes from. Exactly one
// of Path or Inline is used; Inline wins when both are set.
type Source struct {
	Path   string
	Inline string
	Format SourceFormat
	// BaseDir anchors relative dependency paths of an inline list. Lists read
	// from a file are anchored at the file's directory instead.
	BaseDir string
}

// SpecLoader reads the raw dependency specification list.
type SpecLoader interface {
	Load(ctx context.Context, src Source) ([]DependencySpec, error)
}

// Resolver pairs each specification with the descriptor of the module it
// points at. Implementations are fail-fast: one unreadable module aborts the
// whole resolution.
type Resolver interface {
	Resolve(ctx context.Context, specs []DependencySpec) ([]ResolvedDependency, error)
}
