// Package config defines the format-agnostic model shared by every stage of
// the generator: the user's dependency specifications, the descriptors
// resolved from each handler module, the canonical dependency set, the tool
// configuration, and the error kinds the pipeline reports.
//
// `config.DependencySet` is the single source of truth for the `codegen` and
// `build` packages. Concrete readers for the on-disk formats (HCL, JSON,
// YAML) live in separate packages.
package config
