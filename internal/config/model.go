package config

import "slices"

// DependencySpec is one user-supplied record: where a handler module lives,
// which exported type implements it, and which namespace it receives.
type DependencySpec struct {
	Path      string `cty:"path" json:"path" yaml:"path"`
	Handler   string `cty:"handler" json:"handler" yaml:"handler"`
	Namespace string `cty:"ns" json:"ns" yaml:"ns"`
}

// PackageDescriptor is the identity a handler module declares about itself.
// Name is a Go module path and Version a canonical semantic version.
type PackageDescriptor struct {
	Name    string `cty:"name" json:"name"`
	Version string `cty:"version" json:"version"`
}

// ResolvedDependency pairs the user's intent with the resolved facts.
type ResolvedDependency struct {
	Spec       DependencySpec    `cty:"spec" json:"spec"`
	Descriptor PackageDescriptor `cty:"descriptor" json:"descriptor"`
}

// DependencySet is an ordered sequence of resolved dependencies. Once
// canonicalized it is sorted ascending on namespace, and that order drives
// alias assignment and equality.
type DependencySet []ResolvedDependency

// Equal reports whether two sets hold the same dependencies in the same
// order, comparing every field.
func (s DependencySet) Equal(other DependencySet) bool {
	return slices.Equal(s, other)
}

// Namespaces returns the namespaces of the set in order.
func (s DependencySet) Namespaces() []string {
	out := make([]string, len(s))
	for i, dep := range s {
		out[i] = dep.Spec.Namespace
	}
	return out
}
