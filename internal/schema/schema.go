// Package schema holds the HCL-tagged structs that mirror the generator's
// HCL files: dependency lists, handler descriptors and the tool config.
package schema

import "github.com/hashicorp/hcl/v2"

// --- Dependency Lists ---

// Dependency represents a `dependency` block. The label is the namespace the
// handler receives messages under.
type Dependency struct {
	Namespace string `hcl:"ns,label"`
	Path      string `hcl:"path"`
	Handler   string `hcl:"handler"`
}

// DependencyFile is the top-level structure of an HCL dependency list. It has
// no remain body, so stray blocks and attributes are rejected.
type DependencyFile struct {
	Dependencies []*Dependency `hcl:"dependency,block"`
}

// --- Handler Descriptors ---

// Package is the `package` block of a handler module's descriptor.
type Package struct {
	Name    string `hcl:"name"`
	Version string `hcl:"version"`
}

// DescriptorFile is the top-level structure of a handler.hcl descriptor.
// Anything besides the package block is left to the module's own tooling.
type DescriptorFile struct {
	Package *Package `hcl:"package,block"`
	Remain  hcl.Body `hcl:",remain"`
}

// --- Tool Config ---

// Program defines the identity of the generated dispatcher.
type Program struct {
	Name      string `hcl:"name,optional"`
	Module    string `hcl:"module,optional"`
	GoVersion string `hcl:"go_version,optional"`
}

// Framework is one fixed requirement of the generated program, labelled by
// module path.
type Framework struct {
	Module  string `hcl:"module,label"`
	Version string `hcl:"version"`
}

// Packages names the framework packages imported by the entry point.
type Packages struct {
	Host   string `hcl:"host,optional"`
	Router string `hcl:"router,optional"`
}

// Build configures the external build command.
type Build struct {
	Command []string `hcl:"command,optional"`
}

// ToolFile is the top-level structure of the generator's config file.
type ToolFile struct {
	Program    *Program     `hcl:"program,block"`
	Frameworks []*Framework `hcl:"framework,block"`
	Packages   *Packages    `hcl:"packages,block"`
	Build      *Build       `hcl:"build,block"`
}
