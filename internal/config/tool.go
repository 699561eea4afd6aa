package config

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Program is the fixed identity of the generated dispatcher.
type Program struct {
	// Name is the binary name and the entry-point directory under cmd/.
	Name string
	// Module is the module path written to the generated manifest.
	Module    string
	GoVersion string
}

// Framework is one fixed runtime or dispatch-framework requirement of the
// generated program.
type Framework struct {
	Module  string
	Version string
}

// Packages names the framework packages the entry point imports.
type Packages struct {
	// Host opens the channel to the host process and runs the event loop.
	Host string
	// Router provides the namespace dispatcher.
	Router string
}

// Tool is the generator's own configuration.
type Tool struct {
	Program    Program
	Frameworks []Framework
	Packages   Packages
	// BuildCommand is run inside the target directory. The first element is
	// the executable.
	BuildCommand []string
}

const (
	DefaultProgramName  = "nvim-router"
	DefaultGoVersion    = "1.24"
	DefaultHostModule   = "github.com/neovim/go-client"
	// DefaultRouterModule is a placeholder. No published router module is
	// known to provide the New/Route/Register API the entry point calls, so
	// the operator must point the framework and packages blocks of a tool
	// config at a real one before the default build can succeed.
	DefaultRouterModule  = "github.com/naughie/nvim-router-go"
	DefaultRouterVersion = "v0.1.0"
)

// DefaultTool returns the configuration used when no tool config file is
// given, or for the blocks a config file leaves out. Its router framework is
// the DefaultRouterModule placeholder and must be replaced with a real module
// through -config for the generated program to build.
func DefaultTool() Tool {
	return Tool{
		Program: Program{
			Name:      DefaultProgramName,
			Module:    DefaultProgramName,
			GoVersion: DefaultGoVersion,
		},
		Frameworks: []Framework{
			{Module: DefaultHostModule, Version: "v1.2.1"},
			{Module: DefaultRouterModule, Version: DefaultRouterVersion},
		},
		Packages: Packages{
			Host:   DefaultHostModule + "/nvim",
			Router: DefaultRouterModule + "/router",
		},
		BuildCommand: DefaultBuildCommand(DefaultProgramName),
	}
}

// UsesPlaceholderRouter reports whether t still depends on the placeholder
// router framework or imports its router package.
func (t Tool) UsesPlaceholderRouter() bool {
	for _, fw := range t.Frameworks {
		if fw.Module == DefaultRouterModule {
			return true
		}
	}
	return t.Packages.Router == DefaultRouterModule+"/router"
}

// DefaultBuildCommand is the release build of the generated program:
// trimmed paths, stripped symbol and DWARF tables, go.sum filled in on the fly.
func DefaultBuildCommand(program string) []string {
	return []string{
		"go", "build", "-mod=mod", "-trimpath", "-ldflags=-s -w",
		"-o", path.Join("bin", program), "./" + path.Join("cmd", program),
	}
}

// Validate checks that the tool configuration can drive generation.
func (t Tool) Validate() error {
	var errs []error
	if strings.TrimSpace(t.Program.Name) == "" || strings.ContainsAny(t.Program.Name, `/\`) {
		errs = append(errs, fmt.Errorf("program name %q must be a single path element", t.Program.Name))
	}
	if strings.TrimSpace(t.Program.Module) == "" {
		errs = append(errs, errors.New("program module is required"))
	}
	if strings.TrimSpace(t.Program.GoVersion) == "" {
		errs = append(errs, errors.New("program go_version is required"))
	}
	for _, fw := range t.Frameworks {
		if fw.Module == "" || fw.Version == "" {
			errs = append(errs, fmt.Errorf("framework %q needs both module and version", fw.Module))
		}
	}
	if t.Packages.Host == "" || t.Packages.Router == "" {
		errs = append(errs, errors.New("packages host and router are required"))
	}
	if len(t.BuildCommand) == 0 || t.BuildCommand[0] == "" {
		errs = append(errs, errors.New("build command is empty"))
	}
	return errors.Join(errs...)
}
