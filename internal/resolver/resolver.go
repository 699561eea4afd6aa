// Package resolver pairs each dependency specification with the identity its
// handler module declares about itself.
//
// A handler module directory must contain a `handler.hcl` descriptor with a
// `package { name, version }` block and a `go.mod` whose module path matches
// that name. Resolution is fail-fast: the first unusable module aborts the
// whole run with a config.KindResolution error and no partial result.
package resolver

import (
	"context"
	"os"
	"path/filepath"

	"github.com/vk/routergen/internal/config"
	"github.com/vk/routergen/internal/ctxlog"
	"github.com/vk/routergen/internal/hcl"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
)

// Resolver reads handler descriptors from the local file system.
type Resolver struct{}

// New creates a new resolver.
func New() *Resolver {
	return &Resolver{}
}

var _ config.Resolver = (*Resolver)(nil)

// Resolve returns one resolved dependency per spec, in input order.
func (r *Resolver) Resolve(ctx context.Context, specs []config.DependencySpec) ([]config.ResolvedDependency, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolving dependency descriptors.", "count", len(specs))

	resolved := make([]config.ResolvedDependency, 0, len(specs))
	owners := make(map[string]string, len(specs))

	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		desc, err := r.resolveOne(spec)
		if err != nil {
			logger.Error("Failed to resolve dependency.", "namespace", spec.Namespace, "path", spec.Path, "error", err)
			return nil, err
		}

		if owner, ok := owners[desc.Name]; ok && owner != spec.Path {
			return nil, config.ResolutionErrorf(spec.Path,
				"module %s is also provided by %s; one module cannot be replaced by two directories", desc.Name, owner)
		}
		owners[desc.Name] = spec.Path

		logger.Debug("Dependency resolved.", "namespace", spec.Namespace, "module", desc.Name, "version", desc.Version)
		resolved = append(resolved, config.ResolvedDependency{Spec: spec, Descriptor: desc})
	}

	logger.Info("Dependencies resolved.", "count", len(resolved))
	return resolved, nil
}

func (r *Resolver) resolveOne(spec config.DependencySpec) (config.PackageDescriptor, error) {
	descPath := filepath.Join(spec.Path, hcl.DescriptorFileName)
	src, err := os.ReadFile(descPath)
	if err != nil {
		return config.PackageDescriptor{}, resolutionError(descPath, err)
	}

	desc, err := hcl.DecodeDescriptor(descPath, src)
	if err != nil {
		return config.PackageDescriptor{}, resolutionError(descPath, err)
	}

	if err := module.Check(desc.Name, desc.Version); err != nil {
		return config.PackageDescriptor{}, resolutionError(descPath, err)
	}

	modPath := filepath.Join(spec.Path, "go.mod")
	modSrc, err := os.ReadFile(modPath)
	if err != nil {
		return config.PackageDescriptor{}, resolutionError(modPath, err)
	}
	declared := modfile.ModulePath(modSrc)
	if declared == "" {
		return config.PackageDescriptor{}, config.ResolutionErrorf(modPath, "no module directive")
	}
	if declared != desc.Name {
		return config.PackageDescriptor{}, config.ResolutionErrorf(modPath,
			"module path %s does not match descriptor name %s", declared, desc.Name)
	}
	return desc, nil
}

func resolutionError(path string, err error) error {
	return &config.Error{Kind: config.KindResolution, Op: "resolve", Path: path, Err: err}
}
