package codegen

import (
	"fmt"
	"strconv"

	"github.com/vk/routergen/internal/config"
)

// GeneratedHeader marks both artifacts as machine-written.
const GeneratedHeader = "Code generated by routergen. DO NOT EDIT."

// Artifacts are the rendered files of the generated program.
type Artifacts struct {
	Manifest   []byte
	EntryPoint []byte
}

// Generator renders artifacts for one tool configuration.
type Generator struct {
	tool config.Tool
}

// New creates a generator for the given tool configuration.
func New(tool config.Tool) *Generator {
	return &Generator{tool: tool}
}

// Alias is the identifier of the i-th dependency of a canonical set.
func Alias(i int) string {
	return "dep" + strconv.Itoa(i)
}

// Generate renders the manifest and entry point for set, which must already
// be canonical.
func (g *Generator) Generate(set config.DependencySet) (*Artifacts, error) {
	mods, err := g.groupModules(set)
	if err != nil {
		return nil, err
	}

	manifest, err := g.manifest(mods)
	if err != nil {
		return nil, fmt.Errorf("failed to render manifest: %w", err)
	}
	entry, err := g.entryPoint(set, mods)
	if err != nil {
		return nil, fmt.Errorf("failed to render entry point: %w", err)
	}
	return &Artifacts{Manifest: manifest, EntryPoint: entry}, nil
}

// handlerModule is one distinct module of the set with every position that
// uses it. The first position names its import.
type handlerModule struct {
	Name    string
	Version string
	Dir     string
	Indices []int
}

func (m *handlerModule) alias() string {
	return Alias(m.Indices[0])
}

// groupModules folds the set into distinct modules in order of first use.
// A module path may not also be the program itself or one of its framework
// requirements.
func (g *Generator) groupModules(set config.DependencySet) ([]*handlerModule, error) {
	reserved := map[string]string{g.tool.Program.Module: "the program module"}
	for _, fw := range g.tool.Frameworks {
		reserved[fw.Module] = "a framework requirement"
	}

	var mods []*handlerModule
	byName := make(map[string]*handlerModule, len(set))

	for i, dep := range set {
		name := dep.Descriptor.Name
		if what, ok := reserved[name]; ok {
			return nil, config.ResolutionErrorf(dep.Spec.Path, "module %s is %s and cannot be a handler", name, what)
		}
		m, ok := byName[name]
		if !ok {
			m = &handlerModule{Name: name, Version: dep.Descriptor.Version, Dir: dep.Spec.Path}
			byName[name] = m
			mods = append(mods, m)
		} else if m.Version != dep.Descriptor.Version || m.Dir != dep.Spec.Path {
			return nil, config.ResolutionErrorf(dep.Spec.Path,
				"module %s is declared as %s at %s and as %s at %s", name, m.Version, m.Dir, dep.Descriptor.Version, dep.Spec.Path)
		}
		m.Indices = append(m.Indices, i)
	}
	return mods, nil
}
