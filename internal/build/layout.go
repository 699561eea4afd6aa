package build

import (
	"path/filepath"

	"github.com/vk/routergen/internal/snapshot"
)

// Layout maps the generated program onto the target directory:
//
//	<dir>/go.mod
//	<dir>/cmd/<program>/main.go
//	<dir>/last-deps.json
type Layout struct {
	Dir     string
	Program string
}

func (l Layout) ManifestPath() string {
	return filepath.Join(l.Dir, "go.mod")
}

func (l Layout) EntryPointDir() string {
	return filepath.Join(l.Dir, "cmd", l.Program)
}

func (l Layout) EntryPointPath() string {
	return filepath.Join(l.EntryPointDir(), "main.go")
}

func (l Layout) SnapshotPath() string {
	return filepath.Join(l.Dir, snapshot.FileName)
}
