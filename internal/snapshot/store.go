package snapshot

import (
	"context"
	"os"
	"path/filepath"

	"github.com/vk/routergen/internal/config"
	"github.com/vk/routergen/internal/ctxlog"
	"github.com/vk/routergen/internal/fsutil"
	"github.com/vk/routergen/internal/hcl"
)

// FileName is the snapshot's name inside the target directory.
const FileName = "last-deps.json"

// Store reads and writes the snapshot of one target directory.
type Store struct {
	Dir       string
	converter *hcl.Converter
}

// NewStore creates a store for the target directory dir.
func NewStore(dir string) *Store {
	return &Store{Dir: dir, converter: hcl.NewConverter()}
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return filepath.Join(s.Dir, FileName)
}

// Load returns the recorded set. A missing, unreadable or malformed snapshot
// means there is no previous build; it is reported as ok == false, never as
// an error.
func (s *Store) Load(ctx context.Context) (config.DependencySet, bool) {
	logger := ctxlog.FromContext(ctx)
	path := s.Path()

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Debug("No usable snapshot, treating as first build.", "path", path, "error", err)
		return nil, false
	}

	var set config.DependencySet
	if err := s.converter.UnmarshalJSON(data, &set); err != nil {
		logger.Debug("Snapshot is malformed, treating as first build.", "path", path, "error", err)
		return nil, false
	}
	if set == nil {
		set = config.DependencySet{}
	}

	logger.Debug("Snapshot loaded.", "path", path, "dependencies", len(set))
	return set, true
}

// Save replaces the snapshot with set. The file is written to a temporary
// name first and renamed into place.
func (s *Store) Save(ctx context.Context, set config.DependencySet) error {
	logger := ctxlog.FromContext(ctx)
	path := s.Path()

	data, err := s.converter.MarshalJSON(set)
	if err != nil {
		return config.IOError("encode snapshot", path, err)
	}
	data = append(data, '\n')

	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return config.IOError("write snapshot", path, err)
	}

	logger.Debug("Snapshot saved.", "path", path, "dependencies", len(set))
	return nil
}
