package fsutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// Staged is a file fully written next to its destination but not yet renamed
// into place. Staging every file of a change first lets a caller abort without
// touching any destination.
type Staged struct {
	pending *renameio.PendingFile
	dest    string
}

// Stage writes data to a pending file in dest's directory.
func Stage(dest string, data []byte, perm os.FileMode) (*Staged, error) {
	pending, err := renameio.NewPendingFile(dest,
		renameio.WithTempDir(filepath.Dir(dest)),
		renameio.WithPermissions(perm),
	)
	if err != nil {
		return nil, err
	}
	if _, err := pending.Write(data); err != nil {
		_ = pending.Cleanup()
		return nil, err
	}
	return &Staged{pending: pending, dest: dest}, nil
}

// Dest returns the path the staged file will be renamed to.
func (s *Staged) Dest() string {
	return s.dest
}

// Commit syncs the staged file and renames it over its destination.
func (s *Staged) Commit() error {
	if err := s.pending.CloseAtomicallyReplace(); err != nil {
		_ = s.pending.Cleanup()
		return err
	}
	return nil
}

// Discard removes the staged file. It is a no-op after a successful Commit.
func (s *Staged) Discard() {
	_ = s.pending.Cleanup()
}

// WriteFileAtomic replaces path with data so readers see either the old or
// the new content, never a partial write.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(path, data, perm, renameio.WithTempDir(filepath.Dir(path)))
}

// Backup is the content a file had before it was replaced.
type Backup struct {
	path   string
	data   []byte
	perm   os.FileMode
	exists bool
}

// TakeBackup records the current content of path. A missing file is recorded
// as absent, so Restore removes whatever replaced it.
func TakeBackup(path string) (*Backup, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Backup{path: path}, nil
	}
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Backup{path: path, data: data, perm: info.Mode().Perm(), exists: true}, nil
}

// Restore puts the recorded content back.
func (b *Backup) Restore() error {
	if !b.exists {
		if err := os.Remove(b.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	}
	return WriteFileAtomic(b.path, b.data, b.perm)
}

// EnsureDir creates dir (and parents) when absent. It reports whether it had
// to create anything.
func EnsureDir(dir string, perm os.FileMode) (bool, error) {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, &os.PathError{Op: "mkdir", Path: dir, Err: errors.New("not a directory")}
		}
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	if err := os.MkdirAll(dir, perm); err != nil {
		return false, err
	}
	return true, nil
}
