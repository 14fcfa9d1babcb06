package util

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ErrNotADirectory is returned when a path that should be a directory is
// missing or is a regular file.
var ErrNotADirectory = errors.New("not a directory")

// FileMode is the permission of files written by WriteFileAtomic.
const FileMode os.FileMode = 0o644

// Entry is a single directory entry.
type Entry struct {
	// Name is the base name of the entry.
	Name string
	// Path is the directory joined with Name.
	Path string
	// IsDir reports whether the entry is a directory.
	IsDir bool
}

// ListEntries lists the entries of a directory without descending into
// subdirectories.
//
// Arguments:
//   - dir: Directory path to list.
//
// Returns:
//   - []Entry: The entries sorted by name, as os.ReadDir returns them.
//   - error: ErrNotADirectory if dir does not exist or is not a directory.
func ListEntries(dir string) ([]Entry, error) {
	if err := CheckDir(dir); err != nil {
		return nil, err
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read directory %s", dir)
	}

	entries := make([]Entry, 0, len(files))
	for _, file := range files {
		entries = append(entries, Entry{
			Name:  file.Name(),
			Path:  filepath.Join(dir, file.Name()),
			IsDir: file.IsDir(),
		})
	}

	return entries, nil
}

// CheckDir returns ErrNotADirectory unless dir exists and is a directory.
func CheckDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return errors.Wrapf(ErrNotADirectory, "%s: %v", dir, err)
	}
	if !info.IsDir() {
		return errors.Wrap(ErrNotADirectory, dir)
	}
	return nil
}

// WriteFileAtomic writes a file by streaming into a temporary file in the
// same directory and renaming it into place with FileMode permissions. A
// failed write leaves nothing at path.
//
// Arguments:
//   - path: Destination file path. Its directory must exist.
//   - write: Callback producing the file contents.
//
// Returns:
//   - error: The first error from creating, writing, closing or renaming.
func WriteFileAtomic(path string, write func(w io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temporary file")
	}
	tmpName := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(FileMode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, "chmod temporary file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "close temporary file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "rename to %s", path)
	}
	return nil
}
