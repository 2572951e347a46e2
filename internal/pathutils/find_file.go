package pathutils

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by [FindFile] when no directory in the tree holds the file.
var ErrNotFound = errors.New("file not found in directory tree")

// FindFile returns the path to the named file by searching start and its parent directories.
// The nearest file wins, directories with a matching name are skipped.
// Returns an error if filesystem operations fail, or [ErrNotFound] if no file is found.
func FindFile(start, name string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve %s", start)
	}
	for {
		path := filepath.Join(dir, name)
		fi, err := os.Stat(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return "", errors.Wrapf(err, "failed to stat %s", path)
			}
		} else if !fi.IsDir() {
			return path, nil
		}

		d := filepath.Dir(dir)
		if d == dir {
			break
		}
		dir = d
	}
	return "", errors.Wrapf(ErrNotFound, "%s searched from %s", name, start)
}

// FindFileFromWorkingDir calls [FindFile] starting in the current working directory.
func FindFileFromWorkingDir(name string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "failed to get current working directory")
	}
	return FindFile(dir, name)
}
