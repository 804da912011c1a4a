// Package repository provides flat-file persistence for documents, media
// assets and user credentials.
//
// None of the repositories lock. Concurrent writes to the same file race and
// the last write wins; a crash during a write can leave a truncated file.
package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/atinyakov/filecms/internal/models"
)

// fileDir resolves plain file names inside a single directory.
type fileDir struct {
	dir string
}

// path returns the absolute location of name, rejecting anything that is
// not a plain file name.
func (d fileDir) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", fmt.Errorf("%q: %w", name, models.ErrInvalidName)
	}
	return filepath.Join(d.dir, name), nil
}

// stat returns the path and file info of an existing regular file.
// Missing files and directories both report models.ErrNotFound.
func (d fileDir) stat(name string) (string, fs.FileInfo, error) {
	path, err := d.path(name)
	if err != nil {
		return "", nil, err
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.Mode().IsRegular()) {
		return "", nil, fmt.Errorf("%s: %w", name, models.ErrNotFound)
	}
	if err != nil {
		return "", nil, fmt.Errorf("stat %s: %w", name, err)
	}
	return path, info, nil
}

// entries lists the regular files of the directory. A missing directory
// is reported as empty.
func (d fileDir) entries() ([]fs.DirEntry, error) {
	all, err := os.ReadDir(d.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", d.dir, err)
	}

	files := make([]fs.DirEntry, 0, len(all))
	for _, e := range all {
		if e.Type().IsRegular() {
			files = append(files, e)
		}
	}
	return files, nil
}

func (d fileDir) read(name string) ([]byte, error) {
	path, _, err := d.stat(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func (d fileDir) remove(name string) error {
	path, _, err := d.stat(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", name, models.ErrNotFound)
		}
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}
