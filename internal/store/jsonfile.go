package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	filePermissions = 0644
	dirPermissions  = 0755
)

// JSONFile keeps the collection as a JSON array in a single text file.
type JSONFile struct {
	path string
}

// NewJSONFile returns a medium backed by the file at path. The file is not
// touched until the first Read, Write or Init.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Path returns the file location.
func (f *JSONFile) Path() string {
	return f.path
}

// Read decodes the whole file. A missing or unreadable file is ErrUnavailable,
// undecodable content is ErrCorrupt.
func (f *JSONFile) Read() ([]Person, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrUnavailable, f.path, err)
	}

	var people []Person
	if err := json.Unmarshal(data, &people); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrCorrupt, f.path, err)
	}
	return people, nil
}

// Write replaces the file via a sibling temp file and a rename, so a
// concurrent reader sees either the old or the new collection.
func (f *JSONFile) Write(people []Person) error {
	if people == nil {
		people = []Person{}
	}
	data, err := json.Marshal(people)
	if err != nil {
		return fmt.Errorf("%w: marshal collection: %w", ErrUnavailable, err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return fmt.Errorf("%w: create directory %s: %w", ErrUnavailable, dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+"-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrUnavailable, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %w", ErrUnavailable, tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: sync %s: %w", ErrUnavailable, tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrUnavailable, tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), filePermissions); err != nil {
		return fmt.Errorf("%w: chmod %s: %w", ErrUnavailable, tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("%w: replace %s: %w", ErrUnavailable, f.path, err)
	}
	return nil
}

// Init writes an empty array if the file does not exist yet.
func (f *JSONFile) Init() error {
	_, err := os.Stat(f.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: stat %s: %w", ErrUnavailable, f.path, err)
	}
	return f.Write(nil)
}

// Close is a no-op; the file is opened per operation.
func (f *JSONFile) Close() error {
	return nil
}
