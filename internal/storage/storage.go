// Package storage locates and reads/writes the contacts document on disk.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jacksmith/pb/internal/model"
)

// DefaultDataFile is the contacts document path, relative to the working directory.
const DefaultDataFile = "data/contacts.json"

// Storage provides access to a single contacts document.
type Storage struct {
	path string // path to the contacts JSON file
}

// Open returns a Storage for the document at path, creating the containing
// directory if it does not exist. The document itself is not created until
// the first Save.
func Open(path string) (*Storage, error) {
	if path == "" {
		path = DefaultDataFile
	}

	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a contacts file", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}

	return &Storage{path: path}, nil
}

// Path returns the path to the contacts document.
func (s *Storage) Path() string {
	return s.path
}

// Dir returns the directory holding the contacts document.
func (s *Storage) Dir() string {
	return filepath.Dir(s.path)
}

// Exists reports whether the contacts document has been written.
func (s *Storage) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

// Load reads the contacts document.
// Entries come back in ascending id order; skipped lists keys that are not
// valid contact ids. A missing document returns an error matching
// os.ErrNotExist and an unparseable one matches model.ErrCorruptDocument.
func (s *Storage) Load() (entries []model.Entry, skipped []string, err error) {
	return model.LoadContacts(s.path)
}

// Save replaces the contacts document with entries, in the order given.
func (s *Storage) Save(entries []model.Entry) error {
	return model.SaveContacts(s.path, entries)
}
