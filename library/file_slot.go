package library

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FileSlot stores the collection as a JSON array in a single file.
type FileSlot struct {
	path string
}

func NewFileSlot(path string) *FileSlot {
	return &FileSlot{path: path}
}

// LoadAll reads the file. Returns an empty collection if it doesn't exist.
func (s *FileSlot) LoadAll() ([]Book, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Book{}, nil
	}
	if err != nil {
		return nil, errors.WithStack(StoreUnavailable(s.path, err))
	}
	return decodeBooks(s.path, data)
}

// SaveAll writes to a temporary file in the same directory and renames it over
// the target, so readers see either the old or the new collection.
func (s *FileSlot) SaveAll(books []Book) error {
	data, err := encodeBooks(books)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WithStack(StoreUnavailable(s.path, err))
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.WithStack(StoreUnavailable(s.path, err))
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.WithStack(StoreUnavailable(s.path, err))
	}
	if err := tmp.Close(); err != nil {
		return errors.WithStack(StoreUnavailable(s.path, err))
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.WithStack(StoreUnavailable(s.path, err))
	}
	return nil
}
