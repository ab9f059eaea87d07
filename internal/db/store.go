package db

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vocabmaster/vocabmaster/internal/vocab"
)

// ErrCorrupted is returned alongside the default vocabulary when the data file cannot be decoded
var ErrCorrupted = errors.New("corrupted data file")

// FileStore keeps the vocabulary in a flat JSON file
type FileStore struct {
	Path string
}

// NewFileStore creates a FileStore for the given path
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the vocabulary. A missing file yields the default set; an undecodable file yields
// the default set together with ErrCorrupted.
func (s *FileStore) Load() (vocab.Vocabulary, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return vocab.Initial(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	var v vocab.Vocabulary
	if err := json.Unmarshal(data, &v); err != nil {
		return vocab.Initial(), fmt.Errorf("%w: %s: %v", ErrCorrupted, s.Path, err)
	}
	if v == nil {
		// the file contained "null"
		return vocab.Initial(), fmt.Errorf("%w: %s: empty document", ErrCorrupted, s.Path)
	}

	v.Clamp()
	return v, nil
}

// Save writes the vocabulary atomically with 4-space indentation
func (s *FileStore) Save(v vocab.Vocabulary) error {
	if v == nil {
		v = vocab.Vocabulary{}
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "    ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, ".vocab-*.json")
	if err != nil {
		return fmt.Errorf("could not save data: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("could not save data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("could not save data: %w", err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("could not save data: %w", err)
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("could not save data: %w", err)
	}

	return nil
}
