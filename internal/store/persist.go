package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wesen/mlcd/pkg/graphmodel"
)

// MarshalJSON encodes the current diagram as an indented JSON document.
func (s *Store) MarshalJSON() ([]byte, error) {
	return graphmodel.EncodeDocument(s.Document())
}

// LoadJSON replaces the diagram with the decoded document. Malformed
// input, missing node/edge arrays and invalid group hierarchies are
// rejected and leave the store untouched.
func (s *Store) LoadJSON(data []byte) error {
	doc, err := graphmodel.DecodeDocument(data)
	if err != nil {
		return fmt.Errorf("load diagram: %w", err)
	}
	s.SetDiagram(doc)
	return nil
}

// SaveFile writes the diagram to path, creating parent directories.
func (s *Store) SaveFile(path string) error {
	data, err := s.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode diagram: %w", err)
	}
	return writeFileAtomic(path, data)
}

// LoadFile reads and installs the diagram at path.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read diagram: %w", err)
	}
	return s.LoadJSON(data)
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".mlcd-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
