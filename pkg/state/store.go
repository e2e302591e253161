// Package state persists the pipeline cursor state between passes.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pkgz/lgr"

	"github.com/grimdealz/dealscout/pkg/domain"
)

// Store reads and writes the pipeline state as a single JSON document.
// The orchestrator is the sole writer per process, so no file locking is used.
type Store struct {
	path string
}

// New creates a store backed by the given file path
func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted state. A missing file is not an error, it returns
// an empty state so the first run seeds cursors from scratch.
func (s *Store) Load() (*domain.PipelineState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			lgr.Printf("[INFO] no state file at %s, starting with empty state", s.path)
			return domain.NewPipelineState(), nil
		}
		return nil, fmt.Errorf("read state file %s: %w", s.path, err)
	}

	var st domain.PipelineState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parse state file %s: %w", s.path, err)
	}
	if st.Sources == nil {
		st.Sources = map[string]domain.SourceCursor{}
	}
	return &st, nil
}

// Save writes the state atomically: marshal to a temp file in the same
// directory, then rename over the target. A reader never observes a
// half-written state.
func (s *Store) Save(st *domain.PipelineState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp state file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace state file %s: %w", s.path, err)
	}
	return nil
}
