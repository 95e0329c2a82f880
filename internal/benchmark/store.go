package benchmark

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	apperrors "mergebench/internal/errors"
)

// Store records finished suites.
type Store interface {
	Save(suite Suite) error
	LoadLatest() (*Suite, error)
	LoadAll() ([]Suite, error)
}

// historyVersion is bumped when the file layout changes.
const historyVersion = 1

type historyFile struct {
	Version int     `json:"version"`
	Suites  []Suite `json:"suites"`
}

// FileStore keeps suite history in a single JSON document. Writes replace
// the file atomically.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates the parent directory of path if needed.
func NewFileStore(path string) (*FileStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &apperrors.IOFailure{Op: "create history dir", Path: dir, Err: err}
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Save(suite Suite) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	doc.Suites = append(doc.Suites, suite)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal suites: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return &apperrors.IOFailure{Op: "save history", Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return &apperrors.IOFailure{Op: "save history", Path: s.path, Err: err}
	}
	return nil
}

// LoadAll returns every suite ordered by timestamp, oldest first.
func (s *FileStore) LoadAll() ([]Suite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(doc.Suites, func(i, j int) bool {
		return doc.Suites[i].Timestamp.Before(doc.Suites[j].Timestamp)
	})
	return doc.Suites, nil
}

// LoadLatest returns the newest suite, or nil when none is recorded.
func (s *FileStore) LoadLatest() (*Suite, error) {
	suites, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(suites) == 0 {
		return nil, nil
	}
	return &suites[len(suites)-1], nil
}

func (s *FileStore) read() (historyFile, error) {
	doc := historyFile{Version: historyVersion, Suites: []Suite{}}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) || (err == nil && len(data) == 0) {
		return doc, nil
	}
	if err != nil {
		return doc, &apperrors.IOFailure{Op: "load history", Path: s.path, Err: err}
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, &apperrors.IOFailure{Op: "parse history", Path: s.path, Err: err}
	}
	if doc.Version > historyVersion {
		return doc, &apperrors.IOFailure{Op: "parse history", Path: s.path, Err: fmt.Errorf("unsupported version %d", doc.Version)}
	}
	if doc.Suites == nil {
		doc.Suites = []Suite{}
	}
	doc.Version = historyVersion
	return doc, nil
}
