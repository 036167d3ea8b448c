// Package store holds the session dataset: the records loaded from the last
// accepted upload plus everything derived from them at load time. One dataset
// per process; a reload replaces it atomically.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/heyyrintu/mis-lifelong/internal/model"
)

// ErrNotLoaded is returned by readers before the first successful load.
var ErrNotLoaded = errors.New("no dataset loaded")

// Dataset is one loaded snapshot. It is immutable after Replace; readers get
// the snapshot pointer and never mutate through it.
type Dataset struct {
	Records    []*model.Record
	Hierarchy  *model.WarehouseHierarchy
	LoadReport model.LoadReport
	SourceName string
	LoadedAt   time.Time
}

// Store guards the current dataset snapshot.
type Store struct {
	mu      sync.RWMutex
	current *Dataset
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Replace swaps in a freshly loaded dataset.
func (s *Store) Replace(d *Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.LoadedAt = time.Now()
	s.current = d
}

// Dataset returns the current snapshot, or ErrNotLoaded before the first load.
func (s *Store) Dataset() (*Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, ErrNotLoaded
	}
	return s.current, nil
}

// Records returns the current record slice, or ErrNotLoaded.
func (s *Store) Records() ([]*model.Record, error) {
	d, err := s.Dataset()
	if err != nil {
		return nil, err
	}
	return d.Records, nil
}

// Loaded reports whether a dataset is present.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// Clear drops the current dataset.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// Count returns the number of loaded records, 0 before the first load.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return 0
	}
	return len(s.current.Records)
}
