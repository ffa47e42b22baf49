package hours

import (
	"context"
	"sync/atomic"
)

// Store keeps the table in use. Reloads swap the pointer, readers never see
// a half-built table.
type Store struct {
	source  Source
	current atomic.Pointer[Table]
}

// NewStore creates a new store and performs the initial load
func NewStore(ctx context.Context, source Source) (*Store, error) {
	s := &Store{source: source}
	if _, err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Table returns the current table
func (s *Store) Table() *Table {
	return s.current.Load()
}

func (s *Store) Source() Source {
	return s.source
}

// Reload loads a new table from the source. On failure the previous table stays in place.
func (s *Store) Reload(ctx context.Context) (*Table, error) {
	t, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.current.Store(t)
	return t, nil
}
