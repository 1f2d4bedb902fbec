package graph

import (
	"sync"
	"sync/atomic"
)

// Store holds the current competency graph snapshot. Loads are rare and
// serialized; readers take Snapshot() once and run lock-free against it.
// A load either commits a fully validated snapshot or leaves the previous
// one untouched — readers never observe a partially loaded graph.
type Store struct {
	loadMu sync.Mutex
	snap   atomic.Pointer[Snapshot]
}

// NewStore creates a Store with an empty snapshot.
func NewStore() *Store {
	s := &Store{}
	s.snap.Store(emptySnapshot())
	return s
}

// Snapshot returns the current snapshot. The returned snapshot is immutable
// and remains consistent for as long as the caller holds it, even across
// concurrent loads.
func (s *Store) Snapshot() *Snapshot {
	return s.snap.Load()
}

// Load merges a fact batch into the store. The batch is combined with the
// current snapshot's facts, revalidated as a whole, and swapped in
// atomically. On any schema violation the previous snapshot stays current
// and *ErrSchemaViolation is returned.
func (s *Store) Load(batch Facts) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	cur := s.snap.Load().facts()
	merged := Facts{
		Levels:        concat(cur.Levels, batch.Levels),
		Skills:        concat(cur.Skills, batch.Skills),
		Attributes:    concat(cur.Attributes, batch.Attributes),
		SkillLevels:   concat(cur.SkillLevels, batch.SkillLevels),
		Roles:         concat(cur.Roles, batch.Roles),
		Prerequisites: concat(cur.Prerequisites, batch.Prerequisites),
		Complements:   concat(cur.Complements, batch.Complements),
	}

	next, err := buildSnapshot(merged)
	if err != nil {
		return err
	}
	s.snap.Store(next)
	return nil
}

// Replace discards the current snapshot and installs one built from the
// batch alone. Used for full ontology refreshes.
func (s *Store) Replace(batch Facts) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	next, err := buildSnapshot(batch)
	if err != nil {
		return err
	}
	s.snap.Store(next)
	return nil
}

func concat[T any](a, b []T) []T {
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
