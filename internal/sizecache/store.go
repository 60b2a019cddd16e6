package sizecache

import (
	"sort"
	"time"
)

// Entry is the cached aggregate size of one directory.
// Size is valid only while the directory's mtime equals ModTime exactly.
type Entry struct {
	Path    string
	Size    uint64
	ModTime time.Time
}

// Fresh reports whether the entry can be trusted for a directory whose
// current modification time is mt.
func (e Entry) Fresh(mt time.Time) bool {
	return e.ModTime.Equal(mt)
}

// Store maps canonical absolute directory paths to cache entries.
// Store is not safe for concurrent use; Cache serializes access to it.
type Store struct {
	entries map[string]Entry
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{entries: make(map[string]Entry)}
}

// Get returns the entry for path.
func (s *Store) Get(path string) (Entry, bool) {
	e, ok := s.entries[path]
	return e, ok
}

// Put inserts or replaces the entry for e.Path.
func (s *Store) Put(e Entry) {
	s.entries[e.Path] = e
}

// Delete removes the entry for path, if any.
func (s *Store) Delete(path string) bool {
	if _, ok := s.entries[path]; !ok {
		return false
	}
	delete(s.entries, path)
	return true
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Entries returns all entries sorted by path.
func (s *Store) Entries() []Entry {
	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out
}

// TotalBytes sums the cached sizes of all entries. Nested directories are
// counted once per entry, so the total overlaps.
func (s *Store) TotalBytes() uint64 {
	var total uint64
	for _, e := range s.entries {
		total += e.Size
	}
	return total
}

// Prune removes every entry whose path no longer exists and returns the
// number of entries removed.
func (s *Store) Prune(exists func(path string) bool) int {
	removed := 0
	for path := range s.entries {
		if !exists(path) {
			delete(s.entries, path)
			removed++
		}
	}
	return removed
}

// Clone returns a deep copy of the store.
func (s *Store) Clone() *Store {
	c := &Store{entries: make(map[string]Entry, len(s.entries))}
	for k, v := range s.entries {
		c.entries[k] = v
	}
	return c
}
