// Package valuestore holds the answers of one declaration, keyed by field
// path. The store has a single logical writer (the input handler) and hands
// out immutable snapshots for resolution passes, so a pass is never affected
// by writes that happen while it runs.
package valuestore

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formcond/pkg/fieldpath"
)

// Store is the mutable answer set of a declaration. It is safe for
// concurrent use.
type Store struct {
	mu       sync.RWMutex
	id       uuid.UUID
	values   map[string]any
	revision uint64
	now      func() time.Time
	updated  time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithID pins the declaration id instead of generating one.
func WithID(id uuid.UUID) Option {
	return func(s *Store) {
		if id != uuid.Nil {
			s.id = id
		}
	}
}

// WithClock overrides the clock used for the last-updated timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New returns an empty store with a fresh declaration id.
func New(options ...Option) *Store {
	s := &Store{
		id:     uuid.New(),
		values: make(map[string]any),
		now:    time.Now,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// FromMap builds a store from a map keyed by canonical (or legacy) path
// strings.
func FromMap(values map[string]any, options ...Option) (*Store, error) {
	s := New(options...)
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		path, err := fieldpath.ParseLegacy(key)
		if err != nil {
			return nil, fmt.Errorf("valuestore: key %q: %w", key, err)
		}
		if err := s.Set(path, values[key]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// FromJSON decodes a JSON object of path -> value pairs.
func FromJSON(data []byte, options ...Option) (*Store, error) {
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("valuestore: decode: %w", err)
	}
	return FromMap(values, options...)
}

// ID returns the declaration id.
func (s *Store) ID() uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

// Revision increases on every successful mutation.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// UpdatedAt returns the time of the last mutation.
func (s *Store) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updated
}

// Get looks up a value. See lookup for how nested values are reached.
func (s *Store) Get(path fieldpath.Path) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lookup(s.values, path)
}

// Set writes a value. Setting nil is the same as Unset.
func (s *Store) Set(path fieldpath.Path, value any) error {
	if path.IsZero() {
		return fmt.Errorf("valuestore: %w", fieldpath.ErrEmptyPath)
	}
	if path.IsRelative() {
		return fmt.Errorf("valuestore: relative path %q cannot hold a value", path)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == nil {
		delete(s.values, path.String())
	} else {
		s.values[path.String()] = deepCopy(value)
	}
	s.touch()
	return nil
}

// Unset clears the answer at path.
func (s *Store) Unset(path fieldpath.Path) error {
	return s.Set(path, nil)
}

// Prefill writes each value whose path has no answer yet and reports how
// many were written.
func (s *Store) Prefill(values map[string]any) (int, error) {
	type entry struct {
		path  fieldpath.Path
		value any
	}
	entries := make([]entry, 0, len(values))
	for key, value := range values {
		path, err := fieldpath.ParseLegacy(key)
		if err != nil {
			return 0, fmt.Errorf("valuestore: prefill key %q: %w", key, err)
		}
		if value == nil {
			continue
		}
		entries = append(entries, entry{path: path, value: value})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	written := 0
	for _, e := range entries {
		if _, ok := lookup(s.values, e.path); ok {
			continue
		}
		s.values[e.path.String()] = deepCopy(e.value)
		written++
	}
	if written > 0 {
		s.touch()
	}
	return written, nil
}

// Snapshot returns an immutable copy of the current answers.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		id:       s.id,
		revision: s.revision,
		values:   cloneValues(s.values),
	}
}

func (s *Store) touch() {
	s.revision++
	s.updated = s.now()
}
