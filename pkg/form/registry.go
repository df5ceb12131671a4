package form

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrVersionNotFound is returned for an unknown version id.
	ErrVersionNotFound = errors.New("form: version not found")
	// ErrVersionExists is returned when registering an id twice.
	ErrVersionExists = errors.New("form: version already registered")
	// ErrNoActiveVersion is returned when an event type has no active version.
	ErrNoActiveVersion = errors.New("form: no active version")
)

// Registry stores form versions and tracks the active one per event type.
// Versions are copied in and out, so callers can never mutate a stored
// version, active or not.
type Registry struct {
	mu       sync.RWMutex
	versions map[string]*Version
	order    []string
	active   map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		versions: make(map[string]*Version),
		active:   make(map[string]string),
	}
}

// Register stores an inactive copy of v. A version flagged Active is stored
// inactive; use Load or Activate to publish it.
func (r *Registry) Register(v *Version) error {
	if v == nil || v.ID == "" {
		return fmt.Errorf("form: register: %w", ErrInvalidField)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.versions[v.ID]; exists {
		return fmt.Errorf("%w: %q", ErrVersionExists, v.ID)
	}
	clone := v.Clone()
	clone.Active = false
	r.versions[v.ID] = clone
	r.order = append(r.order, v.ID)
	return nil
}

// Activate validates the version and makes it the active version of its
// event type. A version that fails validation is never activated.
func (r *Registry) Activate(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.versions[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrVersionNotFound, id)
	}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("form: activate %s: %w", id, err)
	}
	if prev, ok := r.active[v.EventType]; ok && prev != id {
		r.versions[prev].Active = false
	}
	v.Active = true
	r.active[v.EventType] = id
	return nil
}

// Load registers every version and activates the ones flagged Active.
func (r *Registry) Load(versions ...*Version) error {
	for _, v := range versions {
		if err := r.Register(v); err != nil {
			return err
		}
		if v.Active {
			if err := r.Activate(v.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// Version returns a copy of the version with the given id.
func (r *Registry) Version(id string) (*Version, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.versions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrVersionNotFound, id)
	}
	return v.Clone(), nil
}

// Active returns a copy of the active version for eventType.
func (r *Registry) Active(eventType string) (*Version, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.active[eventType]
	if !ok {
		return nil, fmt.Errorf("%w for %q", ErrNoActiveVersion, eventType)
	}
	return r.versions[id].Clone(), nil
}

// Versions lists registered ids in registration order.
func (r *Registry) Versions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// EventTypes lists event types that have an active version, sorted.
func (r *Registry) EventTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.active))
	for eventType := range r.active {
		out = append(out, eventType)
	}
	sort.Strings(out)
	return out
}
