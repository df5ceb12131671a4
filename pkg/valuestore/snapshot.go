package valuestore

import (
	"encoding/json"
	"sort"

	"github.com/google/uuid"

	"github.com/goliatone/go-formcond/pkg/fieldpath"
)

// Snapshot is a read-only view of a store at one revision. The zero value is
// an empty snapshot.
type Snapshot struct {
	id       uuid.UUID
	revision uint64
	values   map[string]any
}

// ID returns the declaration id of the originating store.
func (s Snapshot) ID() uuid.UUID { return s.id }

// Revision returns the store revision the snapshot was taken at.
func (s Snapshot) Revision() uint64 { return s.revision }

// Len returns the number of stored answers.
func (s Snapshot) Len() int { return len(s.values) }

// Get looks up a value.
func (s Snapshot) Get(path fieldpath.Path) (any, bool) {
	return lookup(s.values, path)
}

// Keys returns the canonical keys in sorted order.
func (s Snapshot) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a deep copy of the answers keyed by canonical path.
func (s Snapshot) Map() map[string]any {
	return cloneValues(s.values)
}

// MarshalJSON encodes the answers as a flat object.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	if s.values == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.values)
}

// lookup prefers the exact key, then walks nested maps stored under ancestor
// keys from the longest to the shortest. An answer stored as
// {"child.address": {"country": "FAR"}} is therefore reachable as
// child.address.country.
func lookup(values map[string]any, path fieldpath.Path) (any, bool) {
	if len(values) == 0 || path.IsZero() {
		return nil, false
	}
	if v, ok := values[path.String()]; ok {
		return v, true
	}
	for i := len(path) - 1; i >= 1; i-- {
		root, ok := values[path[:i].String()]
		if !ok {
			continue
		}
		if v, ok := walkNested(root, path[i:]); ok {
			return v, true
		}
	}
	return nil, false
}

func walkNested(current any, rest []string) (any, bool) {
	for _, segment := range rest {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case map[string]string:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		default:
			return nil, false
		}
	}
	return current, true
}

func cloneValues(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case map[string]string:
		clone := make(map[string]string, len(typed))
		for k, v := range typed {
			clone[k] = v
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	case []string:
		return append([]string(nil), typed...)
	default:
		return typed
	}
}
