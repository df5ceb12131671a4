// Package fieldpath models the stable identifier of a single answer slot in a
// declaration form. A Path is an ordered list of segments; the dotted string
// form only exists at serialization boundaries and is produced by String and
// consumed by Parse, which are exact inverses of each other.
//
// Segments that themselves contain a dot or a backslash are escaped with a
// backslash, so `Path{"child", "a.b"}` canonicalises to `child.a\.b`. Runs of
// four or more underscores are escaped too, so the canonical form never holds
// an unescaped legacy `____` separator and ParseLegacy reads it back intact.
// The leading segment `$` marks a path that is relative to the prefix a form
// fragment is instantiated under (see Rebase).
package fieldpath

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	separator = '.'
	escape    = '\\'

	// Relative is the marker segment for fragment-relative paths.
	Relative = "$"

	// legacySeparator is the compound-key separator used by older form
	// configurations that concatenated segments into a single identifier.
	legacySeparator = "____"
)

var (
	// ErrEmptyPath is returned when parsing an empty or blank path.
	ErrEmptyPath = errors.New("fieldpath: empty path")
	// ErrEmptySegment is returned when a path contains an empty segment.
	ErrEmptySegment = errors.New("fieldpath: empty segment")
)

// Path is a structured field path.
type Path []string

// New builds a path from raw segments without escaping or validation.
func New(segments ...string) Path {
	return append(Path(nil), segments...)
}

// Parse converts the canonical string form into a Path.
func Parse(raw string) (Path, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, ErrEmptyPath
	}

	var (
		segments []string
		current  strings.Builder
		escaped  bool
	)
	for _, r := range trimmed {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == escape:
			escaped = true
		case r == separator:
			if current.Len() == 0 {
				return nil, fmt.Errorf("%w in %q", ErrEmptySegment, raw)
			}
			segments = append(segments, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if escaped {
		return nil, fmt.Errorf("fieldpath: dangling escape in %q", raw)
	}
	if current.Len() == 0 {
		return nil, fmt.Errorf("%w in %q", ErrEmptySegment, raw)
	}
	segments = append(segments, current.String())
	return Path(segments), nil
}

// MustParse is Parse for static configuration; it panics on error.
func MustParse(raw string) Path {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseLegacy accepts both the canonical form and identifiers built with the
// `____` compound separator, e.g. `mother____address` becomes mother.address.
// Escaped underscores never split.
func ParseLegacy(raw string) (Path, error) {
	parts := splitLegacy(raw)
	if len(parts) == 1 {
		return Parse(raw)
	}
	var out Path
	for _, part := range parts {
		sub, err := Parse(part)
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}
	return out, nil
}

// splitLegacy cuts raw at every unescaped `____`, leaving escapes in place
// for Parse.
func splitLegacy(raw string) []string {
	var (
		parts   []string
		start   int
		escaped bool
	)
	for i := 0; i < len(raw); i++ {
		switch {
		case escaped:
			escaped = false
		case raw[i] == escape:
			escaped = true
		case strings.HasPrefix(raw[i:], legacySeparator):
			parts = append(parts, raw[start:i])
			i += len(legacySeparator) - 1
			start = i + 1
		}
	}
	return append(parts, raw[start:])
}

// String returns the canonical dotted representation.
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for i, segment := range p {
		if i > 0 {
			b.WriteByte(separator)
		}
		writeSegment(&b, segment)
	}
	return b.String()
}

func writeSegment(b *strings.Builder, segment string) {
	for i := 0; i < len(segment); {
		if segment[i] == '_' {
			end := i
			for end < len(segment) && segment[end] == '_' {
				end++
			}
			if end-i >= len(legacySeparator) {
				for range end - i {
					b.WriteString(`\_`)
				}
			} else {
				b.WriteString(segment[i:end])
			}
			i = end
			continue
		}
		if segment[i] == separator || segment[i] == escape {
			b.WriteByte(escape)
		}
		b.WriteByte(segment[i])
		i++
	}
}

// IsZero reports whether the path has no segments.
func (p Path) IsZero() bool { return len(p) == 0 }

// IsRelative reports whether the path starts with the relative marker.
func (p Path) IsRelative() bool {
	return len(p) > 0 && p[0] == Relative
}

// Append returns a new path with the extra segments appended.
func (p Path) Append(segments ...string) Path {
	out := make(Path, 0, len(p)+len(segments))
	out = append(out, p...)
	return append(out, segments...)
}

// Join returns a new path made of p followed by other.
func (p Path) Join(other Path) Path {
	return p.Append(other...)
}

// Parent returns the path without its last segment.
func (p Path) Parent() Path {
	if len(p) <= 1 {
		return nil
	}
	return append(Path(nil), p[:len(p)-1]...)
}

// Last returns the final segment.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Equal compares paths segment by segment.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is an ancestor of (or equal to) p.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	return p[:len(prefix)].Equal(prefix)
}

// Rebase resolves a relative path against prefix. Absolute paths are
// returned unchanged.
func (p Path) Rebase(prefix Path) Path {
	if !p.IsRelative() {
		return p
	}
	return prefix.Join(p[1:])
}

// Clone returns an independent copy.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	return append(Path(nil), p...)
}

// MarshalText implements encoding.TextMarshaler so paths serialise as their
// canonical string in JSON and YAML documents.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Path) UnmarshalText(text []byte) error {
	parsed, err := ParseLegacy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalYAML renders the canonical string.
func (p Path) MarshalYAML() (any, error) {
	return p.String(), nil
}

// UnmarshalYAML accepts a scalar path string.
func (p *Path) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("fieldpath: line %d: expected a string path", value.Line)
	}
	return p.UnmarshalText([]byte(value.Value))
}
