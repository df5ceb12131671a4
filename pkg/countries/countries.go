// Package countries exposes the ISO 3166-1 country table used by address
// fragments. The table is static and read-only; deployments that operate a
// non-ISO country code (test countries, for example) extend a copy with
// With.
package countries

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidCode is returned when a code is not three upper-case letters.
var ErrInvalidCode = errors.New("countries: invalid alpha-3 code")

// Country is a single table entry.
type Country struct {
	Code   string `json:"code" yaml:"code"`
	Alpha2 string `json:"alpha2,omitempty" yaml:"alpha2,omitempty"`
	Name   string `json:"name" yaml:"name"`
}

// Table is an immutable, code-indexed country list.
type Table struct {
	entries []Country
	index   map[string]int
}

var iso = mustTable(iso3166)

// ISO returns the ISO 3166-1 table.
func ISO() *Table { return iso }

// NewTable builds a table, rejecting malformed or duplicate codes.
func NewTable(entries ...Country) (*Table, error) {
	t := &Table{
		entries: make([]Country, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, c := range entries {
		c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
		if !validCode(c.Code) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCode, c.Code)
		}
		if _, exists := t.index[c.Code]; exists {
			return nil, fmt.Errorf("countries: duplicate code %q", c.Code)
		}
		t.entries = append(t.entries, c)
		t.index[c.Code] = len(t.entries) - 1
	}
	sort.SliceStable(t.entries, func(i, j int) bool {
		return t.entries[i].Code < t.entries[j].Code
	})
	for i, c := range t.entries {
		t.index[c.Code] = i
	}
	return t, nil
}

func mustTable(entries []Country) *Table {
	t, err := NewTable(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// With returns a copy of t that also contains extra. An entry whose code is
// already present replaces the existing one.
func (t *Table) With(extra ...Country) (*Table, error) {
	merged := make(map[string]Country, len(t.entries)+len(extra))
	for _, c := range t.entries {
		merged[c.Code] = c
	}
	for _, c := range extra {
		merged[strings.ToUpper(strings.TrimSpace(c.Code))] = c
	}
	entries := make([]Country, 0, len(merged))
	for code, c := range merged {
		c.Code = code
		entries = append(entries, c)
	}
	return NewTable(entries...)
}

// Lookup finds a country by alpha-3 code, case-insensitively.
func (t *Table) Lookup(code string) (Country, bool) {
	if t == nil {
		return Country{}, false
	}
	i, ok := t.index[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Country{}, false
	}
	return t.entries[i], true
}

// Contains reports whether code is in the table.
func (t *Table) Contains(code string) bool {
	_, ok := t.Lookup(code)
	return ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Codes returns every alpha-3 code in sorted order.
func (t *Table) Codes() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.entries))
	for i, c := range t.entries {
		out[i] = c.Code
	}
	return out
}

// List returns a copy of the entries sorted by code.
func (t *Table) List() []Country {
	if t == nil {
		return nil
	}
	return append([]Country(nil), t.entries...)
}

func validCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}
