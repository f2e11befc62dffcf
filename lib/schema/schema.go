// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"iter"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Schema is an immutable mapping from field names to field descriptions.
type Schema struct {
	fields map[string]Value
}

// Key is a field name paired with its canonical 0-based position.
type Key struct {
	Name     string
	Position int
}

// New returns a schema over a copy of fields. It performs no
// validation; see [Schema.Check].
func New(fields map[string]Value) *Schema {
	return &Schema{fields: maps.Clone(fields)}
}

// Len returns the number of fields.
func (s *Schema) Len() int { return len(s.fields) }

// Field returns the description of the named field.
func (s *Schema) Field(name string) (Value, bool) {
	value, ok := s.fields[name]
	return value, ok
}

// Fields returns a copy of the field map.
func (s *Schema) Fields() map[string]Value {
	return maps.Clone(s.fields)
}

// CanonicalKeys returns every field name sorted by lowercased form,
// with the raw name as a tie-breaker.
func (s *Schema) CanonicalKeys() []string {
	type folded struct {
		name  string
		lower string
	}
	caser := cases.Lower(language.Und)
	entries := make([]folded, 0, len(s.fields))
	for name := range s.fields {
		entries = append(entries, folded{name: name, lower: caser.String(name)})
	}
	slices.SortFunc(entries, func(a, b folded) int {
		if c := strings.Compare(a.lower, b.lower); c != 0 {
			return c
		}
		return strings.Compare(a.name, b.name)
	})

	keys := make([]string, len(entries))
	for i, entry := range entries {
		keys[i] = entry.name
	}
	return keys
}

// OrderedKeys pairs each canonical key with its position.
func (s *Schema) OrderedKeys() []Key {
	names := s.CanonicalKeys()
	keys := make([]Key, len(names))
	for i, name := range names {
		keys[i] = Key{Name: name, Position: i}
	}
	return keys
}

// All iterates the ordered keys. Each traversal recomputes the order, so
// the sequence may be ranged over any number of times.
func (s *Schema) All() iter.Seq[Key] {
	return func(yield func(Key) bool) {
		for _, key := range s.OrderedKeys() {
			if !yield(key) {
				return
			}
		}
	}
}

// Position returns the canonical position of the named field.
func (s *Schema) Position(name string) (int, bool) {
	if _, ok := s.fields[name]; !ok {
		return 0, false
	}
	return slices.Index(s.CanonicalKeys(), name), true
}

// CompareNames orders two field names the way [Schema.CanonicalKeys]
// does.
func CompareNames(a, b string) int {
	caser := cases.Lower(language.Und)
	if c := strings.Compare(caser.String(a), caser.String(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
