// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

import (
	"bytes"
	"reflect"

	"github.com/bureau-foundation/wirebuf/lib/codec"
	"github.com/bureau-foundation/wirebuf/lib/schema"
)

// Diff describes how the layout changed between two versions of a
// schema. Name lists are in canonical order.
type Diff struct {
	// Added names fields present only in the new schema.
	Added []string

	// Removed names fields present only in the old schema.
	Removed []string

	// Moved lists fields present in both whose position changed.
	Moved []Move

	// Retyped names fields present in both whose type tag changed.
	Retyped []string

	// Changed names fields present in both whose type tag is the same
	// but whose presence, default, or nested definition differs.
	Changed []string
}

// Move is a field whose canonical position changed.
type Move struct {
	Name string `json:"name"`
	From int    `json:"from"`
	To   int    `json:"to"`
}

// Breaking reports whether a record laid out by the old schema can be
// misread by the new one: any field was added, removed, moved, or
// retyped.
func (d *Diff) Breaking() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.Moved) > 0 || len(d.Retyped) > 0
}

// Empty reports whether the schemas are identical.
func (d *Diff) Empty() bool {
	return !d.Breaking() && len(d.Changed) == 0
}

// Compare computes the layout differences from previous to current.
func Compare(previous, current *schema.Schema) Diff {
	var diff Diff

	oldPositions := positions(previous)
	newPositions := positions(current)

	for _, key := range previous.OrderedKeys() {
		if _, ok := newPositions[key.Name]; !ok {
			diff.Removed = append(diff.Removed, key.Name)
		}
	}

	for _, key := range current.OrderedKeys() {
		from, ok := oldPositions[key.Name]
		if !ok {
			diff.Added = append(diff.Added, key.Name)
			continue
		}
		if from != key.Position {
			diff.Moved = append(diff.Moved, Move{Name: key.Name, From: from, To: key.Position})
		}

		before, _ := previous.Field(key.Name)
		after, _ := current.Field(key.Name)
		switch {
		case before.Type() != after.Type():
			diff.Retyped = append(diff.Retyped, key.Name)
		case !sameDefinition(before, after):
			diff.Changed = append(diff.Changed, key.Name)
		}
	}
	return diff
}

// sameDefinition compares the encoded definitions of two values, so
// defaults that differ only in their Go representation compare equal.
func sameDefinition(a, b schema.Value) bool {
	encodedA, errA := codec.Marshal(schema.Describe(a))
	encodedB, errB := codec.Marshal(schema.Describe(b))
	if errA != nil || errB != nil {
		return reflect.DeepEqual(schema.Describe(a), schema.Describe(b))
	}
	return bytes.Equal(encodedA, encodedB)
}

func positions(s *schema.Schema) map[string]int {
	result := make(map[string]int, s.Len())
	for key := range s.All() {
		result[key.Name] = key.Position
	}
	return result
}
