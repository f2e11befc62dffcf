// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"slices"
	"strings"
	"testing"

	"github.com/bureau-foundation/wirebuf/lib/testutil"
)

func required(t Type) Value { return Scalar{Field: Field{Kind: Required}, Of: t} }
func optional(t Type) Value { return Scalar{Field: Field{Kind: Optional}, Of: t} }

func namesOnly(names ...string) *Schema {
	fields := make(map[string]Value, len(names))
	for _, name := range names {
		fields[name] = required(TypeString)
	}
	return New(fields)
}

func TestOrderedKeysUserRecord(t *testing.T) {
	s := New(map[string]Value{
		"UserId": Numeric{Field: Field{Kind: Required}, Of: TypeInt32, Signed: true},
		"name":   optional(TypeString),
		"Tags":   Array{Field: Field{Kind: Optional}, Items: required(TypeString)},
	})

	want := []Key{
		{Name: "name", Position: 0},
		{Name: "Tags", Position: 1},
		{Name: "UserId", Position: 2},
	}
	if got := s.OrderedKeys(); !slices.Equal(got, want) {
		t.Errorf("OrderedKeys() = %v, want %v", got, want)
	}
}

func TestCanonicalKeys(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  []string
	}{
		{name: "empty", names: nil, want: []string{}},
		{name: "single", names: []string{"only"}, want: []string{"only"}},
		{name: "case insensitive", names: []string{"b", "A", "c"}, want: []string{"A", "b", "c"}},
		{name: "mixed case words", names: []string{"Zeta", "alpha", "Beta"}, want: []string{"alpha", "Beta", "Zeta"}},
		{name: "case-only collisions", names: []string{"id", "Id", "ID"}, want: []string{"ID", "Id", "id"}},
		{name: "digits before letters", names: []string{"b", "2", "A10", "a1"}, want: []string{"2", "a1", "A10", "b"}},
		{name: "code point order beyond ASCII", names: []string{"Äpfel", "Zebra", "apfel"}, want: []string{"apfel", "Zebra", "Äpfel"}},
		{name: "empty name first", names: []string{"a", ""}, want: []string{"", "a"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := namesOnly(test.names...).CanonicalKeys()
			if !slices.Equal(got, test.want) {
				t.Errorf("CanonicalKeys() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestCanonicalKeysIgnoresTypeAndPresence(t *testing.T) {
	a := New(map[string]Value{
		"x": required(TypeString),
		"Y": optional(TypeBool),
		"z": Enum{Field: Field{Kind: Required}, Symbols: []string{"on"}},
	})
	b := New(map[string]Value{
		"z": optional(TypeBytes),
		"x": Numeric{Field: Field{Kind: Optional}, Of: TypeInt64},
		"Y": required(TypeNull),
	})
	if !slices.Equal(a.CanonicalKeys(), b.CanonicalKeys()) {
		t.Errorf("orderings differ: %q vs %q", a.CanonicalKeys(), b.CanonicalKeys())
	}
}

func TestCanonicalKeysIsPermutation(t *testing.T) {
	names := []string{"delta", "Alpha", "charlie", "Bravo", "echo", "ALPHA2"}
	got := namesOnly(names...).CanonicalKeys()
	if len(got) != len(names) {
		t.Fatalf("len = %d, want %d", len(got), len(names))
	}
	sorted := slices.Clone(got)
	slices.Sort(sorted)
	expected := slices.Clone(names)
	slices.Sort(expected)
	if !slices.Equal(sorted, expected) {
		t.Errorf("CanonicalKeys() = %q is not a permutation of %q", got, names)
	}
	for i := 1; i < len(got); i++ {
		if CompareNames(got[i-1], got[i]) >= 0 {
			t.Errorf("keys %q and %q out of order", got[i-1], got[i])
		}
	}
}

func TestCanonicalKeysMatchesPairwiseOrder(t *testing.T) {
	var names []string
	for i := range 50 {
		name := testutil.UniqueID("field")
		if i%3 == 0 {
			name = strings.ToUpper(name)
		}
		names = append(names, name)
	}
	s := namesOnly(names...)

	keys := s.CanonicalKeys()
	for i := range keys {
		for j := i + 1; j < len(keys); j++ {
			if CompareNames(keys[i], keys[j]) >= 0 {
				t.Fatalf("%q at %d sorts after %q at %d", keys[i], i, keys[j], j)
			}
		}
	}
	if !slices.Equal(keys, s.CanonicalKeys()) {
		t.Error("CanonicalKeys is not stable across calls")
	}
}

func TestCanonicalKeysReturnsFreshSlice(t *testing.T) {
	s := namesOnly("a", "b")
	first := s.CanonicalKeys()
	first[0] = "mutated"
	if got := s.CanonicalKeys(); got[0] != "a" {
		t.Errorf("mutation leaked into schema: %q", got)
	}
}

func TestNewCopiesFields(t *testing.T) {
	fields := map[string]Value{"a": required(TypeString)}
	s := New(fields)
	fields["b"] = required(TypeString)
	delete(fields, "a")

	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if _, ok := s.Field("a"); !ok {
		t.Error("field a missing after caller mutated its map")
	}
}

func TestOrderedKeysPositionsAreContiguous(t *testing.T) {
	keys := namesOnly("q", "W", "e", "R", "t").OrderedKeys()
	for i, key := range keys {
		if key.Position != i {
			t.Errorf("keys[%d].Position = %d", i, key.Position)
		}
	}
}

func TestAllIsRestartable(t *testing.T) {
	s := namesOnly("b", "A", "c")
	want := s.OrderedKeys()

	for pass := range 3 {
		var got []Key
		for key := range s.All() {
			got = append(got, key)
		}
		if !slices.Equal(got, want) {
			t.Errorf("pass %d: All() = %v, want %v", pass, got, want)
		}
	}
}

func TestAllStopsEarly(t *testing.T) {
	s := namesOnly("a", "b", "c", "d")
	var seen []string
	for key := range s.All() {
		seen = append(seen, key.Name)
		if len(seen) == 2 {
			break
		}
	}
	if !slices.Equal(seen, []string{"a", "b"}) {
		t.Errorf("seen = %q, want [a b]", seen)
	}
}

func TestAllOnEmptySchema(t *testing.T) {
	for key := range New(nil).All() {
		t.Errorf("unexpected key %v", key)
	}
}

func TestPosition(t *testing.T) {
	s := namesOnly("UserId", "name", "Tags")
	tests := []struct {
		name     string
		position int
		ok       bool
	}{
		{"name", 0, true},
		{"Tags", 1, true},
		{"UserId", 2, true},
		{"userid", 0, false},
	}
	for _, test := range tests {
		position, ok := s.Position(test.name)
		if position != test.position || ok != test.ok {
			t.Errorf("Position(%q) = %d, %v; want %d, %v", test.name, position, ok, test.position, test.ok)
		}
	}
}

func TestCaseChangeKeepsRank(t *testing.T) {
	for _, name := range []string{"B", "b"} {
		s := namesOnly("a", name, "c")
		position, ok := s.Position(name)
		if !ok || position != 1 {
			t.Errorf("Position(%q) in {a, %s, c} = %d, %v; want 1, true", name, name, position, ok)
		}
		if got := s.CanonicalKeys(); !slices.Equal(got, []string{"a", name, "c"}) {
			t.Errorf("CanonicalKeys() = %q", got)
		}
	}
}

func TestCompareNames(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"a", "B", -1},
		{"B", "a", 1},
		{"Id", "ID", 1},
		{"same", "same", 0},
		// Code point order, not locale collation.
		{"é", "f", 1},
		{"É", "z", 1},
	}
	for _, test := range tests {
		if got := CompareNames(test.a, test.b); got != test.want {
			t.Errorf("CompareNames(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}
