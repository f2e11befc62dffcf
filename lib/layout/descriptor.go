// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/wirebuf/lib/codec"
	"github.com/bureau-foundation/wirebuf/lib/schema"
)

// DescriptorVersion is the descriptor format version written by
// [Encode]. Decoders reject other versions.
const DescriptorVersion = 1

var (
	// ErrVersion is returned when a descriptor has an unsupported
	// format version.
	ErrVersion = errors.New("layout: unsupported descriptor version")

	// ErrPositionMismatch is returned when a descriptor's recorded
	// positions disagree with the canonical order of its names.
	ErrPositionMismatch = errors.New("layout: descriptor positions disagree with canonical order")
)

// Descriptor is the serialized layout of a schema.
type Descriptor struct {
	Version int     `cbor:"version"`
	Fields  []Entry `cbor:"fields"`
}

// Entry is one field of a [Descriptor].
type Entry struct {
	Name       string             `cbor:"name"`
	Position   int                `cbor:"position"`
	Definition *schema.Definition `cbor:"definition"`
}

// Describe returns the descriptor of s, fields in canonical order.
func Describe(s *schema.Schema) Descriptor {
	descriptor := Descriptor{Version: DescriptorVersion}
	for key := range s.All() {
		value, _ := s.Field(key.Name)
		descriptor.Fields = append(descriptor.Fields, Entry{
			Name:       key.Name,
			Position:   key.Position,
			Definition: schema.Describe(value),
		})
	}
	return descriptor
}

// Schema rebuilds the schema a descriptor describes. Every entry's
// position must match the canonical position of its name.
func (d Descriptor) Schema() (*schema.Schema, error) {
	if d.Version != DescriptorVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersion, d.Version)
	}

	document := make(schema.Document, len(d.Fields))
	for _, entry := range d.Fields {
		if _, duplicate := document[entry.Name]; duplicate {
			return nil, fmt.Errorf("layout: duplicate field %q in descriptor", entry.Name)
		}
		document[entry.Name] = entry.Definition
	}

	rebuilt, err := schema.FromDocument(document)
	if err != nil {
		return nil, fmt.Errorf("layout: descriptor: %w", err)
	}

	for i, key := range rebuilt.OrderedKeys() {
		entry := d.Fields[i]
		if entry.Name != key.Name || entry.Position != key.Position {
			return nil, fmt.Errorf("%w: entry %d is %q at %d, canonical is %q at %d",
				ErrPositionMismatch, i, entry.Name, entry.Position, key.Name, key.Position)
		}
	}
	return rebuilt, nil
}

// Encode returns the deterministic CBOR descriptor of s.
func Encode(s *schema.Schema) ([]byte, error) {
	data, err := codec.Marshal(Describe(s))
	if err != nil {
		return nil, fmt.Errorf("layout: encoding descriptor: %w", err)
	}
	return data, nil
}

// Decode parses a CBOR descriptor produced by [Encode].
func Decode(data []byte) (*schema.Schema, error) {
	var descriptor Descriptor
	if err := codec.Unmarshal(data, &descriptor); err != nil {
		return nil, fmt.Errorf("layout: decoding descriptor: %w", err)
	}
	return descriptor.Schema()
}
