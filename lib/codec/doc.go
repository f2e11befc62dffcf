// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides wirebuf's standard CBOR encoding configuration.
//
// Everything wirebuf writes in binary form goes through this package:
// fixed-width integer values (lib/fixedint), schema layout descriptors
// (lib/layout), and the compressed descriptor files of lib/schemastore.
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// same logical value always produces identical bytes, which is what
// makes descriptor fingerprints comparable across processes.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For streams (the wirebuf cbor commands read and write CBOR sequences
// this way):
//
//	encoder := codec.NewEncoder(w)
//	decoder := codec.NewDecoder(r)
//
// Record data whose maps may carry integer keys is decoded with
// [UnmarshalGeneric], which produces map[any]any for untyped maps.
//
// # Struct Tag Rules
//
//   - `cbor` tag: the type is only ever serialized as CBOR. Layout
//     descriptors use this.
//   - `json` tag: the type is serialized as both JSON and CBOR.
//     fxamacker/cbor v2 falls back to `json` tags when `cbor` tags are
//     absent. Schema definitions use this so the same struct reads
//     JSONC files and CBOR descriptors.
//
// Never put both `cbor` and `json` tags on the same field.
package codec
