// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package layout serializes, identifies, and compares the positional
// layout of a wirebuf schema.
//
// A [Descriptor] is the CBOR form of a schema: one [Entry] per field in
// canonical order, each carrying its name, position, and definition.
// Descriptors are encoded with Core Deterministic Encoding (lib/codec),
// so equal schemas always encode to equal bytes. [Decode] rebuilds the
// schema and rejects descriptors whose recorded positions disagree with
// the canonical order, which catches descriptors written by a producer
// that ordered fields differently.
//
// Two fingerprints are defined, both BLAKE3 keyed hashes with distinct
// domain keys:
//
//   - [Fingerprint] covers the whole descriptor. It changes when any
//     type, presence, or default changes.
//   - [KeySetFingerprint] covers only the canonical key sequence. Two
//     schemas with equal key-set fingerprints assign identical positions
//     to every field, whatever their types.
//
// [Compare] reports how positions and types moved between two versions
// of a schema. Because positions derive from the name set alone, adding
// or removing one field moves every field that sorts after it; [Diff]
// makes that visible and [Diff.Breaking] summarizes it.
package layout
