// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema describes the shape of a wirebuf record and assigns
// every field a stable position derived from its name alone.
//
// A [Schema] maps field names to [Value]s. Value is a closed sum type
// with one variant per shape:
//
//   - [Scalar] -- string, bool, bytes, auto, any, null
//   - [Numeric] -- int32, int64, float32, float64, with a signed flag
//   - [Array] -- homogeneous elements described by one nested Value
//   - [Map] -- string, int32, or int64 keys; homogeneous values
//   - [Enum] -- an ordered set of symbol strings
//   - [Union] -- ordered candidate record schemas; exactly one must match
//
// Every variant embeds [Field], which carries the presence requirement
// (required or optional) and an optional default.
//
// # Canonical ordering
//
// [Schema.CanonicalKeys] sorts field names by their Unicode-lowercased
// form, comparing code points. Declaration order, type, and presence
// play no part, so two implementations handed the same set of names
// agree on every position without exchanging a schema identifier.
// Names that lowercase identically ("Id" and "ID") are tie-broken by
// their raw bytes, keeping the order a pure function of the name set.
// The comparison is not locale collation: lowercased names compare by
// code point, so "é" (U+00E9) sorts after "f" and "z". Peers that sort
// with a locale-aware collator disagree on positions for non-ASCII
// names.
// [Schema.OrderedKeys] and [Schema.All] pair each name with its 0-based
// rank. Nothing is cached: each call recomputes from the field map.
//
// Adding or removing a field shifts the position of every field that
// sorts after it. Callers that need positional stability across schema
// versions must treat any change to the name set as a breaking layout
// change; lib/layout detects this.
//
// # Runtime binding
//
// Type tags bind to Go values as follows: string→string, bool→bool,
// bytes→[]byte, auto and any→anything (numbers normalized to int64,
// uint64, *big.Int, or float64), null→nil,
// int32→[fixedint.Int32], int64→[fixedint.Int64], array→slice,
// map→map keyed by string, fixedint.Int32, or fixedint.Int64, enum→string,
// union→map[string]any. float32 and float64 are declared but unbound;
// values for them are rejected with [ErrUnboundType].
//
// # Definitions
//
// Schemas are authored as data literals ([Definition]) in YAML or JSONC
// and loaded with [ParseYAML], [ParseJSONC], or [ReadFile]. [New] itself
// performs no validation; loaders call [Schema.Check].
package schema
