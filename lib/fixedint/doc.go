// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package fixedint provides the two fixed-width integer value types used
// to represent integer fields of a wirebuf record.
//
// The two types deliberately follow different overflow policies, and
// neither policy is an error:
//
//   - [Int32] wraps. Every input is truncated to 32 bits exactly as
//     two's-complement hardware would, and arithmetic wraps modulo 2^32.
//   - [Int64] saturates. Construction clamps the input to the signed
//     64-bit range: anything below -2^63 becomes -2^63, anything above
//     2^63-1 becomes 2^63-1. Int64 has no arithmetic.
//
// Both are immutable value structs. Operations return new values, so a
// value may be shared across goroutines without synchronization.
//
// # Unsigned comparisons
//
// [Int32] stores an unsigned magnitude and its comparison methods (Eq,
// Lt, Ge, ...) compare that magnitude, not the signed interpretation.
// NewInt32(-1).Lt(NewInt32(1)) is false because -1 is stored as
// 0xFFFFFFFF. [Int32.IsNegative], on the other hand, looks at the signed
// view. Callers that need signed ordering compare Signed() values
// directly. The unsigned ordering is part of the contract; changing it
// would silently break any layout or index that sorted on it.
//
// # Serialization
//
// Both types implement encoding.TextMarshaler and the CBOR marshaler
// interfaces (through lib/codec). Int32 serializes its unsigned
// magnitude; Int64 serializes its signed value.
package fixedint
