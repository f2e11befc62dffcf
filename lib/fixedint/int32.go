// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fixedint

import (
	"cmp"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/bureau-foundation/wirebuf/lib/codec"
)

// Integer is the set of Go integer types accepted by [NewInt32].
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Int32 is an immutable 32-bit two's-complement integer. The zero value
// is 0.
type Int32 struct {
	value uint32
}

// mask32 selects the low 32 bits of a big.Int (two's-complement for
// negative values).
var mask32 = new(big.Int).SetUint64(math.MaxUint32)

// NewInt32 truncates v to 32 bits. Overflow wraps silently.
func NewInt32[T Integer](v T) Int32 {
	return Int32{value: uint32(v)}
}

// Int32FromFloat coerces f the way ECMAScript ToInt32 does: the value is
// truncated toward zero and reduced modulo 2^32. NaN and ±Inf become 0.
func Int32FromFloat(f float64) Int32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Int32{}
	}
	f = math.Mod(math.Trunc(f), 1<<32)
	if f < 0 {
		f += 1 << 32
	}
	return Int32{value: uint32(f)}
}

// Int32FromBig returns the low 32 bits of v. A nil v is 0.
func Int32FromBig(v *big.Int) Int32 {
	if v == nil {
		return Int32{}
	}
	low := new(big.Int).And(v, mask32)
	return Int32{value: uint32(low.Uint64())}
}

// Signed returns the two's-complement interpretation, in [-2^31, 2^31-1].
func (i Int32) Signed() int32 {
	return int32(i.value)
}

// Unsigned returns the stored magnitude, in [0, 2^32-1].
func (i Int32) Unsigned() uint32 {
	return i.value
}

// Add returns i + other modulo 2^32.
func (i Int32) Add(other Int32) Int32 { return Int32{value: i.value + other.value} }

// Sub returns i - other modulo 2^32.
func (i Int32) Sub(other Int32) Int32 { return Int32{value: i.value - other.value} }

// Mul returns i * other modulo 2^32.
func (i Int32) Mul(other Int32) Int32 { return Int32{value: i.value * other.value} }

// Div divides the unsigned magnitudes, truncating.
func (i Int32) Div(other Int32) (Int32, error) {
	if other.value == 0 {
		return Int32{}, ErrDivisionByZero
	}
	return Int32{value: i.value / other.value}, nil
}

// Mod returns the remainder of the unsigned division. A zero divisor
// fails the same way it does for [Int32.Div].
func (i Int32) Mod(other Int32) (Int32, error) {
	if other.value == 0 {
		return Int32{}, ErrDivisionByZero
	}
	return Int32{value: i.value % other.value}, nil
}

// And returns the bitwise AND of i and other.
func (i Int32) And(other Int32) Int32 { return Int32{value: i.value & other.value} }

// Or returns the bitwise OR of i and other.
func (i Int32) Or(other Int32) Int32 { return Int32{value: i.value | other.value} }

// Xor returns the bitwise exclusive OR of i and other.
func (i Int32) Xor(other Int32) Int32 { return Int32{value: i.value ^ other.value} }

// Not returns the bitwise complement of i.
func (i Int32) Not() Int32 { return Int32{value: ^i.value} }

// Shl shifts left by other mod 32 bits.
func (i Int32) Shl(other Int32) Int32 {
	return Int32{value: i.value << (other.value & 31)}
}

// Shr shifts right (logical, zero-filling) by other mod 32 bits.
func (i Int32) Shr(other Int32) Int32 {
	return Int32{value: i.value >> (other.value & 31)}
}

// Compare orders i and other by unsigned magnitude, returning -1, 0,
// or +1.
func (i Int32) Compare(other Int32) int {
	return cmp.Compare(i.value, other.value)
}

// Eq reports whether i and other hold the same magnitude.
func (i Int32) Eq(other Int32) bool { return i.value == other.value }

// Ne reports whether i and other hold different magnitudes.
func (i Int32) Ne(other Int32) bool { return i.value != other.value }

// Lt reports whether i is below other, comparing unsigned magnitudes.
func (i Int32) Lt(other Int32) bool { return i.value < other.value }

// Le reports whether i is at most other, comparing unsigned magnitudes.
func (i Int32) Le(other Int32) bool { return i.value <= other.value }

// Gt reports whether i is above other, comparing unsigned magnitudes.
func (i Int32) Gt(other Int32) bool { return i.value > other.value }

// Ge reports whether i is at least other, comparing unsigned magnitudes.
func (i Int32) Ge(other Int32) bool { return i.value >= other.value }

// IsZero reports whether the magnitude is zero.
func (i Int32) IsZero() bool { return i.value == 0 }

// IsNegative reports whether the signed view is below zero. Unlike the
// comparison methods, this uses the signed interpretation.
func (i Int32) IsNegative() bool { return i.Signed() < 0 }

// String returns the unsigned magnitude in decimal.
func (i Int32) String() string {
	return strconv.FormatUint(uint64(i.value), 10)
}

// Format returns the unsigned magnitude in the given base (2 to 36).
func (i Int32) Format(base int) string {
	return strconv.FormatUint(uint64(i.value), base)
}

// MarshalText encodes the unsigned magnitude in decimal.
func (i Int32) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText accepts any signed or unsigned decimal integer and
// wraps it to 32 bits.
func (i *Int32) UnmarshalText(text []byte) error {
	parsed, err := parseDecimal(string(text))
	if err != nil {
		return err
	}
	*i = Int32FromBig(parsed)
	return nil
}

// MarshalCBOR encodes the unsigned magnitude as a CBOR unsigned integer.
func (i Int32) MarshalCBOR() ([]byte, error) {
	return codec.Marshal(i.value)
}

// UnmarshalCBOR accepts any CBOR integer (including bignums) and wraps
// it to 32 bits.
func (i *Int32) UnmarshalCBOR(data []byte) error {
	var decoded any
	if err := codec.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("decoding int32: %w", err)
	}
	switch value := decoded.(type) {
	case uint64:
		*i = NewInt32(value)
	case int64:
		*i = NewInt32(value)
	case big.Int:
		*i = Int32FromBig(&value)
	default:
		return fmt.Errorf("decoding int32 from CBOR %T: %w", decoded, ErrTypeMismatch)
	}
	return nil
}

// parseDecimal parses an optionally signed base-10 integer of any size.
// Surrounding whitespace is ignored and an empty string is zero.
func parseDecimal(text string) (*big.Int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return new(big.Int), nil
	}
	parsed, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSyntax, text)
	}
	return parsed, nil
}
