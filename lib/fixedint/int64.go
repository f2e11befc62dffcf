// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fixedint

import (
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/bureau-foundation/wirebuf/lib/codec"
)

// Int64 is an immutable signed 64-bit integer whose construction
// saturates at the bounds of the int64 range. The zero value is 0.
type Int64 struct {
	value int64
}

var (
	minInt64 = big.NewInt(math.MinInt64)
	maxInt64 = big.NewInt(math.MaxInt64)
)

// NewInt64 converts v to an Int64, clamping to [-2^63, 2^63-1]. The
// accepted inputs are a decimal string, any Go integer type, and an
// arbitrary-precision *big.Int or big.Int. Any other dynamic type fails
// with [ErrTypeMismatch]; a string that is not a decimal integer fails
// with [ErrSyntax].
func NewInt64(v any) (Int64, error) {
	switch value := v.(type) {
	case string:
		return ParseInt64(value)
	case *big.Int:
		if value == nil {
			return Int64{}, fmt.Errorf("nil *big.Int: %w", ErrTypeMismatch)
		}
		return Int64FromBig(value), nil
	case big.Int:
		return Int64FromBig(&value), nil
	case int:
		return Int64{value: int64(value)}, nil
	case int8:
		return Int64{value: int64(value)}, nil
	case int16:
		return Int64{value: int64(value)}, nil
	case int32:
		return Int64{value: int64(value)}, nil
	case int64:
		return Int64{value: value}, nil
	case uint:
		return clampUint64(uint64(value)), nil
	case uint8:
		return Int64{value: int64(value)}, nil
	case uint16:
		return Int64{value: int64(value)}, nil
	case uint32:
		return Int64{value: int64(value)}, nil
	case uint64:
		return clampUint64(value), nil
	case uintptr:
		return clampUint64(uint64(value)), nil
	default:
		return Int64{}, fmt.Errorf("constructing int64 from %T: %w", v, ErrTypeMismatch)
	}
}

// ParseInt64 parses an optionally signed decimal integer of any size and
// clamps it into range. Surrounding whitespace is ignored and an empty
// string is zero.
func ParseInt64(text string) (Int64, error) {
	parsed, err := parseDecimal(text)
	if err != nil {
		return Int64{}, err
	}
	return Int64FromBig(parsed), nil
}

// Int64FromBig clamps v into range. A nil v is 0.
func Int64FromBig(v *big.Int) Int64 {
	switch {
	case v == nil:
		return Int64{}
	case v.Cmp(minInt64) < 0:
		return Int64{value: math.MinInt64}
	case v.Cmp(maxInt64) > 0:
		return Int64{value: math.MaxInt64}
	default:
		return Int64{value: v.Int64()}
	}
}

func clampUint64(v uint64) Int64 {
	if v > math.MaxInt64 {
		return Int64{value: math.MaxInt64}
	}
	return Int64{value: int64(v)}
}

// Signed returns the stored (clamped) value.
func (i Int64) Signed() int64 {
	return i.value
}

// Unsigned returns the 64-bit two's-complement reinterpretation of the
// stored value: NewInt64(-1) is 2^64-1.
func (i Int64) Unsigned() uint64 {
	return uint64(i.value)
}

// String returns the signed value in decimal.
func (i Int64) String() string {
	return strconv.FormatInt(i.value, 10)
}

// MarshalText encodes the signed value in decimal.
func (i Int64) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText parses a decimal integer of any size, clamping it.
func (i *Int64) UnmarshalText(text []byte) error {
	parsed, err := ParseInt64(string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// MarshalCBOR encodes the signed value as a CBOR integer.
func (i Int64) MarshalCBOR() ([]byte, error) {
	return codec.Marshal(i.value)
}

// UnmarshalCBOR accepts a CBOR integer, bignum, or decimal text string
// and clamps it.
func (i *Int64) UnmarshalCBOR(data []byte) error {
	var decoded any
	if err := codec.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("decoding int64: %w", err)
	}
	parsed, err := NewInt64(decoded)
	if err != nil {
		return fmt.Errorf("decoding int64 from CBOR: %w", err)
	}
	*i = parsed
	return nil
}
