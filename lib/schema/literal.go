// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/bureau-foundation/wirebuf/lib/fixedint"
)

// Literal converts a generic decoded value into the runtime
// representation of v. Generic values are what YAML, JSON (with
// UseNumber), and CBOR decoders produce for an untyped target: numbers
// as int, int64, uint64, float64, or json.Number; byte strings as
// []byte or base64 text; sequences as []any; mappings as map[string]any
// or map[any]any.
//
// Integer literals take their field's overflow policy: int32 wraps,
// int64 saturates. Non-integral numbers are rejected. Values of any and
// auto fields are normalized so that YAML, JSONC, and CBOR sources of
// the same literal produce the same value. Literal does not
// validate presence or enum membership; union values are resolved to
// the single member they decode and validate against.
func Literal(v Value, raw any) (any, error) {
	return literal("", v, raw)
}

func literal(path string, v Value, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}

	switch v := v.(type) {
	case Scalar:
		switch v.Of {
		case TypeAny, TypeAuto:
			return plainValue(raw), nil
		case TypeBytes:
		default:
			return raw, nil
		}
		switch raw := raw.(type) {
		case []byte:
			return raw, nil
		case string:
			data, err := base64.StdEncoding.DecodeString(raw)
			if err != nil {
				return nil, fieldErr(path, fmt.Errorf("%w: bytes literal is not base64: %v", ErrWrongType, err))
			}
			return data, nil
		}
		return nil, mismatch(path, TypeBytes, raw)

	case Numeric:
		switch v.Of {
		case TypeInt32:
			return int32Literal(path, raw)
		case TypeInt64:
			return int64Literal(path, raw)
		}
		return nil, fieldErr(path, fmt.Errorf("%w: %s", ErrUnboundType, v.Of))

	case Array:
		items := reflect.ValueOf(raw)
		if items.Kind() != reflect.Slice && items.Kind() != reflect.Array {
			return nil, mismatch(path, TypeArray, raw)
		}
		converted := make([]any, items.Len())
		for i := range items.Len() {
			item, err := literal(fmt.Sprintf("%s[%d]", path, i), v.Items, items.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			converted[i] = item
		}
		return converted, nil

	case Map:
		entries := reflect.ValueOf(raw)
		if entries.Kind() != reflect.Map {
			return nil, mismatch(path, TypeMap, raw)
		}
		switch v.Key {
		case TypeString:
			return mapLiteral(path, v, entries, func(key any) (string, error) {
				text, ok := key.(string)
				if !ok {
					return "", fmt.Errorf("%w: map key %T is not a string", ErrWrongType, key)
				}
				return text, nil
			})
		case TypeInt32:
			return mapLiteral(path, v, entries, func(key any) (fixedint.Int32, error) {
				return int32Literal("", key)
			})
		case TypeInt64:
			return mapLiteral(path, v, entries, func(key any) (fixedint.Int64, error) {
				return int64Literal("", key)
			})
		}
		return nil, fieldErr(path, fmt.Errorf("%w: map key type %q", ErrInvalidSchema, v.Key))

	case Enum:
		return raw, nil

	case Union:
		record, ok := stringKeyed(raw)
		if !ok {
			return nil, mismatch(path, TypeUnion, raw)
		}
		var matches []map[string]any
		for _, member := range v.Schemas {
			decoded, err := member.DecodeRecord(record)
			if err != nil {
				continue
			}
			if member.ValidateRecord(decoded) == nil {
				matches = append(matches, decoded)
			}
		}
		if len(matches) != 1 {
			return nil, fieldErr(path, fmt.Errorf("%w: %d of %d members match", ErrUnionMismatch, len(matches), len(v.Schemas)))
		}
		return matches[0], nil
	}
	return nil, fieldErr(path, fmt.Errorf("%w: unknown description %T", ErrInvalidSchema, v))
}

// stringKeyed returns raw as a map[string]any when it is a map whose
// keys are all strings, as record values decoded from CBOR are.
func stringKeyed(raw any) (map[string]any, bool) {
	if record, ok := raw.(map[string]any); ok {
		return record, true
	}
	entries := reflect.ValueOf(raw)
	if entries.Kind() != reflect.Map {
		return nil, false
	}
	record := make(map[string]any, entries.Len())
	iterator := entries.MapRange()
	for iterator.Next() {
		name, ok := iterator.Key().Interface().(string)
		if !ok {
			return nil, false
		}
		record[name] = iterator.Value().Interface()
	}
	return record, true
}

func mapLiteral[K comparable](path string, v Map, entries reflect.Value, convertKey func(any) (K, error)) (map[K]any, error) {
	converted := make(map[K]any, entries.Len())
	iterator := entries.MapRange()
	for iterator.Next() {
		rawKey := iterator.Key().Interface()
		entryPath := path + "[" + keyText(rawKey) + "]"
		key, err := convertKey(rawKey)
		if err != nil {
			return nil, fieldErr(entryPath, err)
		}
		value, err := literal(entryPath, v.Values, iterator.Value().Interface())
		if err != nil {
			return nil, err
		}
		converted[key] = value
	}
	return converted, nil
}

func int32Literal(path string, raw any) (fixedint.Int32, error) {
	switch raw := raw.(type) {
	case fixedint.Int32:
		return raw, nil
	case fixedint.Int64:
		return fixedint.NewInt32(raw.Signed()), nil
	case *big.Int:
		if raw == nil {
			return fixedint.Int32{}, mismatch(path, TypeInt32, raw)
		}
		return fixedint.Int32FromBig(raw), nil
	case float64:
		if !isIntegral(raw) {
			return fixedint.Int32{}, fieldErr(path, fmt.Errorf("%w: %v is not an integer", ErrWrongType, raw))
		}
		return fixedint.Int32FromFloat(raw), nil
	case json.Number, string:
		value, err := numberText(fmt.Sprint(raw))
		if err != nil {
			return fixedint.Int32{}, fieldErr(path, err)
		}
		return fixedint.Int32FromBig(value), nil
	}

	rv := reflect.ValueOf(raw)
	switch {
	case rv.CanInt():
		return fixedint.NewInt32(rv.Int()), nil
	case rv.CanUint():
		return fixedint.NewInt32(rv.Uint()), nil
	}
	return fixedint.Int32{}, mismatch(path, TypeInt32, raw)
}

func int64Literal(path string, raw any) (fixedint.Int64, error) {
	switch raw := raw.(type) {
	case fixedint.Int64:
		return raw, nil
	case fixedint.Int32:
		return fixedint.NewInt64(int64(raw.Signed()))
	case *big.Int:
		if raw == nil {
			return fixedint.Int64{}, mismatch(path, TypeInt64, raw)
		}
		return fixedint.Int64FromBig(raw), nil
	case float64:
		if !isIntegral(raw) {
			return fixedint.Int64{}, fieldErr(path, fmt.Errorf("%w: %v is not an integer", ErrWrongType, raw))
		}
		value, _ := big.NewFloat(raw).Int(nil)
		return fixedint.Int64FromBig(value), nil
	case json.Number, string:
		value, err := numberText(fmt.Sprint(raw))
		if err != nil {
			return fixedint.Int64{}, fieldErr(path, err)
		}
		return fixedint.Int64FromBig(value), nil
	}

	rv := reflect.ValueOf(raw)
	switch {
	case rv.CanInt():
		return fixedint.NewInt64(rv.Int())
	case rv.CanUint():
		return fixedint.NewInt64(rv.Uint())
	}
	return fixedint.Int64{}, mismatch(path, TypeInt64, raw)
}

func isIntegral(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f)
}

// numberText parses a decimal integer, also accepting integral values
// written with a fraction or exponent ("2.0", "1e3") as JSON encoders
// sometimes emit them. The value is exact at any length. Empty text is
// zero.
func numberText(text string) (*big.Int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return new(big.Int), nil
	}
	if value, ok := new(big.Int).SetString(text, 10); ok {
		return value, nil
	}
	// big.Rat also reads fractions and base prefixes; neither is a
	// decimal number literal.
	if !strings.ContainsFunc(text, notDecimal) {
		if value, ok := new(big.Rat).SetString(text); ok && value.IsInt() {
			return new(big.Int).Set(value.Num()), nil
		}
	}
	return nil, fmt.Errorf("%w: %q is not an integer", ErrWrongType, text)
}

func notDecimal(r rune) bool {
	return !strings.ContainsRune("0123456789+-.eE", r)
}

// plainValue converts the value of an any or auto field into one Go
// form regardless of which decoder produced it: integers become int64,
// or uint64 and then *big.Int beyond that range; other numbers become
// float64; sequences become []any; mappings become map[string]any when
// every key is a string and map[any]any otherwise.
func plainValue(raw any) any {
	switch raw := raw.(type) {
	case nil, bool, string, []byte:
		return raw
	case json.Number:
		if value, ok := new(big.Int).SetString(raw.String(), 10); ok {
			return plainInteger(value)
		}
		value, _ := raw.Float64()
		return value
	case float32:
		return float64(raw)
	case float64:
		return raw
	case *big.Int:
		if raw == nil {
			return nil
		}
		return plainInteger(raw)
	case big.Int:
		return plainInteger(&raw)
	}

	rv := reflect.ValueOf(raw)
	switch {
	case rv.CanInt():
		return rv.Int()
	case rv.CanUint():
		return plainInteger(new(big.Int).SetUint64(rv.Uint()))
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range rv.Len() {
			items[i] = plainValue(rv.Index(i).Interface())
		}
		return items
	case reflect.Map:
		entries := make(map[any]any, rv.Len())
		stringKeys := true
		iterator := rv.MapRange()
		for iterator.Next() {
			key := plainValue(iterator.Key().Interface())
			if key != nil && !reflect.TypeOf(key).Comparable() {
				key = iterator.Key().Interface()
			}
			if _, ok := key.(string); !ok {
				stringKeys = false
			}
			entries[key] = plainValue(iterator.Value().Interface())
		}
		if !stringKeys {
			return entries
		}
		named := make(map[string]any, len(entries))
		for key, value := range entries {
			named[key.(string)] = value
		}
		return named
	}
	return raw
}

func plainInteger(value *big.Int) any {
	switch {
	case value.IsInt64():
		return value.Int64()
	case value.IsUint64():
		return value.Uint64()
	}
	return new(big.Int).Set(value)
}

// LiteralOf is the inverse of [Literal]: it converts a runtime value
// into the generic form that YAML, JSON, and CBOR encoders emit and that
// Literal accepts back. Integers become int64 (int32 by signed view),
// bytes become base64 text, and map keys become strings.
func LiteralOf(v Value, x any) any {
	if x == nil {
		return nil
	}

	switch v := v.(type) {
	case Scalar:
		if data, ok := x.([]byte); ok && v.Of == TypeBytes {
			return base64.StdEncoding.EncodeToString(data)
		}
	case Numeric:
		switch x := x.(type) {
		case fixedint.Int32:
			return int64(x.Signed())
		case fixedint.Int64:
			return x.Signed()
		}
	case Array:
		items := reflect.ValueOf(x)
		if items.Kind() != reflect.Slice && items.Kind() != reflect.Array {
			return x
		}
		plain := make([]any, items.Len())
		for i := range items.Len() {
			plain[i] = LiteralOf(v.Items, items.Index(i).Interface())
		}
		return plain
	case Map:
		entries := reflect.ValueOf(x)
		if entries.Kind() != reflect.Map {
			return x
		}
		plain := make(map[string]any, entries.Len())
		iterator := entries.MapRange()
		for iterator.Next() {
			plain[keyLiteral(iterator.Key().Interface())] = LiteralOf(v.Values, iterator.Value().Interface())
		}
		return plain
	case Union:
		record, ok := x.(map[string]any)
		if !ok {
			return x
		}
		for _, member := range v.Schemas {
			if member.ValidateRecord(record) == nil {
				return member.RecordLiteral(record)
			}
		}
	}
	return x
}

func keyLiteral(key any) string {
	switch key := key.(type) {
	case string:
		return key
	case fixedint.Int32:
		return strconv.FormatInt(int64(key.Signed()), 10)
	case fixedint.Int64:
		return strconv.FormatInt(key.Signed(), 10)
	}
	return fmt.Sprint(key)
}

// RecordLiteral applies [LiteralOf] to each declared field of record.
// Undeclared names are copied unchanged.
func (s *Schema) RecordLiteral(record map[string]any) map[string]any {
	plain := make(map[string]any, len(record))
	for name, value := range record {
		if field, ok := s.fields[name]; ok {
			plain[name] = LiteralOf(field, value)
		} else {
			plain[name] = value
		}
	}
	return plain
}
