// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"

	"github.com/bureau-foundation/wirebuf/lib/fixedint"
)

// CheckValue reports whether x is a valid runtime value for v. nil is
// accepted for optional descriptions and for the null, any, and auto
// types.
func CheckValue(v Value, x any) error {
	return checkValue("", v, x)
}

func nilAllowed(v Value) bool {
	switch v.Type() {
	case TypeNull, TypeAny, TypeAuto:
		return true
	}
	return v.Attributes().Kind == Optional
}

func checkValue(path string, v Value, x any) error {
	if x == nil {
		if nilAllowed(v) {
			return nil
		}
		return fieldErr(path, fmt.Errorf("%w: nil value for %s %s", ErrWrongType, v.Attributes().Kind, v.Type()))
	}

	switch v := v.(type) {
	case Scalar:
		ok := false
		switch v.Of {
		case TypeString:
			_, ok = x.(string)
		case TypeBool:
			_, ok = x.(bool)
		case TypeBytes:
			_, ok = x.([]byte)
		case TypeAuto, TypeAny:
			ok = true
		}
		if !ok {
			return mismatch(path, v.Of, x)
		}
		return nil

	case Numeric:
		ok := false
		switch v.Of {
		case TypeInt32:
			_, ok = x.(fixedint.Int32)
		case TypeInt64:
			_, ok = x.(fixedint.Int64)
		default:
			return fieldErr(path, fmt.Errorf("%w: %s", ErrUnboundType, v.Of))
		}
		if !ok {
			return mismatch(path, v.Of, x)
		}
		return nil

	case Array:
		items := reflect.ValueOf(x)
		if items.Kind() != reflect.Slice && items.Kind() != reflect.Array {
			return mismatch(path, TypeArray, x)
		}
		for i := range items.Len() {
			if err := checkValue(fmt.Sprintf("%s[%d]", path, i), v.Items, items.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil

	case Map:
		entries := reflect.ValueOf(x)
		if entries.Kind() != reflect.Map {
			return mismatch(path, TypeMap, x)
		}
		keys := entries.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
		})
		for _, key := range keys {
			entryPath := path + "[" + keyText(key.Interface()) + "]"
			if !keyMatches(v.Key, key.Interface()) {
				return mismatch(entryPath, v.Key, key.Interface())
			}
			if err := checkValue(entryPath, v.Values, entries.MapIndex(key).Interface()); err != nil {
				return err
			}
		}
		return nil

	case Enum:
		symbol, ok := x.(string)
		if !ok {
			return mismatch(path, TypeEnum, x)
		}
		if !slices.Contains(v.Symbols, symbol) {
			return fieldErr(path, fmt.Errorf("%w: %q", ErrNotInEnum, symbol))
		}
		return nil

	case Union:
		record, ok := x.(map[string]any)
		if !ok {
			return mismatch(path, TypeUnion, x)
		}
		matched := 0
		for _, member := range v.Schemas {
			if member.ValidateRecord(record) == nil {
				matched++
			}
		}
		if matched != 1 {
			return fieldErr(path, fmt.Errorf("%w: %d of %d members match", ErrUnionMismatch, matched, len(v.Schemas)))
		}
		return nil
	}
	return fieldErr(path, fmt.Errorf("%w: unknown description %T", ErrInvalidSchema, v))
}

func keyMatches(keyType Type, key any) bool {
	switch keyType {
	case TypeString:
		_, ok := key.(string)
		return ok
	case TypeInt32:
		_, ok := key.(fixedint.Int32)
		return ok
	case TypeInt64:
		_, ok := key.(fixedint.Int64)
		return ok
	}
	return false
}

func keyText(key any) string {
	if s, ok := key.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprint(key)
}

// ValidateRecord checks record against the schema. Every problem is
// reported, joined, in canonical field order: values that fail
// [CheckValue], required fields that are absent and have no default,
// and names the schema does not declare.
func (s *Schema) ValidateRecord(record map[string]any) error {
	var errs []error
	for _, name := range s.CanonicalKeys() {
		field := s.fields[name]
		value, present := record[name]
		if !present {
			attrs := field.Attributes()
			if attrs.Required() && !attrs.HasDefault() {
				errs = append(errs, &FieldError{Path: name, Err: ErrMissingField})
			}
			continue
		}
		if err := checkValue(name, field, value); err != nil {
			errs = append(errs, err)
		}
	}
	for _, name := range s.unknownNames(record) {
		errs = append(errs, &FieldError{Path: name, Err: ErrUnknownField})
	}
	return errors.Join(errs...)
}

// ApplyDefaults returns a copy of record in which every absent field
// that has a default is set to it. Default values are shared, not
// copied.
func (s *Schema) ApplyDefaults(record map[string]any) map[string]any {
	filled := maps.Clone(record)
	if filled == nil {
		filled = make(map[string]any, len(s.fields))
	}
	for name, field := range s.fields {
		if _, present := filled[name]; present {
			continue
		}
		if attrs := field.Attributes(); attrs.HasDefault() {
			filled[name] = attrs.Default
		}
	}
	return filled
}

// DecodeRecord converts a generic record, as produced by a YAML, JSON,
// or CBOR decoder, into runtime values using [Literal] for each field.
// It does not check presence; follow with [Schema.ValidateRecord].
func (s *Schema) DecodeRecord(raw map[string]any) (map[string]any, error) {
	decoded := make(map[string]any, len(raw))
	var errs []error
	for _, name := range slices.SortedFunc(maps.Keys(raw), CompareNames) {
		field, ok := s.fields[name]
		if !ok {
			errs = append(errs, &FieldError{Path: name, Err: ErrUnknownField})
			continue
		}
		value, err := literal(name, field, raw[name])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		decoded[name] = value
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return decoded, nil
}

func (s *Schema) unknownNames(record map[string]any) []string {
	var unknown []string
	for name := range record {
		if _, ok := s.fields[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	slices.SortFunc(unknown, CompareNames)
	return unknown
}
