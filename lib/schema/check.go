// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"errors"
	"fmt"
)

// Check validates the structure of every field description: type tags
// belong to their variant, map keys are string, int32, or int64, enums
// have unique non-empty symbols, unions have at least one valid member,
// and every default satisfies its own field. All problems are reported,
// joined.
func (s *Schema) Check() error {
	var errs []error
	for _, name := range s.CanonicalKeys() {
		if err := checkDescription(name, s.fields[name]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func checkDescription(path string, v Value) error {
	if v == nil {
		return fieldErr(path, fmt.Errorf("%w: missing description", ErrInvalidSchema))
	}

	attrs := v.Attributes()
	if attrs.Kind != Required && attrs.Kind != Optional {
		return fieldErr(path, fmt.Errorf("%w: kind %q is not %q or %q",
			ErrInvalidSchema, attrs.Kind, Required, Optional))
	}

	switch v := v.(type) {
	case Scalar:
		if !v.Of.IsScalar() {
			return fieldErr(path, fmt.Errorf("%w: %q is not a scalar type", ErrInvalidSchema, v.Of))
		}
	case Numeric:
		if !v.Of.IsNumeric() {
			return fieldErr(path, fmt.Errorf("%w: %q is not a numeric type", ErrInvalidSchema, v.Of))
		}
	case Array:
		if err := checkDescription(joinPath(path, "items"), v.Items); err != nil {
			return err
		}
	case Map:
		if !v.Key.IsMapKey() {
			return fieldErr(path, fmt.Errorf("%w: map key type %q must be string, int32, or int64",
				ErrInvalidSchema, v.Key))
		}
		if err := checkDescription(joinPath(path, "valueType"), v.Values); err != nil {
			return err
		}
	case Enum:
		if len(v.Symbols) == 0 {
			return fieldErr(path, fmt.Errorf("%w: enum has no symbols", ErrInvalidSchema))
		}
		seen := make(map[string]bool, len(v.Symbols))
		for _, symbol := range v.Symbols {
			if symbol == "" {
				return fieldErr(path, fmt.Errorf("%w: empty enum symbol", ErrInvalidSchema))
			}
			if seen[symbol] {
				return fieldErr(path, fmt.Errorf("%w: duplicate enum symbol %q", ErrInvalidSchema, symbol))
			}
			seen[symbol] = true
		}
	case Union:
		if len(v.Schemas) == 0 {
			return fieldErr(path, fmt.Errorf("%w: union has no member schemas", ErrInvalidSchema))
		}
		for i, member := range v.Schemas {
			memberPath := fmt.Sprintf("%s[%d]", joinPath(path, "schemas"), i)
			if member == nil {
				return fieldErr(memberPath, fmt.Errorf("%w: nil member schema", ErrInvalidSchema))
			}
			if err := member.Check(); err != nil {
				return fieldErr(memberPath, err)
			}
		}
	default:
		return fieldErr(path, fmt.Errorf("%w: unknown description %T", ErrInvalidSchema, v))
	}

	if attrs.HasDefault() {
		if err := checkValue("", v, attrs.Default); err != nil {
			return fieldErr(joinPath(path, "default"), err)
		}
	}
	return nil
}
