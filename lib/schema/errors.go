// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSchema is returned by [Schema.Check] and the definition
	// loaders for structurally invalid descriptions.
	ErrInvalidSchema = errors.New("schema: invalid schema")

	// ErrUnboundType is returned for values of a declared type that has
	// no runtime representation (float32, float64).
	ErrUnboundType = errors.New("schema: type has no runtime binding")

	// ErrWrongType is returned when a value does not have the runtime
	// representation of its field's type.
	ErrWrongType = errors.New("schema: value does not match field type")

	// ErrMissingField is returned when a required field without a
	// default is absent from a record.
	ErrMissingField = errors.New("schema: required field missing")

	// ErrUnknownField is returned when a record carries a name the
	// schema does not declare.
	ErrUnknownField = errors.New("schema: field not declared")

	// ErrNotInEnum is returned when an enum value is not one of the
	// declared symbols.
	ErrNotInEnum = errors.New("schema: value is not an enum symbol")

	// ErrUnionMismatch is returned when a union value matches zero or
	// several of its candidate schemas.
	ErrUnionMismatch = errors.New("schema: value must match exactly one union member")
)

// FieldError attaches a field path to a validation or conversion error.
// Paths use dots for nesting, [i] for array elements, and [key] for map
// entries: "Tags[2]", "attrs[\"k\"]", "shape.items".
type FieldError struct {
	Path string
	Err  error
}

func (e *FieldError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error { return e.Err }

// fieldErr wraps err with path. An empty path means the caller checked
// a bare value, and err is returned unchanged.
func fieldErr(path string, err error) error {
	if path == "" {
		return err
	}
	return &FieldError{Path: path, Err: err}
}

func mismatch(path string, want Type, got any) error {
	return fieldErr(path, fmt.Errorf("%w: want %s, got %T", ErrWrongType, want, got))
}

func joinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}
