// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// Type is a field type tag.
type Type string

const (
	TypeString  Type = "string"
	TypeBool    Type = "bool"
	TypeBytes   Type = "bytes"
	TypeAuto    Type = "auto"
	TypeAny     Type = "any"
	TypeNull    Type = "null"
	TypeArray   Type = "array"
	TypeMap     Type = "map"
	TypeEnum    Type = "enum"
	TypeUnion   Type = "union"
	TypeInt32   Type = "int32"
	TypeInt64   Type = "int64"
	TypeFloat32 Type = "float32"
	TypeFloat64 Type = "float64"
)

// IsScalar reports whether t is valid for a [Scalar].
func (t Type) IsScalar() bool {
	switch t {
	case TypeString, TypeBool, TypeBytes, TypeAuto, TypeAny, TypeNull:
		return true
	}
	return false
}

// IsNumeric reports whether t is valid for a [Numeric].
func (t Type) IsNumeric() bool {
	switch t {
	case TypeInt32, TypeInt64, TypeFloat32, TypeFloat64:
		return true
	}
	return false
}

// IsMapKey reports whether t is a permitted [Map] key type.
func (t Type) IsMapKey() bool {
	return t == TypeString || t == TypeInt32 || t == TypeInt64
}

// Presence is the presence requirement of a field. In definition files
// it is spelled "kind".
type Presence string

const (
	Required Presence = "required"
	Optional Presence = "optional"
)

// Field holds the attributes common to every [Value] variant.
type Field struct {
	Kind Presence

	// Default is the runtime value used when the field is absent. nil
	// means the field has no default.
	Default any
}

// Required reports whether the field must be present.
func (f Field) Required() bool { return f.Kind == Required }

// HasDefault reports whether a default value is set.
func (f Field) HasDefault() bool { return f.Default != nil }

// Value describes the shape of one field. The set of implementations is
// closed: [Scalar], [Numeric], [Array], [Map], [Enum], and [Union].
type Value interface {
	// Type returns the variant's type tag.
	Type() Type

	// Attributes returns the presence requirement and default.
	Attributes() Field

	isValue()
}

// Scalar is a string, bool, bytes, auto, any, or null field.
type Scalar struct {
	Field
	Of Type
}

// Numeric is an int32, int64, float32, or float64 field.
type Numeric struct {
	Field
	Of     Type
	Signed bool
}

// Array is a homogeneous sequence whose elements are all described by
// Items.
type Array struct {
	Field
	Items Value
}

// Map is a homogeneous mapping. Key is restricted to string, int32, and
// int64; every value is described by Values.
type Map struct {
	Field
	Key    Type
	Values Value
}

// Enum is a string restricted to one of Symbols.
type Enum struct {
	Field
	Symbols []string
}

// Union is a record that must satisfy exactly one of Schemas.
type Union struct {
	Field
	Schemas []*Schema
}

func (v Scalar) Type() Type  { return v.Of }
func (v Numeric) Type() Type { return v.Of }
func (Array) Type() Type     { return TypeArray }
func (Map) Type() Type       { return TypeMap }
func (Enum) Type() Type      { return TypeEnum }
func (Union) Type() Type     { return TypeUnion }

func (v Scalar) Attributes() Field  { return v.Field }
func (v Numeric) Attributes() Field { return v.Field }
func (v Array) Attributes() Field   { return v.Field }
func (v Map) Attributes() Field     { return v.Field }
func (v Enum) Attributes() Field    { return v.Field }
func (v Union) Attributes() Field   { return v.Field }

func (Scalar) isValue()  {}
func (Numeric) isValue() {}
func (Array) isValue()   {}
func (Map) isValue()     {}
func (Enum) isValue()    {}
func (Union) isValue()   {}
