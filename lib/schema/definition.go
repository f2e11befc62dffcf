// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Definition is the data-literal form of a [Value], as written in
// schema files:
//
//	UserId:
//	  type: int32
//	  kind: required
//	Tags:
//	  type: array
//	  kind: optional
//	  items: {type: string, kind: required}
//
// Only the attributes of the named type are meaningful; the others must
// be left empty.
type Definition struct {
	Type Type     `json:"type" yaml:"type"`
	Kind Presence `json:"kind" yaml:"kind"`

	// Default is a generic literal converted with [Literal].
	Default any `json:"default,omitempty" yaml:"default,omitempty"`

	// Signed applies to numeric types. Absent means signed.
	Signed *bool `json:"signed,omitempty" yaml:"signed,omitempty"`

	Items     *Definition `json:"items,omitempty" yaml:"items,omitempty"`
	KeyType   Type        `json:"keyType,omitempty" yaml:"keyType,omitempty"`
	ValueType *Definition `json:"valueType,omitempty" yaml:"valueType,omitempty"`
	Symbols   []string    `json:"symbols,omitempty" yaml:"symbols,omitempty"`
	Schemas   []Document  `json:"schemas,omitempty" yaml:"schemas,omitempty"`
}

// Document is a whole schema in definition form.
type Document map[string]*Definition

// FromDefinition builds the [Value] a definition describes. The default
// literal is converted to its runtime form, and attributes that do not
// belong to the type are rejected. The result is not otherwise checked;
// see [Schema.Check].
func FromDefinition(definition *Definition) (Value, error) {
	return fromDefinition("", definition)
}

func fromDefinition(path string, definition *Definition) (Value, error) {
	if definition == nil {
		return nil, fieldErr(path, fmt.Errorf("%w: empty definition", ErrInvalidSchema))
	}
	if definition.Type == "" {
		return nil, fieldErr(path, fmt.Errorf("%w: type is required", ErrInvalidSchema))
	}
	if err := checkExtraneous(definition); err != nil {
		return nil, fieldErr(path, err)
	}

	field := Field{Kind: definition.Kind}
	var value Value
	switch t := definition.Type; {
	case t.IsScalar():
		value = Scalar{Field: field, Of: t}
	case t.IsNumeric():
		signed := definition.Signed == nil || *definition.Signed
		value = Numeric{Field: field, Of: t, Signed: signed}
	case t == TypeArray:
		items, err := fromDefinition(joinPath(path, "items"), definition.Items)
		if err != nil {
			return nil, err
		}
		value = Array{Field: field, Items: items}
	case t == TypeMap:
		values, err := fromDefinition(joinPath(path, "valueType"), definition.ValueType)
		if err != nil {
			return nil, err
		}
		value = Map{Field: field, Key: definition.KeyType, Values: values}
	case t == TypeEnum:
		value = Enum{Field: field, Symbols: slices.Clone(definition.Symbols)}
	case t == TypeUnion:
		members := make([]*Schema, len(definition.Schemas))
		for i, document := range definition.Schemas {
			member, err := FromDocument(document)
			if err != nil {
				return nil, fieldErr(fmt.Sprintf("%s[%d]", joinPath(path, "schemas"), i), err)
			}
			members[i] = member
		}
		value = Union{Field: field, Schemas: members}
	default:
		return nil, fieldErr(path, fmt.Errorf("%w: unknown type %q", ErrInvalidSchema, t))
	}

	if definition.Default == nil {
		return value, nil
	}
	converted, err := literal("", value, definition.Default)
	if err != nil {
		return nil, fieldErr(joinPath(path, "default"), err)
	}
	return withDefault(value, converted), nil
}

// checkExtraneous rejects attributes that belong to a different type.
func checkExtraneous(definition *Definition) error {
	t := definition.Type
	var extraneous []string
	if definition.Signed != nil && !t.IsNumeric() {
		extraneous = append(extraneous, "signed")
	}
	if definition.Items != nil && t != TypeArray {
		extraneous = append(extraneous, "items")
	}
	if definition.KeyType != "" && t != TypeMap {
		extraneous = append(extraneous, "keyType")
	}
	if definition.ValueType != nil && t != TypeMap {
		extraneous = append(extraneous, "valueType")
	}
	if definition.Symbols != nil && t != TypeEnum {
		extraneous = append(extraneous, "symbols")
	}
	if definition.Schemas != nil && t != TypeUnion {
		extraneous = append(extraneous, "schemas")
	}
	if len(extraneous) > 0 {
		return fmt.Errorf("%w: %s not allowed for type %q", ErrInvalidSchema, strings.Join(extraneous, ", "), t)
	}
	return nil
}

func withDefault(value Value, fallback any) Value {
	switch v := value.(type) {
	case Scalar:
		v.Default = fallback
		return v
	case Numeric:
		v.Default = fallback
		return v
	case Array:
		v.Default = fallback
		return v
	case Map:
		v.Default = fallback
		return v
	case Enum:
		v.Default = fallback
		return v
	case Union:
		v.Default = fallback
		return v
	}
	return value
}

// Describe returns the definition form of v. Defaults are converted with
// [LiteralOf], so FromDefinition(Describe(v)) reproduces v.
func Describe(v Value) *Definition {
	attrs := v.Attributes()
	definition := &Definition{
		Type:    v.Type(),
		Kind:    attrs.Kind,
		Default: LiteralOf(v, attrs.Default),
	}
	switch v := v.(type) {
	case Numeric:
		signed := v.Signed
		definition.Signed = &signed
	case Array:
		definition.Items = Describe(v.Items)
	case Map:
		definition.KeyType = v.Key
		definition.ValueType = Describe(v.Values)
	case Enum:
		definition.Symbols = slices.Clone(v.Symbols)
	case Union:
		definition.Schemas = make([]Document, len(v.Schemas))
		for i, member := range v.Schemas {
			definition.Schemas[i] = member.Document()
		}
	}
	return definition
}

// Document returns the definition form of the schema.
func (s *Schema) Document() Document {
	document := make(Document, len(s.fields))
	for name, value := range s.fields {
		document[name] = Describe(value)
	}
	return document
}

// FromDocument builds and checks the schema a document describes.
// Conversion errors for every field are reported, joined, in canonical
// order.
func FromDocument(document Document) (*Schema, error) {
	fields := make(map[string]Value, len(document))
	var errs []error
	names := make([]string, 0, len(document))
	for name := range document {
		names = append(names, name)
	}
	slices.SortFunc(names, CompareNames)
	for _, name := range names {
		value, err := fromDefinition(name, document[name])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		fields[name] = value
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	schema := New(fields)
	if err := schema.Check(); err != nil {
		return nil, err
	}
	return schema, nil
}

// ParseYAML decodes a YAML schema document.
func ParseYAML(data []byte) (*Schema, error) {
	var document Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&document); err != nil {
		return nil, fmt.Errorf("parsing YAML schema: %w", err)
	}
	return FromDocument(document)
}

// ParseJSONC decodes a JSON schema document. Comments and trailing
// commas are permitted. Numbers keep their exact text until converted
// to a field type.
func ParseJSONC(data []byte) (*Schema, error) {
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.UseNumber()
	decoder.DisallowUnknownFields()

	var document Document
	if err := decoder.Decode(&document); err != nil {
		return nil, fmt.Errorf("parsing JSONC schema: %w", err)
	}
	return FromDocument(document)
}

// ReadFile loads a schema file, choosing the parser by extension: .yaml
// and .yml for YAML, .json and .jsonc for JSONC.
func ReadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema: %w", err)
	}

	var schema *Schema
	switch extension := strings.ToLower(filepath.Ext(path)); extension {
	case ".yaml", ".yml":
		schema, err = ParseYAML(data)
	case ".json", ".jsonc":
		schema, err = ParseJSONC(data)
	default:
		return nil, fmt.Errorf("schema file %s: unsupported extension %q (want .yaml, .yml, .json, or .jsonc)", path, extension)
	}
	if err != nil {
		return nil, fmt.Errorf("schema file %s: %w", path, err)
	}
	return schema, nil
}
