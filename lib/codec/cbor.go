// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"fmt"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2).
var encMode cbor.EncMode

// decMode is the CBOR decoder. Unknown struct fields are ignored so
// that newer descriptors stay readable by older tools.
var decMode cbor.DecMode

// genericDecMode decodes untyped maps as map[any]any so that integer
// and other non-text keys survive.
var genericDecMode cbor.DecMode

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	// fixedint values implement encoding.TextMarshaler as well as
	// cbor.Marshaler; the Marshaler wins. Other TextMarshalers encode
	// as text strings rather than empty maps.
	encOptions.TextMarshaler = cbor.TextMarshalerTextString
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Descriptor defaults and record values decode into any. Map
		// fields with string keys must come back as map[string]any so
		// they compare equal to what YAML and JSON loaders produce.
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}

	genericDecMode, err = cbor.DecOptions{
		DefaultMapType:  reflect.TypeOf(map[any]any(nil)),
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}.DecMode()
	if err != nil {
		panic("codec: generic CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// UnmarshalGeneric decodes CBOR data into v, producing map[any]any for
// maps decoded into an interface value. Use it for record data, whose
// map fields may have integer keys.
func UnmarshalGeneric(data []byte, v any) error {
	return genericDecMode.Unmarshal(data, v)
}

// Encoder is a CBOR stream encoder.
type Encoder = cbor.Encoder

// Decoder is a CBOR stream decoder.
type Decoder = cbor.Decoder

// RawMessage is a raw encoded CBOR value, used to delay decoding.
type RawMessage = cbor.RawMessage

// NewEncoder returns a deterministic CBOR encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder returns a CBOR decoder that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	return decMode.NewDecoder(r)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for the
// entire contents of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

// CheckDeterministic decodes data and re-encodes it, returning nil when
// the bytes are identical. Otherwise the error names the first byte
// offset where the encodings diverge: unsorted map keys, non-minimal
// integers, and indefinite-length items all show up this way.
func CheckDeterministic(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected CBOR data")
	}

	var value any
	if err := Unmarshal(data, &value); err != nil {
		return fmt.Errorf("decode CBOR: %w", err)
	}

	reencoded, err := Marshal(value)
	if err != nil {
		return fmt.Errorf("re-encode CBOR: %w", err)
	}

	if bytes.Equal(data, reencoded) {
		return nil
	}

	offset := 0
	limit := min(len(data), len(reencoded))
	for offset < limit && data[offset] == reencoded[offset] {
		offset++
	}
	return fmt.Errorf("not deterministic: first difference at byte %d (original %d bytes, re-encoded %d bytes)",
		offset, len(data), len(reencoded))
}
