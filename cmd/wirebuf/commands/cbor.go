// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode"

	"github.com/bureau-foundation/wirebuf/cmd/wirebuf/cli"
	"github.com/bureau-foundation/wirebuf/lib/codec"
	"github.com/bureau-foundation/wirebuf/lib/schema"
	"github.com/tidwall/jsonc"
)

// cborInputParams holds the flags shared by the cbor subcommands.
type cborInputParams struct {
	HexInput bool `flag:"hex,x" desc:"treat input as hex-encoded CBOR"`
}

type diagParams struct {
	cborInputParams
	Skip int64 `flag:"skip" desc:"skip this many leading bytes before decoding"`
}

type encodeParams struct {
	HexOutput bool `flag:"hex,x" desc:"write hex text instead of binary CBOR"`
}

func cborCommand() *cli.Command {
	return &cli.Command{
		Name:    "cbor",
		Summary: "Inspect CBOR data such as stored descriptors",
		Description: `Tools for inspecting and producing CBOR data.

Schema descriptors are encoded with CBOR Core Deterministic Encoding
(RFC 8949 section 4.2). These commands read a file argument, or stdin
when none is given. With --hex, CBOR input is hex text; whitespace is
ignored.`,
		Subcommands: []*cli.Command{
			cborDiagCommand(),
			cborValidateCommand(),
			cborEncodeCommand(),
		},
	}
}

func cborDiagCommand() *cli.Command {
	var params diagParams
	return &cli.Command{
		Name:    "diag",
		Summary: "Print CBOR as diagnostic notation",
		Description: `Write RFC 8949 diagnostic notation for each item of the input,
one line per item, as items arrive. Unlike JSON, diagnostic notation
keeps CBOR type information: integers vs floats, byte strings vs text,
integer map keys, and tags.

--skip discards leading bytes first, for data that follows a header.`,
		Usage:  "wirebuf cbor diag [--hex] [--skip n] [file]",
		Params: func() any { return &params },
		Run: func(args []string) error {
			input, err := openInput(args, params.HexInput)
			if err != nil {
				return err
			}
			defer input.Close()
			return diagCBOR(input, os.Stdout, params.Skip)
		},
	}
}

// diagCBOR writes diagnostic notation for each item in the CBOR
// sequence read from r (RFC 8742), after discarding skip bytes.
func diagCBOR(r io.Reader, w io.Writer, skip int64) error {
	if skip < 0 {
		return cli.Validation("--skip must not be negative, got %d", skip)
	}
	if skip > 0 {
		if _, err := io.CopyN(io.Discard, r, skip); err != nil {
			if errors.Is(err, io.EOF) {
				return cli.Validation("input is shorter than --skip %d", skip)
			}
			return cli.Internal("read input: %w", err)
		}
	}

	decoder := codec.NewDecoder(r)
	count := 0
	for {
		var item codec.RawMessage
		err := decoder.Decode(&item)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			offset := skip + int64(decoder.NumBytesRead())
			return cli.Validation("diagnose CBOR at byte %d: %w", offset, err)
		}
		notation, err := codec.Diagnose(item)
		if err != nil {
			offset := skip + int64(decoder.NumBytesRead()-len(item))
			return cli.Validation("diagnose CBOR at byte %d: %w", offset, err)
		}
		if _, err := fmt.Fprintln(w, notation); err != nil {
			return err
		}
		count++
	}
	if count == 0 {
		return cli.Validation("empty input: expected CBOR data")
	}
	return nil
}

func cborEncodeCommand() *cli.Command {
	var params encodeParams
	return &cli.Command{
		Name:    "encode",
		Summary: "Convert JSON to deterministic CBOR",
		Description: `Read JSON (comments and trailing commas allowed) and write the
equivalent CBOR in Core Deterministic Encoding. Several top-level JSON
values produce a CBOR sequence, one item each.

Integers stay integers, whatever their size; other numbers become
floats. The output is binary unless --hex is given.`,
		Usage:  "wirebuf cbor encode [--hex] [file]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Write a CBOR record for 'schema validate'",
				Command:     "wirebuf cbor encode record.jsonc > record.cbor",
			},
			{
				Description: "Round-trip through diagnostic notation",
				Command:     "echo '{\"count\": 42}' | wirebuf cbor encode | wirebuf cbor diag",
			},
		},
		Run: func(args []string) error {
			input, err := openInput(args, false)
			if err != nil {
				return err
			}
			defer input.Close()
			return encodeCBOR(input, os.Stdout, params.HexOutput)
		},
	}
}

// anyValue is the description every encoded item is normalized
// against, so JSON numbers become CBOR integers or floats.
var anyValue = schema.Scalar{Field: schema.Field{Kind: schema.Optional}, Of: schema.TypeAny}

// encodeCBOR converts each JSON value read from r into a CBOR item.
func encodeCBOR(r io.Reader, w io.Writer, hexOutput bool) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return cli.Internal("read input: %w", err)
	}
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.UseNumber()

	output := w
	if hexOutput {
		output = hex.NewEncoder(w)
	}
	encoder := codec.NewEncoder(output)

	count := 0
	for {
		var value any
		err := decoder.Decode(&value)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return cli.Validation("decode JSON value %d: %w", count, err)
		}
		value, err = schema.Literal(anyValue, value)
		if err != nil {
			return cli.Validation("JSON value %d: %w", count, err)
		}
		if err := encoder.Encode(value); err != nil {
			return cli.Internal("encode CBOR: %w", err)
		}
		count++
	}
	if count == 0 {
		return cli.Validation("empty input: expected JSON data")
	}
	if hexOutput {
		_, err = fmt.Fprintln(w)
	}
	return err
}

func cborValidateCommand() *cli.Command {
	var params cborInputParams
	return &cli.Command{
		Name:    "validate",
		Summary: "Check that CBOR uses Core Deterministic Encoding",
		Description: `Verify that the input is a single CBOR item in Core Deterministic
Encoding. Prints "valid" and exits 0, or prints the first differing
byte offset and exits 1.

Validation decodes the input, re-encodes it, and compares the bytes.
This catches unsorted map keys, non-minimal integers, and
indefinite-length items.`,
		Usage:  "wirebuf cbor validate [--hex] [file]",
		Params: func() any { return &params },
		Run: func(args []string) error {
			data, err := readCBORInput(args, params.HexInput)
			if err != nil {
				return err
			}
			return validateCBOR(data, os.Stdout)
		},
	}
}

func validateCBOR(data []byte, w io.Writer) error {
	if err := codec.CheckDeterministic(data); err != nil {
		fmt.Fprintln(w, err)
		return &cli.ExitError{Code: 1}
	}
	_, err := fmt.Fprintln(w, "valid")
	return err
}

// openInput opens the file named by args, or stdin when args is empty.
// With hexMode, the input is hex text and is decoded first.
func openInput(args []string, hexMode bool) (io.ReadCloser, error) {
	var input io.ReadCloser
	switch len(args) {
	case 0:
		input = io.NopCloser(os.Stdin)
	case 1:
		file, err := os.Open(args[0])
		if err != nil {
			if os.IsNotExist(err) {
				return nil, cli.NotFound("%w", err)
			}
			return nil, cli.Internal("open %s: %w", args[0], err)
		}
		input = file
	default:
		return nil, cli.Validation("expected at most one file argument, got %d", len(args))
	}
	if !hexMode {
		return input, nil
	}

	defer input.Close()
	text, err := io.ReadAll(input)
	if err != nil {
		return nil, cli.Internal("read input: %w", err)
	}
	data, err := decodeHexInput(text)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// readCBORInput reads all of the input openInput selects.
func readCBORInput(args []string, hexMode bool) ([]byte, error) {
	input, err := openInput(args, hexMode)
	if err != nil {
		return nil, err
	}
	defer input.Close()
	data, err := io.ReadAll(input)
	if err != nil {
		return nil, cli.Internal("read input: %w", err)
	}
	return data, nil
}

// decodeHexInput strips whitespace from hex-encoded input and decodes
// it. Whitespace between digit pairs is allowed ("a1 63 6b").
func decodeHexInput(data []byte) ([]byte, error) {
	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	if len(cleaned) == 0 {
		return nil, cli.Validation("empty input after stripping whitespace from hex")
	}

	decoded := make([]byte, hex.DecodedLen(len(cleaned)))
	count, err := hex.Decode(decoded, cleaned)
	if err != nil {
		return nil, cli.Validation("decode hex: %w", err)
	}
	return decoded[:count], nil
}
