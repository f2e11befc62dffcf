// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/bureau-foundation/wirebuf/cmd/wirebuf/cli"
	"github.com/bureau-foundation/wirebuf/lib/codec"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// readRecordFile decodes a record file into the generic form
// [schema.Schema.DecodeRecord] accepts. The format follows the
// extension: YAML, JSON with comments, or CBOR.
func readRecordFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, cli.NotFound("reading record: %w", err)
		}
		return nil, cli.Internal("reading record: %w", err)
	}

	var record map[string]any
	switch extension := strings.ToLower(filepath.Ext(path)); extension {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &record)
	case ".json", ".jsonc":
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.UseNumber()
		err = decoder.Decode(&record)
	case ".cbor":
		err = codec.UnmarshalGeneric(data, &record)
	default:
		return nil, cli.Validation("record file %s: unsupported extension %q (want .yaml, .yml, .json, .jsonc, or .cbor)", path, extension)
	}
	if err != nil {
		return nil, cli.Validation("record file %s: %w", path, err)
	}
	if record == nil {
		record = map[string]any{}
	}
	return record, nil
}
