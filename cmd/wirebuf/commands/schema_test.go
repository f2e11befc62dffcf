// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/bureau-foundation/wirebuf/cmd/wirebuf/cli"
	"github.com/bureau-foundation/wirebuf/lib/layout"
	"github.com/bureau-foundation/wirebuf/lib/schema"
	"github.com/bureau-foundation/wirebuf/lib/testutil"
)

const userSchema = `
UserId:
  type: int32
  kind: required
name:
  type: string
  kind: optional
Tags:
  type: array
  kind: optional
  items: {type: string, kind: required}
`

// userSchemaV2 inserts "email" ahead of "name", shifting every field.
const userSchemaV2 = userSchema + `
email:
  type: string
  kind: optional
`

func writeSchema(t *testing.T, content string) string {
	t.Helper()
	return testutil.WriteFile(t, t.TempDir(), testutil.UniqueID("schema")+".yaml", content)
}

func mustSchema(t *testing.T, content string) *schema.Schema {
	t.Helper()
	s, err := schema.ParseYAML([]byte(content))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	return s
}

func TestWriteKeys(t *testing.T) {
	s := mustSchema(t, userSchema)

	var text bytes.Buffer
	if err := writeKeys(&text, s, &cli.JSONOutput{}, nil); err != nil {
		t.Fatalf("writeKeys: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(text.String()), "\n")
	want := [][]string{
		{"0", "name", "string", "optional"},
		{"1", "Tags", "array", "optional"},
		{"2", "UserId", "int32", "required"},
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines:\n%s", len(lines), text.String())
	}
	for i, line := range lines {
		if got := strings.Fields(line); !reflect.DeepEqual(got, want[i]) {
			t.Errorf("line %d = %q, want %q", i, got, want[i])
		}
	}

	var encoded bytes.Buffer
	if err := writeKeys(&encoded, s, &cli.JSONOutput{OutputJSON: true}, nil); err != nil {
		t.Fatalf("writeKeys --json: %v", err)
	}
	var entries []keyEntry
	if err := json.Unmarshal(encoded.Bytes(), &entries); err != nil {
		t.Fatalf("decoding JSON output: %v", err)
	}
	if len(entries) != 3 || entries[2].Name != "UserId" || entries[2].Position != 2 {
		t.Errorf("entries = %+v", entries)
	}
}

func TestWriteKeysFields(t *testing.T) {
	s := mustSchema(t, userSchema)

	var output bytes.Buffer
	if err := writeKeys(&output, s, &cli.JSONOutput{OutputJSON: true}, []string{"UserId", "name"}); err != nil {
		t.Fatalf("writeKeys: %v", err)
	}
	var entries []keyEntry
	if err := json.Unmarshal(output.Bytes(), &entries); err != nil {
		t.Fatalf("decoding JSON output: %v", err)
	}
	want := []keyEntry{
		{Position: 0, Name: "name", Type: schema.TypeString, Kind: schema.Optional},
		{Position: 2, Name: "UserId", Type: schema.TypeInt32, Kind: schema.Required},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("entries = %+v, want %+v", entries, want)
	}

	err := writeKeys(&bytes.Buffer{}, s, &cli.JSONOutput{}, []string{"userid"})
	var toolError *cli.ToolError
	if !errors.As(err, &toolError) || toolError.Category != cli.CategoryNotFound {
		t.Errorf("unknown field error = %v, want not_found", err)
	}
}

func TestWriteFingerprint(t *testing.T) {
	s := mustSchema(t, userSchema)
	descriptor, err := layout.Fingerprint(s)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}

	var output bytes.Buffer
	if err := writeFingerprint(&output, s, &fingerprintParams{}); err != nil {
		t.Fatalf("writeFingerprint: %v", err)
	}
	if !strings.Contains(output.String(), descriptor.String()) {
		t.Errorf("output %q missing descriptor fingerprint", output.String())
	}
	if !strings.Contains(output.String(), layout.KeySetFingerprint(s).String()) {
		t.Errorf("output %q missing key-set fingerprint", output.String())
	}

	output.Reset()
	params := &fingerprintParams{Short: true}
	params.OutputJSON = true
	if err := writeFingerprint(&output, s, params); err != nil {
		t.Fatalf("writeFingerprint --short --json: %v", err)
	}
	var result fingerprintResult
	if err := json.Unmarshal(output.Bytes(), &result); err != nil {
		t.Fatalf("decoding JSON output: %v", err)
	}
	if result.Descriptor != descriptor.Short() {
		t.Errorf("descriptor = %q, want %q", result.Descriptor, descriptor.Short())
	}
}

func TestWriteDiff(t *testing.T) {
	previous := mustSchema(t, userSchema)
	current := mustSchema(t, userSchemaV2)

	var output bytes.Buffer
	if err := writeDiff(&output, previous, current, &diffParams{}); err != nil {
		t.Fatalf("writeDiff: %v", err)
	}
	for _, want := range []string{"+ email @0", "> name 0->1", "> Tags 1->2", "> UserId 2->3"} {
		if !strings.Contains(output.String(), want) {
			t.Errorf("output missing %q:\n%s", want, output.String())
		}
	}

	err := writeDiff(&bytes.Buffer{}, previous, current, &diffParams{Check: true})
	var exitError *cli.ExitError
	if !errors.As(err, &exitError) || exitError.Code != 1 {
		t.Errorf("--check on breaking diff = %v, want exit 1", err)
	}
}

func TestWriteDiffNonBreaking(t *testing.T) {
	previous := mustSchema(t, userSchema)
	current := mustSchema(t, strings.Replace(userSchema, "type: string\n  kind: optional", "type: string\n  kind: required", 1))

	var output bytes.Buffer
	if err := writeDiff(&output, previous, current, &diffParams{Check: true}); err != nil {
		t.Fatalf("writeDiff --check on presence change: %v", err)
	}
	if got := strings.TrimSpace(output.String()); got != "~ name" {
		t.Errorf("output = %q, want \"~ name\"", got)
	}

	output.Reset()
	if err := writeDiff(&output, previous, previous, &diffParams{}); err != nil {
		t.Fatalf("writeDiff: %v", err)
	}
	if got := strings.TrimSpace(output.String()); got != "no changes" {
		t.Errorf("output = %q, want \"no changes\"", got)
	}
}

func TestWriteDiffJSON(t *testing.T) {
	params := &diffParams{}
	params.OutputJSON = true

	var output bytes.Buffer
	s := mustSchema(t, userSchema)
	if err := writeDiff(&output, s, s, params); err != nil {
		t.Fatalf("writeDiff: %v", err)
	}
	var result map[string]any
	if err := json.Unmarshal(output.Bytes(), &result); err != nil {
		t.Fatalf("decoding JSON output: %v", err)
	}
	if added, ok := result["added"].([]any); !ok || len(added) != 0 {
		t.Errorf("added = %#v, want empty list", result["added"])
	}
	if result["breaking"] != false {
		t.Errorf("breaking = %v", result["breaking"])
	}
}

func TestCheckFiles(t *testing.T) {
	good := writeSchema(t, userSchema)
	bad := writeSchema(t, "a: {type: map, kind: required, keyType: bool, valueType: {type: any, kind: optional}}\nb: {type: decimal, kind: required}\n")

	var output bytes.Buffer
	if err := checkFiles(&output, []string{good}); err != nil {
		t.Fatalf("checkFiles(good): %v", err)
	}
	if !strings.Contains(output.String(), "(3 fields)") {
		t.Errorf("output = %q", output.String())
	}

	output.Reset()
	err := checkFiles(&output, []string{good, bad})
	var exitError *cli.ExitError
	if !errors.As(err, &exitError) {
		t.Fatalf("checkFiles(bad) = %v, want ExitError", err)
	}
	if !strings.Contains(output.String(), "FAIL "+bad) {
		t.Errorf("output missing failure line:\n%s", output.String())
	}
	if !strings.Contains(output.String(), "ok   "+good) {
		t.Errorf("output missing success line:\n%s", output.String())
	}
}

func TestWriteDescriptionRoundtrip(t *testing.T) {
	s := mustSchema(t, userSchema+`
retries:
  type: int32
  kind: optional
  default: 4294967297
`)

	var output bytes.Buffer
	if err := writeDescription(&output, s); err != nil {
		t.Fatalf("writeDescription: %v", err)
	}

	var topLevel []string
	for _, line := range strings.Split(output.String(), "\n") {
		if line != "" && !strings.HasPrefix(line, " ") {
			topLevel = append(topLevel, strings.TrimSuffix(line, ":"))
		}
	}
	if want := s.CanonicalKeys(); !reflect.DeepEqual(topLevel, want) {
		t.Errorf("top-level keys = %q, want %q", topLevel, want)
	}

	reparsed, err := schema.ParseYAML(output.Bytes())
	if err != nil {
		t.Fatalf("description does not parse: %v\n%s", err, output.String())
	}
	if !reflect.DeepEqual(reparsed.Document(), s.Document()) {
		t.Errorf("description changed the schema:\n%s", output.String())
	}
}

func TestValidateRecord(t *testing.T) {
	s := mustSchema(t, userSchema+`
retries:
  type: int64
  kind: required
  default: 3
`)
	directory := t.TempDir()
	recordPath := testutil.WriteFile(t, directory, "record.jsonc", `{
  // Wraps to 1.
  "UserId": 4294967297,
  "Tags": ["a", "b"],
}`)
	raw, err := readRecordFile(recordPath)
	if err != nil {
		t.Fatalf("readRecordFile: %v", err)
	}

	var output bytes.Buffer
	if err := validateRecord(&output, s, raw, true); err != nil {
		t.Fatalf("validateRecord: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal(output.Bytes(), &record); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if record["UserId"] != float64(1) || record["retries"] != float64(3) {
		t.Errorf("record = %v", record)
	}

	err = validateRecord(&bytes.Buffer{}, s, map[string]any{"name": "x"}, false)
	var toolError *cli.ToolError
	if !errors.As(err, &toolError) || toolError.Category != cli.CategoryValidation {
		t.Fatalf("missing fields error = %v, want validation ToolError", err)
	}
	if !errors.Is(err, schema.ErrMissingField) {
		t.Errorf("error %v does not wrap ErrMissingField", err)
	}
}

func TestReadRecordFile(t *testing.T) {
	directory := t.TempDir()

	record, err := readRecordFile(testutil.WriteFile(t, directory, "record.yaml", "name: ann\nUserId: -1\n"))
	if err != nil {
		t.Fatalf("readRecordFile(yaml): %v", err)
	}
	if record["name"] != "ann" {
		t.Errorf("record = %v", record)
	}

	record, err = readRecordFile(testutil.WriteFile(t, directory, "empty.yaml", ""))
	if err != nil || record == nil || len(record) != 0 {
		t.Errorf("empty record = %v, %v", record, err)
	}

	_, err = readRecordFile(testutil.WriteFile(t, directory, "record.toml", ""))
	var toolError *cli.ToolError
	if !errors.As(err, &toolError) || toolError.Category != cli.CategoryValidation {
		t.Errorf("unsupported extension error = %v", err)
	}

	_, err = readRecordFile(directory + "/missing.json")
	if !errors.As(err, &toolError) || toolError.Category != cli.CategoryNotFound {
		t.Errorf("missing file error = %v", err)
	}
}

func TestLoadSchemaCategories(t *testing.T) {
	_, err := loadSchema(t.TempDir() + "/missing.yaml")
	var toolError *cli.ToolError
	if !errors.As(err, &toolError) || toolError.Category != cli.CategoryNotFound {
		t.Errorf("missing file error = %v, want not_found", err)
	}

	_, err = loadSchema(writeSchema(t, "a: {type: string}"))
	if !errors.As(err, &toolError) || toolError.Category != cli.CategoryValidation {
		t.Errorf("invalid schema error = %v, want validation", err)
	}
}

func TestSchemaCommandArgumentErrors(t *testing.T) {
	tests := [][]string{
		{"schema", "keys"},
		{"schema", "keys", "a.yaml", "b.yaml"},
		{"schema", "diff", "a.yaml"},
		{"schema", "check"},
		{"schema", "validate", "a.yaml"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			err := Root().Execute(args)
			var toolError *cli.ToolError
			if !errors.As(err, &toolError) || toolError.Category != cli.CategoryValidation {
				t.Errorf("Execute(%q) = %v, want validation error", args, err)
			}
		})
	}
}
