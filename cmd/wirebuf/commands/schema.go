// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/bureau-foundation/wirebuf/cmd/wirebuf/cli"
	"github.com/bureau-foundation/wirebuf/lib/layout"
	"github.com/bureau-foundation/wirebuf/lib/schema"
)

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:    "schema",
		Summary: "Inspect, compare, and check schema files",
		Description: `Work with schema definition files.

Schema files are YAML (.yaml, .yml) or JSON with comments (.json,
.jsonc). Each top-level key is a field name mapped to a definition with
at least "type" and "kind" (required or optional).`,
		Subcommands: []*cli.Command{
			schemaKeysCommand(),
			schemaFingerprintCommand(),
			schemaDiffCommand(),
			schemaCheckCommand(),
			schemaDescribeCommand(),
			schemaValidateCommand(),
		},
	}
}

type keysParams struct {
	cli.JSONOutput
	Fields []string `flag:"field,f" desc:"print only the named fields (repeatable or comma-separated)"`
}

// keyEntry is one row of "schema keys" output.
type keyEntry struct {
	Position int             `json:"position"`
	Name     string          `json:"name"`
	Type     schema.Type     `json:"type"`
	Kind     schema.Presence `json:"kind"`
}

func schemaKeysCommand() *cli.Command {
	var params keysParams
	return &cli.Command{
		Name:    "keys",
		Summary: "Print fields in canonical wire order",
		Usage:   "wirebuf schema keys [--json] [--field name]... <file>",
		Params:  func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Find where two fields sit on the wire",
				Command:     "wirebuf schema keys --field UserId,name user.yaml",
			},
		},
		Run: func(args []string) error {
			s, err := loadSchemaArg(args)
			if err != nil {
				return err
			}
			return writeKeys(os.Stdout, s, &params.JSONOutput, params.Fields)
		},
	}
}

// writeKeys prints the canonical layout of s. When fields is non-empty
// only those fields are printed, still in canonical order.
func writeKeys(w io.Writer, s *schema.Schema, output *cli.JSONOutput, fields []string) error {
	for _, name := range fields {
		if _, ok := s.Field(name); !ok {
			return cli.NotFound("no field %q in schema (names are case-sensitive)", name)
		}
	}

	entries := make([]keyEntry, 0, s.Len())
	for key := range s.All() {
		if len(fields) > 0 && !slices.Contains(fields, key.Name) {
			continue
		}
		value, _ := s.Field(key.Name)
		entries = append(entries, keyEntry{
			Position: key.Position,
			Name:     key.Name,
			Type:     value.Type(),
			Kind:     value.Attributes().Kind,
		})
	}
	if done, err := output.EmitJSON(w, entries); done {
		return err
	}

	tw := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
	for _, entry := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", entry.Position, entry.Name, entry.Type, entry.Kind)
	}
	return tw.Flush()
}

type fingerprintParams struct {
	cli.JSONOutput
	Short bool `flag:"short" desc:"print abbreviated fingerprints"`
}

type fingerprintResult struct {
	Descriptor string `json:"descriptor"`
	KeySet     string `json:"key_set"`
}

func schemaFingerprintCommand() *cli.Command {
	var params fingerprintParams
	return &cli.Command{
		Name:    "fingerprint",
		Summary: "Print the descriptor and key-set fingerprints",
		Description: `Print two BLAKE3 fingerprints of a schema.

The descriptor fingerprint covers every field's name, position, and
full definition: it changes whenever the schema does. The key-set
fingerprint covers only the field names in canonical order: it changes
only when the positional layout does.`,
		Usage:  "wirebuf schema fingerprint [--short] [--json] <file>",
		Params: func() any { return &params },
		Run: func(args []string) error {
			s, err := loadSchemaArg(args)
			if err != nil {
				return err
			}
			return writeFingerprint(os.Stdout, s, &params)
		},
	}
}

func writeFingerprint(w io.Writer, s *schema.Schema, params *fingerprintParams) error {
	descriptor, err := layout.Fingerprint(s)
	if err != nil {
		return cli.Internal("fingerprinting schema: %w", err)
	}
	keySet := layout.KeySetFingerprint(s)

	format := layout.Hash.String
	if params.Short {
		format = layout.Hash.Short
	}
	result := fingerprintResult{Descriptor: format(descriptor), KeySet: format(keySet)}
	if done, err := params.EmitJSON(w, result); done {
		return err
	}
	_, err = fmt.Fprintf(w, "descriptor %s\nkey-set    %s\n", result.Descriptor, result.KeySet)
	return err
}

type diffParams struct {
	cli.JSONOutput
	Check bool `flag:"check" desc:"exit 1 when the change is breaking"`
}

type diffResult struct {
	Added    []string      `json:"added"`
	Removed  []string      `json:"removed"`
	Moved    []layout.Move `json:"moved"`
	Retyped  []string      `json:"retyped"`
	Changed  []string      `json:"changed"`
	Breaking bool          `json:"breaking"`
}

func schemaDiffCommand() *cli.Command {
	var params diffParams
	return &cli.Command{
		Name:    "diff",
		Summary: "Compare the layouts of two schema versions",
		Description: `Compare two versions of a schema and list layout changes.

A change is breaking when a record written under the old schema could
be misread under the new one: a field was added, removed, moved to a
different position, or given a different type. Changes to presence,
defaults, or nested definitions are listed but are not breaking.

Output lines:

  + name @pos       added
  - name            removed
  > name from->to   moved
  ! name            retyped
  ~ name            changed`,
		Usage:  "wirebuf schema diff [--check] [--json] <old> <new>",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Gate a schema change in CI",
				Command:     "wirebuf schema diff --check main/user.yaml user.yaml",
			},
		},
		Run: func(args []string) error {
			if len(args) != 2 {
				return cli.Validation("diff takes two schema files, got %d arguments", len(args))
			}
			previous, err := loadSchema(args[0])
			if err != nil {
				return err
			}
			current, err := loadSchema(args[1])
			if err != nil {
				return err
			}
			return writeDiff(os.Stdout, previous, current, &params)
		},
	}
}

func writeDiff(w io.Writer, previous, current *schema.Schema, params *diffParams) error {
	diff := layout.Compare(previous, current)

	done, err := params.EmitJSON(w, diffResult{
		Added:    nonNil(diff.Added),
		Removed:  nonNil(diff.Removed),
		Moved:    nonNil(diff.Moved),
		Retyped:  nonNil(diff.Retyped),
		Changed:  nonNil(diff.Changed),
		Breaking: diff.Breaking(),
	})
	if err != nil {
		return err
	}
	if !done {
		writeDiffText(w, diff, current)
	}

	if params.Check && diff.Breaking() {
		return &cli.ExitError{Code: 1}
	}
	return nil
}

func writeDiffText(w io.Writer, diff layout.Diff, current *schema.Schema) {
	for _, name := range diff.Added {
		position, _ := current.Position(name)
		fmt.Fprintf(w, "+ %s @%d\n", name, position)
	}
	for _, name := range diff.Removed {
		fmt.Fprintf(w, "- %s\n", name)
	}
	for _, move := range diff.Moved {
		fmt.Fprintf(w, "> %s %d->%d\n", move.Name, move.From, move.To)
	}
	for _, name := range diff.Retyped {
		fmt.Fprintf(w, "! %s\n", name)
	}
	for _, name := range diff.Changed {
		fmt.Fprintf(w, "~ %s\n", name)
	}
	if diff.Empty() {
		fmt.Fprintln(w, "no changes")
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func schemaCheckCommand() *cli.Command {
	return &cli.Command{
		Name:    "check",
		Summary: "Check that schema files load and are well formed",
		Description: `Load each schema file and run its structural checks: known
types and kinds, no stray attributes, map keys of string, int32, or
int64, unique enum symbols, and defaults valid for their own field.

Prints one line per file. Exits 1 if any file fails.`,
		Usage: "wirebuf schema check <file>...",
		Run: func(args []string) error {
			if len(args) == 0 {
				return cli.Validation("check takes at least one schema file")
			}
			return checkFiles(os.Stdout, args)
		},
	}
}

func checkFiles(w io.Writer, paths []string) error {
	failed := false
	for _, path := range paths {
		s, err := schema.ReadFile(path)
		if err != nil {
			failed = true
			fmt.Fprintf(w, "FAIL %s\n", path)
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(w, "  %s\n", line)
			}
			continue
		}
		fmt.Fprintf(w, "ok   %s (%d fields)\n", path, s.Len())
	}
	if failed {
		return &cli.ExitError{Code: 1}
	}
	return nil
}

func schemaDescribeCommand() *cli.Command {
	return &cli.Command{
		Name:    "describe",
		Summary: "Print a schema's normalized definition in wire order",
		Description: `Print the schema as YAML with fields in canonical order and
every default in its literal form. The output is itself a valid schema
file.`,
		Usage: "wirebuf schema describe <file>",
		Run: func(args []string) error {
			s, err := loadSchemaArg(args)
			if err != nil {
				return err
			}
			return writeDescription(os.Stdout, s)
		},
	}
}

type validateParams struct {
	Defaults bool `flag:"defaults" desc:"fill absent fields from their defaults before validating" default:"true"`
}

func schemaValidateCommand() *cli.Command {
	var params validateParams
	return &cli.Command{
		Name:    "validate",
		Summary: "Validate a record file against a schema",
		Description: `Decode a record (.yaml, .yml, .json, .jsonc, or .cbor) into the
schema's runtime types, fill defaults, and check it. On success the
normalized record is printed as JSON: int32 values wrapped, int64
values clamped, bytes as base64.

Every problem is reported, in canonical field order.`,
		Usage:  "wirebuf schema validate [--defaults=false] <schema> <record>",
		Params: func() any { return &params },
		Run: func(args []string) error {
			if len(args) != 2 {
				return cli.Validation("validate takes a schema file and a record file, got %d arguments", len(args))
			}
			s, err := loadSchema(args[0])
			if err != nil {
				return err
			}
			raw, err := readRecordFile(args[1])
			if err != nil {
				return err
			}
			return validateRecord(os.Stdout, s, raw, params.Defaults)
		},
	}
}

func validateRecord(w io.Writer, s *schema.Schema, raw map[string]any, defaults bool) error {
	record, err := s.DecodeRecord(raw)
	if err != nil {
		return cli.Validation("decoding record: %w", err)
	}
	if defaults {
		record = s.ApplyDefaults(record)
	}
	if err := s.ValidateRecord(record); err != nil {
		return cli.Validation("invalid record: %w", err)
	}
	return cli.WriteJSON(w, s.RecordLiteral(record))
}

// loadSchemaArg loads the single schema file named by args.
func loadSchemaArg(args []string) (*schema.Schema, error) {
	if len(args) != 1 {
		return nil, cli.Validation("expected one schema file, got %d arguments", len(args))
	}
	return loadSchema(args[0])
}

func loadSchema(path string) (*schema.Schema, error) {
	s, err := schema.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, cli.NotFound("%w", err)
		}
		return nil, cli.Validation("%w", err)
	}
	return s, nil
}
