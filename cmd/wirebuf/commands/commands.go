// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the wirebuf command tree: schema inspection
// (keys, fingerprints, diffs, record validation), the descriptor store,
// fixed-width integer calculators, CBOR inspection, and build version
// reporting.
package commands

import (
	"github.com/bureau-foundation/wirebuf/cmd/wirebuf/cli"
)

// Root builds and returns the complete wirebuf command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "wirebuf",
		Description: `wirebuf: positional wire schemas.

A schema maps field names to type descriptions. Fields are laid out on
the wire in canonical order: names sorted case-insensitively, with
case-only collisions broken by raw byte order. Integer fields use
fixed-width values: int32 wraps modulo 2^32, int64 saturates.`,
		Subcommands: []*cli.Command{
			schemaCommand(),
			storeCommand(),
			int32Command(),
			int64Command(),
			cborCommand(),
			versionCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Print the wire order of a schema",
				Command:     "wirebuf schema keys user.yaml",
			},
			{
				Description: "Fail CI when a schema change moves fields",
				Command:     "wirebuf schema diff --check old/user.yaml user.yaml",
			},
			{
				Description: "Wrapping 32-bit arithmetic",
				Command:     "wirebuf int32 2147483647 add 1",
			},
		},
	}
}
