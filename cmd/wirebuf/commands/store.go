// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/wirebuf/cmd/wirebuf/cli"
	"github.com/bureau-foundation/wirebuf/lib/layout"
	"github.com/bureau-foundation/wirebuf/lib/schema"
	"github.com/bureau-foundation/wirebuf/lib/schemastore"
)

func storeCommand() *cli.Command {
	return &cli.Command{
		Name:    "store",
		Summary: "Save and retrieve schema descriptors by fingerprint",
		Description: `Manage the local descriptor store.

The store is a directory of compressed, content-addressed schema
descriptors named by their BLAKE3 fingerprint. Its location and
compression come from the config file (store.root, store.compression),
overridable with --root and --compression.`,
		Subcommands: []*cli.Command{
			storePutCommand(),
			storeGetCommand(),
			storeListCommand(),
		},
	}
}

type putParams struct {
	ConfigParams
	Compression string `flag:"compression" desc:"none, lz4, or zstd (overrides store.compression)"`
}

func storePutCommand() *cli.Command {
	var params putParams
	return &cli.Command{
		Name:    "put",
		Summary: "Store schema files and print their fingerprints",
		Usage:   "wirebuf store put [--compression <tag>] <file>...",
		Params:  func() any { return &params },
		Run: func(args []string) error {
			if len(args) == 0 {
				return cli.Validation("put takes at least one schema file")
			}
			store, logger, err := params.openStore(params.Compression)
			if err != nil {
				return err
			}
			logger = logger.With("command", "store/put")

			for _, path := range args {
				s, err := loadSchema(path)
				if err != nil {
					return err
				}
				hash, err := putSchema(os.Stdout, store, s)
				if err != nil {
					return err
				}
				logger.Info("stored schema", "file", path, "fingerprint", hash.Short(), "fields", s.Len())
			}
			return nil
		},
	}
}

func putSchema(w io.Writer, store *schemastore.Store, s *schema.Schema) (layout.Hash, error) {
	hash, err := store.Put(s)
	if err != nil {
		return layout.Hash{}, cli.Internal("storing schema: %w", err)
	}
	_, err = fmt.Fprintln(w, hash)
	return hash, err
}

type getParams struct {
	ConfigParams
}

func storeGetCommand() *cli.Command {
	var params getParams
	return &cli.Command{
		Name:    "get",
		Summary: "Print a stored schema as YAML",
		Usage:   "wirebuf store get <fingerprint>",
		Params:  func() any { return &params },
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("get takes one fingerprint, got %d arguments", len(args))
			}
			store, _, err := params.openStore("")
			if err != nil {
				return err
			}
			return getSchema(os.Stdout, store, args[0])
		},
	}
}

func getSchema(w io.Writer, store *schemastore.Store, fingerprint string) error {
	hash, err := layout.ParseHash(fingerprint)
	if err != nil {
		return cli.Validation("%w", err)
	}
	s, err := store.Get(hash)
	if errors.Is(err, schemastore.ErrNotFound) {
		return cli.NotFound("descriptor %s not in store", hash.Short()).
			WithHint("Run 'wirebuf store list' to see stored fingerprints.")
	}
	if err != nil {
		return cli.Internal("reading descriptor: %w", err)
	}
	return writeDescription(w, s)
}

type listParams struct {
	ConfigParams
	cli.JSONOutput
	Limit int `flag:"limit,n" desc:"print at most this many fingerprints (0 for all)"`
}

func storeListCommand() *cli.Command {
	var params listParams
	return &cli.Command{
		Name:    "list",
		Summary: "List stored fingerprints",
		Usage:   "wirebuf store list [--json] [--limit n]",
		Params:  func() any { return &params },
		Run: func(args []string) error {
			if len(args) != 0 {
				return cli.Validation("list takes no arguments, got %q", args[0])
			}
			store, _, err := params.openStore("")
			if err != nil {
				return err
			}
			return listSchemas(os.Stdout, store, &params.JSONOutput, params.Limit)
		},
	}
}

// listSchemas prints stored fingerprints in sorted order, at most limit
// of them when limit is positive.
func listSchemas(w io.Writer, store *schemastore.Store, output *cli.JSONOutput, limit int) error {
	if limit < 0 {
		return cli.Validation("--limit must not be negative, got %d", limit)
	}
	hashes, err := store.List()
	if err != nil {
		return cli.Internal("listing store: %w", err)
	}
	if limit > 0 && len(hashes) > limit {
		hashes = hashes[:limit]
	}

	fingerprints := make([]string, len(hashes))
	for i, hash := range hashes {
		fingerprints[i] = hash.String()
	}
	if done, err := output.EmitJSON(w, fingerprints); done {
		return err
	}
	for _, fingerprint := range fingerprints {
		fmt.Fprintln(w, fingerprint)
	}
	return nil
}
