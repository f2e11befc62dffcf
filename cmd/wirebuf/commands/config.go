// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"log/slog"
	"os"

	"github.com/bureau-foundation/wirebuf/cmd/wirebuf/cli"
	"github.com/bureau-foundation/wirebuf/lib/config"
	"github.com/bureau-foundation/wirebuf/lib/schemastore"
)

// ConfigParams is embedded in the params of commands that read the
// configuration file. It is exported so flag binding can reach its
// fields through the embedding.
type ConfigParams struct {
	ConfigPath string `flag:"config" desc:"path to wirebuf.yaml (default: $WIREBUF_CONFIG)"`
	StoreRoot  string `flag:"root" desc:"store directory (overrides store.root)"`
}

// load resolves the configuration: --config, then WIREBUF_CONFIG, then
// built-in defaults. --root replaces the configured store root.
func (p *ConfigParams) load() (*config.Config, *slog.Logger, error) {
	var cfg *config.Config
	var err error
	switch {
	case p.ConfigPath != "":
		cfg, err = config.LoadFile(p.ConfigPath)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, nil, cli.Validation("loading config: %w", err)
	}

	if p.StoreRoot != "" {
		cfg.Store.Root = p.StoreRoot
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, cli.Validation("invalid config: %w", err)
	}

	logger, err := cli.NewCommandLogger(cfg.Log)
	if err != nil {
		return nil, nil, cli.Validation("invalid config: %w", err)
	}
	return cfg, logger, nil
}

// openStore loads the configuration and opens the descriptor store it
// names. compression, when non-empty, replaces store.compression.
func (p *ConfigParams) openStore(compression string) (*schemastore.Store, *slog.Logger, error) {
	cfg, logger, err := p.load()
	if err != nil {
		return nil, nil, err
	}
	if compression == "" {
		compression = cfg.Store.Compression
	}
	tag, err := schemastore.ParseCompressionTag(compression)
	if err != nil {
		return nil, nil, cli.Validation("%w", err)
	}
	if err := cfg.EnsurePaths(); err != nil {
		return nil, nil, cli.Internal("%w", err)
	}

	store, err := schemastore.Open(cfg.Store.Root, schemastore.Options{
		Compression: tag,
		Logger:      logger,
	})
	if err != nil {
		return nil, nil, cli.Internal("opening store: %w", err)
	}
	return store, logger.With("root", store.Root()), nil
}
