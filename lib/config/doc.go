// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the wirebuf
// command.
//
// Configuration is loaded from a single file specified by either the
// WIREBUF_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks, no ~/.config discovery,
// and no automatic file search. Commands that do not touch the store
// run without any config file, using [Default].
//
// The file supports environment-specific sections (development,
// production) that override base values when [Config].Environment
// matches. Production defaults to warn-level JSON logs.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with Store and Log sections
//   - [Default] -- returns a Config with development defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other wirebuf packages.
package config
