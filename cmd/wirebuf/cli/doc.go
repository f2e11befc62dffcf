// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the wirebuf tool.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a flag source (either a
// [pflag.FlagSet] factory or a tagged params struct), and a Run function.
// Commands are assembled into a tree in cmd/wirebuf/commands and
// dispatched via [Command.Execute], which handles flag parsing,
// subcommand routing, and structured help output with examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3). This is implemented in
// suggest.go.
//
// Params structs declare flags with struct tags (flag, desc, default);
// see [BindFlags]. Embedding [JSONOutput] adds a --json flag.
//
// Errors returned from Run are either plain errors, categorized
// [ToolError] values (validation, not_found, internal), or an
// [ExitError] for commands that already printed their own result and
// only need a non-zero exit status.
package cli
