// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Wirebuf is the command-line tool for positional wire schemas. It
// prints canonical field order and fingerprints of schema files,
// compares schema versions for breaking layout changes, validates
// records, keeps a local store of schema descriptors, and evaluates
// fixed-width integer expressions.
package main
