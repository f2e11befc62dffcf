// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for wirebuf packages.
//
// [WriteFile] writes a fixture file (a schema definition, a record, a
// config) into a test's temporary directory and returns its path.
// Missing parent directories are created, and the file is removed with
// the directory when the test completes.
//
// [UniqueID] generates monotonically increasing identifiers for test
// disambiguation. Use it when a test needs many distinct field names or
// file names without inventing them by hand.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no wirebuf-internal dependencies.
package testutil
