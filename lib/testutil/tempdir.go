// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to name inside directory and returns the
// absolute path. name may contain slashes; parent directories are
// created as needed. Pass t.TempDir() as directory so the file is
// cleaned up with the test.
//
//	path := testutil.WriteFile(t, t.TempDir(), "user.yaml", userSchema)
func WriteFile(t testing.TB, directory, name, content string) string {
	t.Helper()

	path := filepath.Join(directory, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating fixture directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}

	absolutePath, err := filepath.Abs(path)
	if err != nil {
		t.Fatalf("resolving fixture path: %v", err)
	}
	return absolutePath
}
