// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/bureau-foundation/wirebuf/cmd/wirebuf/cli"
	"github.com/bureau-foundation/wirebuf/lib/layout"
	"github.com/bureau-foundation/wirebuf/lib/version"
)

func TestWriteVersion(t *testing.T) {
	var out bytes.Buffer
	if err := writeVersion(&out, &versionParams{}); err != nil {
		t.Fatalf("writeVersion: %v", err)
	}
	if !strings.HasPrefix(out.String(), "wirebuf "+version.Short()) {
		t.Errorf("output = %q", out.String())
	}
	if !strings.Contains(out.String(), "Descriptor format: v1") {
		t.Errorf("output missing descriptor format: %q", out.String())
	}
}

func TestWriteVersionShort(t *testing.T) {
	var out bytes.Buffer
	if err := writeVersion(&out, &versionParams{Short: true}); err != nil {
		t.Fatalf("writeVersion: %v", err)
	}
	if out.String() != version.Short()+"\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestWriteVersionJSON(t *testing.T) {
	var out bytes.Buffer
	params := &versionParams{JSONOutput: cli.JSONOutput{OutputJSON: true}}
	if err := writeVersion(&out, params); err != nil {
		t.Fatalf("writeVersion: %v", err)
	}
	var result versionResult
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if result.Version != version.Short() || result.DescriptorVersion != layout.DescriptorVersion {
		t.Errorf("result = %+v", result)
	}
}
