// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/wirebuf/cmd/wirebuf/cli"
	"github.com/bureau-foundation/wirebuf/lib/layout"
	"github.com/bureau-foundation/wirebuf/lib/version"
)

type versionParams struct {
	cli.JSONOutput
	Short bool `flag:"short" desc:"print only the version number"`
}

type versionResult struct {
	Version           string `json:"version"`
	Build             string `json:"build"`
	DescriptorVersion int    `json:"descriptor_version"`
}

func versionCommand() *cli.Command {
	var params versionParams
	return &cli.Command{
		Name:    "version",
		Summary: "Print build and descriptor format versions",
		Usage:   "wirebuf version [--short] [--json]",
		Params:  func() any { return &params },
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("version takes no arguments")
			}
			return writeVersion(os.Stdout, &params)
		},
	}
}

func writeVersion(w io.Writer, params *versionParams) error {
	result := versionResult{
		Version:           version.Short(),
		Build:             version.Info(),
		DescriptorVersion: layout.DescriptorVersion,
	}
	if done, err := params.EmitJSON(w, result); done {
		return err
	}
	if params.Short {
		_, err := fmt.Fprintln(w, version.Short())
		return err
	}
	_, err := fmt.Fprintf(w, "wirebuf %s\n  Descriptor format: v%d\n", version.Full(), layout.DescriptorVersion)
	return err
}
