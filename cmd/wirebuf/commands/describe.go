// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"

	"github.com/bureau-foundation/wirebuf/lib/schema"
	"gopkg.in/yaml.v3"
)

// writeDescription writes s as a YAML schema document with top-level
// fields in canonical order.
func writeDescription(w io.Writer, s *schema.Schema) error {
	document := s.Document()
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range s.CanonicalKeys() {
		var value yaml.Node
		if err := value.Encode(document[name]); err != nil {
			return fmt.Errorf("encoding %q: %w", name, err)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&value,
		)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(root); err != nil {
		return fmt.Errorf("writing YAML: %w", err)
	}
	return encoder.Close()
}
