package predicate

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// nodeAlias drops the custom decoders to avoid recursion.
type nodeAlias Node

// UnmarshalJSON accepts either a node object or a string in the text
// shorthand understood by ParseExpr. JSON numbers decode as float64.
func (n *Node) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		parsed, err := ParseExpr(text)
		if err != nil {
			return err
		}
		*n = *parsed
		return nil
	}

	var alias nodeAlias
	if err := json.Unmarshal(trimmed, &alias); err != nil {
		return fmt.Errorf("predicate: decode node: %w", err)
	}
	*n = Node(alias)
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML documents.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		parsed, err := ParseExpr(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*n = *parsed
		return nil
	}

	var alias nodeAlias
	if err := value.Decode(&alias); err != nil {
		return fmt.Errorf("predicate: decode node (line %d): %w", value.Line, err)
	}
	*n = Node(alias)
	return nil
}
