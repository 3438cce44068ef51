package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// SaveAutoCompile stores the auto-compile preference in the config file,
// keeping comments and the rest of the document intact.
func SaveAutoCompile(configPath string, auto bool) error {
	return saveScalar(configPath, "auto_compile", strconv.FormatBool(auto), "!!bool")
}

// saveScalar sets a top-level scalar key, appending it when missing.
func saveScalar(configPath, key, value, tag string) error {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	valueNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}

	switch {
	case doc.Kind == 0:
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{{
				Kind:    yaml.MappingNode,
				Content: []*yaml.Node{{Kind: yaml.ScalarNode, Value: key}, valueNode},
			}},
		}
	case doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 && doc.Content[0].Kind == yaml.MappingNode:
		root := doc.Content[0]
		found := false
		for i := 0; i+1 < len(root.Content); i += 2 {
			if root.Content[i].Value == key {
				// Keep the comments attached to the old value.
				valueNode.LineComment = root.Content[i+1].LineComment
				root.Content[i+1] = valueNode
				found = true
				break
			}
		}
		if !found {
			root.Content = append(root.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, valueNode)
		}
	default:
		return fmt.Errorf("config root is not a mapping")
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = enc.Close()

	if err := os.WriteFile(configPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
