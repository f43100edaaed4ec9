package config

import (
	"gopkg.in/yaml.v3"

	"github.com/sprigconfig/sprigconfig/pkg/errors"
)

func init() {
	RegisterFormat(yamlFormat{})
}

// yamlFormat parses YAML through the yaml.v3 node API so that mapping key
// order is preserved exactly as written.
type yamlFormat struct{}

func (yamlFormat) Name() string { return "yaml" }

func (yamlFormat) Extensions() []string { return []string{"yml", "yaml"} }

func (yamlFormat) Parse(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeParse, "invalid YAML")
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		// empty document
		return NewMapping(), nil
	}

	root, err := yamlToNode(doc.Content[0])
	if err != nil {
		return nil, err
	}
	if root.Kind() == KindScalar && root.Value() == nil {
		// a document containing only comments or whitespace
		return NewMapping(), nil
	}
	if root.Kind() != KindMapping {
		return nil, errors.New(errors.ErrorTypeParse, "document root must be a mapping")
	}
	return root, nil
}

func yamlToNode(n *yaml.Node) (*Node, error) {
	switch n.Kind {
	case yaml.MappingNode:
		out := NewMapping()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode := n.Content[i]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, errors.Newf(errors.ErrorTypeParse,
					"unsupported mapping key at line %d: keys must be scalars", keyNode.Line)
			}
			child, err := yamlToNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out.Set(keyNode.Value, child)
		}
		return out, nil

	case yaml.SequenceNode:
		out := NewSequence()
		for _, item := range n.Content {
			child, err := yamlToNode(item)
			if err != nil {
				return nil, err
			}
			out.Append(child)
		}
		return out, nil

	case yaml.ScalarNode:
		var v interface{}
		if err := n.Decode(&v); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeParse, "invalid YAML scalar")
		}
		return NewScalar(v), nil

	case yaml.AliasNode:
		return yamlToNode(n.Alias)

	default:
		return nil, errors.Newf(errors.ErrorTypeParse, "unsupported YAML node kind %d", n.Kind)
	}
}
