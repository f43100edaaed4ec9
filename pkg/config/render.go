package config

import (
	"bytes"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/sprigconfig/sprigconfig/pkg/errors"
	"github.com/sprigconfig/sprigconfig/pkg/secret"
)

// DumpOptions controls how a configuration is serialized to plain data.
type DumpOptions struct {
	// RevealSecrets decrypts every secret during rendering. When false,
	// secrets render as the fixed placeholder ENC(**REDACTED**). When
	// true, any resolution failure aborts the render with an error rather
	// than being silently omitted.
	RevealSecrets bool
}

// ToPlain converts the merged tree to nested map[string]interface{},
// []interface{}, and scalar values, applying the secret policy in opts.
func (c *Config) ToPlain(opts DumpOptions) (map[string]interface{}, error) {
	v, err := plainValue(c.root, opts)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, errors.New(errors.ErrorTypeConfig, "merged root is not a mapping")
	}
	return m, nil
}

func plainValue(n *Node, opts DumpOptions) (interface{}, error) {
	switch n.Kind() {
	case KindMapping:
		out := make(map[string]interface{}, n.Len())
		for _, k := range n.keys {
			v, err := plainValue(n.children[k], opts)
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	case KindSequence:
		out := make([]interface{}, 0, n.Len())
		for _, item := range n.items {
			v, err := plainValue(item, opts)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case KindSecret:
		if !opts.RevealSecrets {
			return secret.Redacted, nil
		}
		return n.secret.Reveal()
	default:
		return n.value, nil
	}
}

// RenderYAML serializes the configuration as YAML, preserving merged
// document key order. Output is deterministic: the same load renders
// byte-identical text.
func RenderYAML(c *Config, opts DumpOptions) ([]byte, error) {
	root, err := yamlNode(c.root, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "encoding YAML")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "encoding YAML")
	}
	return buf.Bytes(), nil
}

func yamlNode(n *Node, opts DumpOptions) (*yaml.Node, error) {
	switch n.Kind() {
	case KindMapping:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range n.keys {
			keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
			valNode, err := yamlNode(n.children[k], opts)
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, keyNode, valNode)
		}
		return out, nil
	case KindSequence:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range n.items {
			child, err := yamlNode(item, opts)
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, child)
		}
		return out, nil
	case KindSecret:
		v := secret.Redacted
		if opts.RevealSecrets {
			plain, err := n.secret.Reveal()
			if err != nil {
				return nil, err
			}
			v = plain
		}
		out := &yaml.Node{}
		if err := out.Encode(v); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "encoding YAML scalar")
		}
		return out, nil
	default:
		out := &yaml.Node{}
		if err := out.Encode(n.value); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "encoding YAML scalar")
		}
		return out, nil
	}
}

// RenderJSON serializes the configuration as indented JSON, preserving
// merged document key order.
func RenderJSON(c *Config, opts DumpOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, c.root, opts, ""); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, n *Node, opts DumpOptions, indent string) error {
	const step = "  "
	switch n.Kind() {
	case KindMapping:
		if n.Len() == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		inner := indent + step
		for i, k := range n.keys {
			buf.WriteString(inner)
			if err := writeJSONScalar(buf, k); err != nil {
				return err
			}
			buf.WriteString(": ")
			if err := writeJSON(buf, n.children[k], opts, inner); err != nil {
				return err
			}
			if i < len(n.keys)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(indent + "}")
		return nil
	case KindSequence:
		if n.Len() == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		inner := indent + step
		for i, item := range n.items {
			buf.WriteString(inner)
			if err := writeJSON(buf, item, opts, inner); err != nil {
				return err
			}
			if i < len(n.items)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(indent + "]")
		return nil
	case KindSecret:
		if !opts.RevealSecrets {
			return writeJSONScalar(buf, secret.Redacted)
		}
		plain, err := n.secret.Reveal()
		if err != nil {
			return err
		}
		return writeJSONScalar(buf, plain)
	default:
		return writeJSONScalar(buf, n.value)
	}
}

func writeJSONScalar(buf *bytes.Buffer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "encoding JSON scalar")
	}
	buf.Write(data)
	return nil
}
