package config

import (
	"strings"

	"github.com/sprigconfig/sprigconfig/pkg/secret"
)

// Config is the immutable result of a load: the merged tree plus provenance
// metadata, exposed through dotted-key lookup. A Config is never mutated
// after construction and is safe for unsynchronized concurrent reads.
type Config struct {
	root *Node
	meta ProvenanceMetadata
}

// Root returns the merged tree. The tree is read-only by contract.
func (c *Config) Root() *Node {
	return c.root
}

// Profile returns the active profile of the load
func (c *Config) Profile() string {
	return c.meta.Profile
}

// Metadata returns the provenance record for the load. Slices are copied so
// callers cannot disturb the original.
func (c *Config) Metadata() ProvenanceMetadata {
	out := ProvenanceMetadata{Profile: c.meta.Profile}
	out.Sources = append(out.Sources, c.meta.Sources...)
	out.ImportTrace = append(out.ImportTrace, c.meta.ImportTrace...)
	return out
}

// Lookup resolves a dotted key ("a.b.c") through nested mappings and returns
// the node at that path.
func (c *Config) Lookup(key string) (*Node, bool) {
	node := c.root
	if key == "" {
		return node, true
	}
	for _, part := range strings.Split(key, ".") {
		if node.Kind() != KindMapping {
			return nil, false
		}
		child, ok := node.Child(part)
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}

// Get resolves a dotted key and returns its value: scalars as their Go
// value, secrets as *secret.LazySecret, mappings and sequences as nested
// map[string]interface{} / []interface{} with secrets embedded. A missing
// path reports false and never raises.
func (c *Config) Get(key string) (interface{}, bool) {
	node, ok := c.Lookup(key)
	if !ok {
		return nil, false
	}
	return nodeValue(node), true
}

// GetDefault resolves a dotted key, returning def when the path is missing.
func (c *Config) GetDefault(key string, def interface{}) interface{} {
	if v, ok := c.Get(key); ok {
		return v
	}
	return def
}

// GetString returns the string at key, or def when missing or not a string.
func (c *Config) GetString(key, def string) string {
	node, ok := c.Lookup(key)
	if !ok || node.Kind() != KindScalar {
		return def
	}
	if s, ok := node.Value().(string); ok {
		return s
	}
	return def
}

// GetInt returns the integer at key, or def when missing or not numeric.
// Whole-valued floats are accepted; YAML, JSON, and TOML scalars differ in
// which integer type they decode to.
func (c *Config) GetInt(key string, def int) int {
	node, ok := c.Lookup(key)
	if !ok || node.Kind() != KindScalar {
		return def
	}
	switch v := node.Value().(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		if v == float64(int(v)) {
			return int(v)
		}
	}
	return def
}

// GetBool returns the boolean at key, or def when missing or not a bool.
func (c *Config) GetBool(key string, def bool) bool {
	node, ok := c.Lookup(key)
	if !ok || node.Kind() != KindScalar {
		return def
	}
	if b, ok := node.Value().(bool); ok {
		return b
	}
	return def
}

// Secret returns the lazy secret at key.
func (c *Config) Secret(key string) (*secret.LazySecret, bool) {
	node, ok := c.Lookup(key)
	if !ok || node.Kind() != KindSecret {
		return nil, false
	}
	return node.Secret(), true
}

// nodeValue converts a node to its accessor representation. Secrets stay
// wrapped; revealing is always an explicit caller decision.
func nodeValue(n *Node) interface{} {
	switch n.Kind() {
	case KindMapping:
		out := make(map[string]interface{}, n.Len())
		for _, k := range n.keys {
			out[k] = nodeValue(n.children[k])
		}
		return out
	case KindSequence:
		out := make([]interface{}, 0, n.Len())
		for _, item := range n.items {
			out = append(out, nodeValue(item))
		}
		return out
	case KindSecret:
		return n.secret
	default:
		return n.value
	}
}
