package config

import (
	"github.com/sprigconfig/sprigconfig/pkg/secret"
)

// Kind identifies the variant of a Node.
type Kind int

const (
	// KindMapping is an ordered set of string keys to child nodes
	KindMapping Kind = iota
	// KindSequence is an ordered list of child nodes
	KindSequence
	// KindScalar is a leaf value (string, number, bool, or nil)
	KindScalar
	// KindSecret is an encrypted leaf value wrapped for deferred decryption
	KindSecret
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	case KindScalar:
		return "scalar"
	case KindSecret:
		return "secret"
	default:
		return "unknown"
	}
}

// Node is one vertex of a configuration tree: a mapping with insertion-ordered
// keys, a sequence, a scalar, or a lazy secret. Trees are produced fresh by
// parsing and by Merge; a tree handed to a caller must be treated as read-only.
type Node struct {
	kind     Kind
	keys     []string
	children map[string]*Node
	items    []*Node
	value    interface{}
	secret   *secret.LazySecret
}

// NewMapping creates an empty mapping node
func NewMapping() *Node {
	return &Node{kind: KindMapping, children: make(map[string]*Node)}
}

// NewSequence creates a sequence node with the given items
func NewSequence(items ...*Node) *Node {
	return &Node{kind: KindSequence, items: items}
}

// NewScalar creates a scalar node holding value
func NewScalar(value interface{}) *Node {
	return &Node{kind: KindScalar, value: value}
}

// NewSecretNode creates a node wrapping a lazy secret
func NewSecretNode(s *secret.LazySecret) *Node {
	return &Node{kind: KindSecret, secret: s}
}

// Kind returns the node's variant
func (n *Node) Kind() Kind {
	return n.kind
}

// Keys returns the mapping's keys in insertion order. The returned slice is
// a copy.
func (n *Node) Keys() []string {
	out := make([]string, len(n.keys))
	copy(out, n.keys)
	return out
}

// Child returns the mapping value for key
func (n *Node) Child(key string) (*Node, bool) {
	if n.kind != KindMapping {
		return nil, false
	}
	c, ok := n.children[key]
	return c, ok
}

// Set inserts or replaces the mapping value for key. A new key is appended
// to the key order; replacing an existing key keeps its position.
func (n *Node) Set(key string, child *Node) {
	if n.kind != KindMapping {
		return
	}
	if _, ok := n.children[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.children[key] = child
}

// Delete removes key from the mapping
func (n *Node) Delete(key string) {
	if n.kind != KindMapping {
		return
	}
	if _, ok := n.children[key]; !ok {
		return
	}
	delete(n.children, key)
	for i, k := range n.keys {
		if k == key {
			n.keys = append(n.keys[:i], n.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of keys for a mapping or items for a sequence
func (n *Node) Len() int {
	switch n.kind {
	case KindMapping:
		return len(n.keys)
	case KindSequence:
		return len(n.items)
	default:
		return 0
	}
}

// Items returns the sequence's items. The returned slice is a copy; the
// nodes themselves are shared.
func (n *Node) Items() []*Node {
	out := make([]*Node, len(n.items))
	copy(out, n.items)
	return out
}

// Append adds items to the end of a sequence
func (n *Node) Append(items ...*Node) {
	if n.kind != KindSequence {
		return
	}
	n.items = append(n.items, items...)
}

// Value returns the scalar value
func (n *Node) Value() interface{} {
	return n.value
}

// Secret returns the wrapped lazy secret of a secret node
func (n *Node) Secret() *secret.LazySecret {
	return n.secret
}

// Clone returns a deep copy of the tree. Secret nodes share the underlying
// LazySecret so a memoized plaintext survives merging.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	switch n.kind {
	case KindMapping:
		out := NewMapping()
		for _, k := range n.keys {
			out.Set(k, n.children[k].Clone())
		}
		return out
	case KindSequence:
		items := make([]*Node, len(n.items))
		for i, item := range n.items {
			items[i] = item.Clone()
		}
		return NewSequence(items...)
	case KindSecret:
		return NewSecretNode(n.secret)
	default:
		return NewScalar(n.value)
	}
}

// boolAt reports whether key holds a scalar true at the top level of a
// mapping. Used for recognized boolean flags such as the merge warning
// suppression switch.
func (n *Node) boolAt(key string) bool {
	c, ok := n.Child(key)
	if !ok || c.kind != KindScalar {
		return false
	}
	b, ok := c.value.(bool)
	return ok && b
}
