package config

import (
	"github.com/sprigconfig/sprigconfig/pkg/secret"
)

// detectSecrets walks a freshly parsed tree and converts every string scalar
// of the exact shape ENC(<payload>) into a secret node. It runs after env
// expansion and before any merge; merge treats secret nodes as opaque
// scalars and never inspects ciphertext. Key resolution is not touched here:
// a load never fails because a secret's key is missing.
func detectSecrets(n *Node) {
	switch n.kind {
	case KindMapping:
		for _, k := range n.keys {
			detectSecrets(n.children[k])
		}
	case KindSequence:
		for _, item := range n.items {
			detectSecrets(item)
		}
	case KindScalar:
		s, ok := n.value.(string)
		if !ok {
			return
		}
		if lazy, ok := secret.FromMarker(s); ok {
			n.kind = KindSecret
			n.secret = lazy
			n.value = nil
		}
	}
}
