package config

import (
	"os"
	"regexp"
	"strings"
)

// envPattern matches ${NAME} and ${NAME:default}. Names cannot contain a
// colon or closing brace; defaults may contain colons.
var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::([^}]*))?\}`)

// ExpandEnv replaces every ${NAME} or ${NAME:default} occurrence in s with
// the process environment value, or the default when the variable is unset.
// An unset variable without a default passes through literally; incomplete
// environments are not a load failure.
func ExpandEnv(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(m string) string {
		inner := m[2 : len(m)-1]
		name, def, hasDefault := strings.Cut(inner, ":")
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		if hasDefault {
			return def
		}
		return m
	})
}

// expandTree applies ExpandEnv to every string scalar in the tree. Keys are
// never expanded. The tree is owned by the loader at this point and is
// mutated in place.
func expandTree(n *Node) {
	switch n.kind {
	case KindMapping:
		for _, k := range n.keys {
			expandTree(n.children[k])
		}
	case KindSequence:
		for _, item := range n.items {
			expandTree(item)
		}
	case KindScalar:
		if s, ok := n.value.(string); ok {
			n.value = ExpandEnv(s)
		}
	}
}
