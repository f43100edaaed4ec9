package config

import (
	"go.uber.org/zap"

	"github.com/sprigconfig/sprigconfig/pkg/logger"
)

// SuppressWarningsKey is the recognized top-level flag that silences merge
// collision warnings for merges involving the document that sets it.
const SuppressWarningsKey = "suppress_config_merge_warnings"

// MergeOptions controls diagnostics for a merge pass.
type MergeOptions struct {
	// SuppressWarnings silences partial-override collision warnings
	SuppressWarnings bool
	// Logger receives collision warnings; defaults to the global logger
	Logger *zap.Logger
}

// Merge combines two trees and returns a new tree; neither input is mutated.
//
// Rules by node kind pair:
//   - mapping + mapping: recursive merge, key set is the union, overlay wins
//     for keys present on both sides
//   - sequence + sequence: the overlay sequence fully replaces the base
//   - anything else: the overlay value wins outright, including type changes
//
// Secret nodes merge exactly like scalars; ciphertext is never compared.
//
// When an overlay mapping provides a non-empty strict subset of the base
// mapping's keys, a collision warning naming the partially overridden path
// is emitted. Partial overrides are legal; the warning exists because they
// are a common source of surprising half-replaced sections.
func Merge(base, overlay *Node, opts MergeOptions) *Node {
	if opts.Logger == nil {
		opts.Logger = logger.Get()
	}
	return mergeNodes(base, overlay, "", opts)
}

func mergeNodes(base, overlay *Node, path string, opts MergeOptions) *Node {
	if base == nil {
		return overlay.Clone()
	}
	if overlay == nil {
		return base.Clone()
	}

	if base.kind == KindMapping && overlay.kind == KindMapping {
		warnPartialOverride(base, overlay, path, opts)

		out := NewMapping()
		for _, k := range base.keys {
			if ov, ok := overlay.children[k]; ok {
				out.Set(k, mergeNodes(base.children[k], ov, childPath(path, k), opts))
			} else {
				out.Set(k, base.children[k].Clone())
			}
		}
		for _, k := range overlay.keys {
			if _, ok := base.children[k]; !ok {
				out.Set(k, overlay.children[k].Clone())
			}
		}
		return out
	}

	// sequences replace wholesale; scalars and type changes: overlay wins
	return overlay.Clone()
}

func warnPartialOverride(base, overlay *Node, path string, opts MergeOptions) {
	if opts.SuppressWarnings {
		return
	}
	if overlay.Len() == 0 || overlay.Len() >= base.Len() {
		return
	}
	for _, k := range overlay.keys {
		if _, ok := base.children[k]; !ok {
			return
		}
	}

	key := path
	if key == "" {
		key = "(root)"
	}
	opts.Logger.Warn("partial override of structured value",
		zap.String("key", key),
		zap.Int("base_keys", base.Len()),
		zap.Int("overlay_keys", overlay.Len()))
}

func childPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
