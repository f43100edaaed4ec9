package config

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/sprigconfig/sprigconfig/pkg/errors"
)

// ImportsKey is the directive key recognized at any mapping depth. Its value
// must be a sequence of path strings relative to the configuration root.
const ImportsKey = "imports"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// resolver walks trees for imports directives, loads and recursively
// resolves the referenced files, merges their content at the position of
// the directive, and keeps the provenance ledger. A resolver lives for one
// load; the order counter spans the base document and the profile overlay.
type resolver struct {
	root  string // absolute, symlink-resolved configuration root
	ext   string // default extension for entries written without one
	merge MergeOptions
	log   *zap.Logger

	// stack holds the active resolution path for cycle detection
	stack []string
	trace []ImportTraceEntry
	order int
}

func newResolver(root, ext string, log *zap.Logger) *resolver {
	return &resolver{
		root:  root,
		ext:   ext,
		merge: MergeOptions{Logger: log},
		log:   log,
	}
}

// record appends one provenance entry for a file that was just opened.
func (r *resolver) record(file, importedBy, importKey string, depth int) {
	r.trace = append(r.trace, ImportTraceEntry{
		File:       file,
		ImportedBy: importedBy,
		ImportKey:  importKey,
		Depth:      depth,
		Order:      r.order,
	})
	r.order++
}

// sources projects the trace to just the file paths, preserving order.
func (r *resolver) sources() []string {
	out := make([]string, len(r.trace))
	for i, e := range r.trace {
		out[i] = e.File
	}
	return out
}

// loadDocument reads and parses one file, then applies env expansion and
// secret detection. The file's own extension selects the parser.
func (r *resolver) loadDocument(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "reading config file").
			WithDetail("path", path)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	f, ok := FormatFor(ext)
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeConfig, "unsupported config format %q", ext).
			WithDetail("path", path)
	}

	node, err := f.Parse(data)
	if err != nil {
		var e *errors.Error
		if stderrors.As(err, &e) {
			return nil, e.WithDetail("path", path)
		}
		return nil, err
	}

	expandTree(node)
	detectSecrets(node)
	return node, nil
}

// resolveImports processes every imports directive in the tree rooted at
// node, depth-first in declaration order. The node came from file, which
// must already be on the resolution stack; depth is that file's depth.
// The returned node replaces the input, which the resolver owns.
func (r *resolver) resolveImports(node *Node, file string, depth int) (*Node, error) {
	if node.Kind() != KindMapping {
		return node, nil
	}

	if directive, ok := node.Child(ImportsKey); ok {
		entries, err := importEntries(directive, file)
		if err != nil {
			return nil, err
		}
		// the directive is not part of the final tree, and leaving it in
		// place would skew partial-override detection during the merges
		node.Delete(ImportsKey)

		for _, entry := range entries {
			path, err := r.resolvePath(entry)
			if err != nil {
				return nil, err
			}

			if idx := r.stackIndex(path); idx >= 0 {
				return nil, cycleError(append(r.stack[idx:len(r.stack):len(r.stack)], path))
			}

			if _, err := os.Stat(path); err != nil {
				r.log.Warn("import target does not exist, skipped",
					zap.String("import", entry),
					zap.String("resolved", path),
					zap.String("imported_by", file))
				continue
			}

			imported, err := r.loadDocument(path)
			if err != nil {
				return nil, err
			}
			r.record(path, file, entry, depth+1)

			r.stack = append(r.stack, path)
			resolved, err := r.resolveImports(imported, path, depth+1)
			r.stack = r.stack[:len(r.stack)-1]
			if err != nil {
				return nil, err
			}

			r.log.Debug("import resolved",
				zap.String("file", path),
				zap.Int("depth", depth+1))

			// imported content merges at the position of the directive
			node = Merge(node, resolved, r.merge)
		}
	}

	// recurse into child structures; directives may sit under any key
	for _, k := range node.Keys() {
		child, _ := node.Child(k)
		switch child.Kind() {
		case KindMapping:
			resolved, err := r.resolveImports(child, file, depth)
			if err != nil {
				return nil, err
			}
			node.Set(k, resolved)
		case KindSequence:
			for i, item := range child.items {
				if item.Kind() != KindMapping {
					continue
				}
				resolved, err := r.resolveImports(item, file, depth)
				if err != nil {
					return nil, err
				}
				child.items[i] = resolved
			}
		}
	}

	return node, nil
}

// resolvePath turns a directive entry into an absolute path under the root,
// appending the loader's extension when the entry's basename has none. The
// resolved path must stay inside the root, including through symlinks.
func (r *resolver) resolvePath(entry string) (string, error) {
	key := entry
	if !strings.Contains(filepath.Base(key), ".") {
		key += "." + r.ext
	}

	var candidate string
	if filepath.IsAbs(key) {
		candidate = filepath.Clean(key)
	} else {
		candidate = filepath.Join(r.root, key)
	}

	resolved := candidate
	if p, err := filepath.EvalSymlinks(candidate); err == nil {
		resolved = p
	}

	rel, err := filepath.Rel(r.root, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", errors.Newf(errors.ErrorTypePathEscape,
			"import %q resolves outside configuration root %q", entry, r.root).
			WithDetail("resolved", resolved)
	}

	return resolved, nil
}

func (r *resolver) stackIndex(path string) int {
	for i, p := range r.stack {
		if p == path {
			return i
		}
	}
	return -1
}

// importEntries validates the directive shape: a sequence of path strings.
func importEntries(directive *Node, file string) ([]string, error) {
	if directive.Kind() != KindSequence {
		return nil, errors.Newf(errors.ErrorTypeParse,
			"%q must be a sequence of path strings", ImportsKey).
			WithDetail("path", file)
	}
	entries := make([]string, 0, directive.Len())
	for _, item := range directive.items {
		s, ok := item.Value().(string)
		if item.Kind() != KindScalar || !ok {
			return nil, errors.Newf(errors.ErrorTypeParse,
				"%q entries must be path strings", ImportsKey).
				WithDetail("path", file)
		}
		entries = append(entries, s)
	}
	return entries, nil
}

// cycleError renders the full cycle, e.g. "a.yml -> b.yml -> a.yml".
func cycleError(chain []string) error {
	names := make([]string, len(chain))
	for i, p := range chain {
		names[i] = filepath.Base(p)
	}
	return errors.Newf(errors.ErrorTypeCircularImport,
		"circular import detected: %s", strings.Join(names, " -> ")).
		WithDetail("cycle", chain)
}
