package config

import (
	"sort"
	"strings"
	"sync"
)

// Format parses raw document text into a canonical tree. The engine is
// agnostic to which concrete syntax produced the tree; adapters register
// themselves here keyed by file extension.
type Format interface {
	// Name is the human-readable format name ("yaml", "json", "toml")
	Name() string
	// Extensions lists the file extensions handled by this format,
	// without the leading dot
	Extensions() []string
	// Parse converts raw document text into a tree. The document root
	// must be a mapping; an empty document parses to an empty mapping.
	Parse(data []byte) (*Node, error)
}

var (
	formatMu sync.RWMutex
	formats  = make(map[string]Format)
)

// RegisterFormat makes a format available for the extensions it reports.
// Later registrations for the same extension win.
func RegisterFormat(f Format) {
	formatMu.Lock()
	defer formatMu.Unlock()
	for _, ext := range f.Extensions() {
		formats[strings.TrimPrefix(ext, ".")] = f
	}
}

// FormatFor returns the format registered for the extension
func FormatFor(ext string) (Format, bool) {
	formatMu.RLock()
	defer formatMu.RUnlock()
	f, ok := formats[strings.TrimPrefix(ext, ".")]
	return f, ok
}

// SupportedExtensions returns the registered extensions, sorted
func SupportedExtensions() []string {
	formatMu.RLock()
	defer formatMu.RUnlock()
	out := make([]string, 0, len(formats))
	for ext := range formats {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}
