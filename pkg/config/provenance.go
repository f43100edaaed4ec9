package config

// ImportTraceEntry records one file opened during a load. Entries are
// appended in the exact sequence files are opened; Order is unique and
// strictly increasing across the whole load.
type ImportTraceEntry struct {
	// File is the absolute path of the opened document
	File string `json:"file" yaml:"file" mapstructure:"file"`
	// ImportedBy is the absolute path of the importing document, or ""
	// for the base document
	ImportedBy string `json:"imported_by" yaml:"imported_by" mapstructure:"imported_by"`
	// ImportKey is the directive entry exactly as written, or "" for the
	// base document
	ImportKey string `json:"import_key" yaml:"import_key" mapstructure:"import_key"`
	// Depth is the import nesting depth; the base document is 0
	Depth int `json:"depth" yaml:"depth" mapstructure:"depth"`
	// Order is the global open-order counter
	Order int `json:"order" yaml:"order" mapstructure:"order"`
}

// ProvenanceMetadata describes where a merged configuration came from.
type ProvenanceMetadata struct {
	// Profile is the active profile for the load
	Profile string `json:"profile" yaml:"profile"`
	// Sources lists the absolute path of every opened file, in open order.
	// A file imported via two distinct non-cyclic paths appears once per
	// resolution path.
	Sources []string `json:"sources" yaml:"sources"`
	// ImportTrace is the full open ledger; Sources is its File projection
	ImportTrace []ImportTraceEntry `json:"import_trace" yaml:"import_trace"`
}
