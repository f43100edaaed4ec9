// Package config implements the resolution-and-merge engine for sprigconfig.
//
// A load combines four inputs into one deterministic, immutable result:
// the base document (application.<ext>), the base document's imports, the
// active profile overlay (application-<profile>.<ext>), and the overlay's
// imports. Later inputs win over earlier ones for overlapping keys.
//
// # Imports
//
// Any mapping, at any depth, may carry an `imports` key whose value is a
// sequence of path strings relative to the configuration root:
//
//	etl:
//	  jobs:
//	    imports:
//	      - imports/job-defaults
//	      - imports/overrides.yml
//
// Entries without an extension inherit the loader's format. Each file is
// loaded, recursively resolved, and merged at the position of the importing
// node (here under etl.jobs, not at the document root). Resolution is
// depth-first in declaration order. Cycles fail the load with an error that
// renders the full chain; importing the same file from two non-overlapping
// paths (a diamond) is legal and recorded once per resolution path.
//
// # Merge rules
//
// Mappings merge recursively (union of keys, overlay wins per key),
// sequences replace wholesale, and scalar or type-changing overlays win
// outright. An overlay that provides only a strict subset of a mapping's
// keys emits a non-fatal collision warning, silenced by setting
// suppress_config_merge_warnings: true at the top level of a document.
//
// # Provenance
//
// Every opened file appends an ImportTraceEntry with its importer, depth,
// and a strictly increasing order. The ledger is available from
// Config.Metadata and is also injected into the tree under
// sprigconfig._meta (non-destructively; user values at those exact paths
// are preserved). The active profile is injected at app.profile and always
// reflects the runtime profile.
//
// # Secrets and environment expansion
//
// String scalars of the exact shape ENC(<token>) are wrapped as lazy
// secrets at parse time and stay encrypted until explicitly revealed.
// ${VAR} and ${VAR:default} placeholders in string scalars are expanded
// from the process environment before secret detection; unresolved
// placeholders pass through literally.
//
// # Concurrency
//
// A load is strictly synchronous. The resulting Config is immutable and
// safe for unsynchronized concurrent reads; Store provides the optional
// initialize-once discipline on top.
package config
