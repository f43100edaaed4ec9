// Package sprigconfig provides a deterministic, profile-aware configuration
// loader for directories of hierarchical configuration files (YAML, JSON, or
// TOML).
//
// A configuration directory contains a mandatory base document and optional
// profile overlays:
//
//	config/
//	  application.yml
//	  application-dev.yml
//	  application-prod.yml
//	  imports/
//	    database.yml
//	    queues.yml
//
// Loading merges the base document, its imports, the active profile overlay,
// and the overlay's imports into a single immutable result. Any document may
// import other documents with an `imports` key, at the root or nested under
// any mapping, and imported content is merged at the position of the
// importing node:
//
//	etl:
//	  jobs:
//	    imports:
//	      - imports/job-defaults
//
// # Key Features
//
//   - Deep, order-sensitive merging: profile overlays win over the base,
//     imports win at their position, sequences replace rather than append.
//   - Recursive imports with cycle detection, path-escape protection, and a
//     complete provenance ledger (which files contributed, in what order, at
//     what depth).
//   - ${VAR} and ${VAR:default} environment expansion in scalar values.
//   - Lazy secrets: scalar values of the form ENC(<token>) stay encrypted
//     until explicitly revealed.
//   - Dotted-key access: cfg.GetString("server.host", "localhost").
//
// # Quick Start
//
//	import "github.com/sprigconfig/sprigconfig/pkg/config"
//
//	cfg, err := config.Load(config.Options{
//	    Dir:     "config",
//	    Profile: "dev",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	port := cfg.GetInt("server.port", 8080)
//
// # Key Packages
//
//	pkg/config   - Loader, deep merge, import resolution, provenance
//	pkg/secret   - Lazy ENC(...) secrets and key resolution
//	pkg/bind     - Typed section and value binding
//	pkg/registry - _target_-style factory instantiation
//	pkg/errors   - Structured error handling
//	pkg/logger   - Structured logging
//
// The sprigconfig CLI (cmd/sprigconfig) renders the merged result of a
// configuration directory for inspection:
//
//	sprigconfig dump --config-dir config --profile dev
package sprigconfig
