package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/sprigconfig/sprigconfig/pkg/errors"
	"github.com/sprigconfig/sprigconfig/pkg/logger"
)

// Environment variables consulted when Options fields are left empty.
const (
	// EnvConfigDir supplies the configuration root directory
	EnvConfigDir = "SPRIG_CONFIG_DIR"
	// EnvProfile supplies the active profile
	EnvProfile = "SPRIG_PROFILE"
	// EnvFormat supplies the default document format extension
	EnvFormat = "SPRIG_CONFIG_FORMAT"
)

// Reserved output paths injected by the loader.
const (
	// ProfileKey is where the active profile fact is written. It always
	// reflects the runtime profile; document-supplied values at this path
	// are overwritten with a warning.
	ProfileKey = "app.profile"
	// MetadataKey is where provenance metadata is attached. User-supplied
	// values at the exact metadata paths are preserved untouched.
	MetadataKey = "sprigconfig._meta"
)

// DefaultProfile is used when neither Options.Profile nor SPRIG_PROFILE is set.
const DefaultProfile = "default"

// Options configures a single load.
type Options struct {
	// Dir is the configuration root directory. Falls back to
	// SPRIG_CONFIG_DIR when empty.
	Dir string
	// Profile selects the overlay document application-<profile>.<ext>.
	// Falls back to SPRIG_PROFILE, then to "default".
	Profile string
	// Format is the document extension without the dot ("yml", "yaml",
	// "json", "toml"). Falls back to SPRIG_CONFIG_FORMAT, then to "yml".
	Format string
	// GuardedProfiles are profiles whose overlay file is mandatory.
	// Defaults to {"prod"} when nil.
	GuardedProfiles []string
	// Logger receives merge warnings and resolution traces; defaults to
	// the global logger.
	Logger *zap.Logger
}

// loadState tracks the loader's progress through its fixed sequence. Any
// failure is terminal; no partial result is ever returned.
type loadState int

const (
	stateNotStarted loadState = iota
	stateBaseLoaded
	stateBaseImportsResolved
	stateProfileLoaded
	stateProfileImportsResolved
	stateMerged
	stateMetadataInjected
	stateDone
)

// Load reads the configuration directory and produces the merged, immutable
// result: base document, its imports, the profile overlay, and the overlay's
// imports, in that precedence order. See the package documentation for the
// directory layout contract.
func Load(opts Options) (*Config, error) {
	opts, err := normalizeOptions(opts)
	if err != nil {
		return nil, err
	}

	l := &loader{opts: opts, log: opts.Logger, state: stateNotStarted}
	return l.load()
}

// normalizeOptions applies env fallbacks and defaults, and validates the
// format. Used by Load and by Store for cache keying.
func normalizeOptions(opts Options) (Options, error) {
	if opts.Dir == "" {
		opts.Dir = os.Getenv(EnvConfigDir)
	}
	if opts.Dir == "" {
		return opts, errors.Newf(errors.ErrorTypeConfig,
			"no configuration directory: set Options.Dir or %s", EnvConfigDir)
	}

	if opts.Profile == "" {
		opts.Profile = os.Getenv(EnvProfile)
	}
	if opts.Profile == "" {
		opts.Profile = DefaultProfile
	}

	if opts.Format == "" {
		opts.Format = os.Getenv(EnvFormat)
	}
	if opts.Format == "" {
		opts.Format = "yml"
	}
	if _, ok := FormatFor(opts.Format); !ok {
		return opts, errors.Newf(errors.ErrorTypeConfig,
			"unsupported config format %q (supported: %v)", opts.Format, SupportedExtensions())
	}

	if opts.GuardedProfiles == nil {
		opts.GuardedProfiles = []string{"prod"}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Get()
	}
	return opts, nil
}

type loader struct {
	opts  Options
	log   *zap.Logger
	state loadState
	r     *resolver
}

func (l *loader) load() (*Config, error) {
	root, err := l.resolveRoot()
	if err != nil {
		return nil, err
	}
	l.r = newResolver(root, l.opts.Format, l.log)

	// base document is mandatory
	basePath := filepath.Join(root, "application."+l.opts.Format)
	if _, err := os.Stat(basePath); err != nil {
		return nil, errors.Newf(errors.ErrorTypeMissingFile,
			"base document %s not found in %s", filepath.Base(basePath), root)
	}
	base, err := l.r.loadDocument(basePath)
	if err != nil {
		return nil, err
	}
	l.r.record(basePath, "", "", 0)
	l.state = stateBaseLoaded

	suppress := base.boolAt(SuppressWarningsKey)
	l.r.merge.SuppressWarnings = suppress

	l.r.stack = []string{basePath}
	base, err = l.r.resolveImports(base, basePath, 0)
	if err != nil {
		return nil, err
	}
	l.state = stateBaseImportsResolved

	// profile overlay: optional unless the profile is guarded
	overlay, err := l.loadOverlay(root, basePath, &suppress)
	if err != nil {
		return nil, err
	}
	l.state = stateProfileImportsResolved

	merged := base
	if overlay != nil {
		merged = Merge(base, overlay, MergeOptions{SuppressWarnings: suppress, Logger: l.log})
	}
	l.state = stateMerged

	l.injectProfile(merged)
	l.injectMetadata(merged)
	l.state = stateMetadataInjected

	cfg := &Config{
		root: merged,
		meta: ProvenanceMetadata{
			Profile:     l.opts.Profile,
			Sources:     l.r.sources(),
			ImportTrace: l.r.trace,
		},
	}
	l.state = stateDone
	return cfg, nil
}

// resolveRoot requires the configuration root to exist and pins it to an
// absolute, symlink-resolved path so import escape checks are exact.
func (l *loader) resolveRoot() (string, error) {
	info, err := os.Stat(l.opts.Dir)
	if err != nil || !info.IsDir() {
		return "", errors.Newf(errors.ErrorTypeMissingDirectory,
			"configuration directory %q does not exist", l.opts.Dir)
	}
	abs, err := filepath.Abs(l.opts.Dir)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrorTypeMissingDirectory, "resolving configuration directory")
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	return abs, nil
}

// loadOverlay loads and import-resolves the profile document. Returns nil
// when the overlay is absent and the profile is not guarded.
func (l *loader) loadOverlay(root, basePath string, suppress *bool) (*Node, error) {
	name := fmt.Sprintf("application-%s.%s", l.opts.Profile, l.opts.Format)
	path := filepath.Join(root, name)

	if _, err := os.Stat(path); err != nil {
		if l.isGuarded() {
			return nil, errors.Newf(errors.ErrorTypeMissingProfile,
				"profile %q is guarded but %s not found in %s", l.opts.Profile, name, root)
		}
		l.log.Debug("no profile overlay", zap.String("profile", l.opts.Profile))
		return nil, nil
	}

	overlay, err := l.r.loadDocument(path)
	if err != nil {
		return nil, err
	}
	l.r.record(path, basePath, name, 1)
	l.state = stateProfileLoaded

	if overlay.boolAt(SuppressWarningsKey) {
		*suppress = true
	}
	l.r.merge.SuppressWarnings = *suppress

	l.r.stack = []string{path}
	return l.r.resolveImports(overlay, path, 1)
}

func (l *loader) isGuarded() bool {
	for _, p := range l.opts.GuardedProfiles {
		if p == l.opts.Profile {
			return true
		}
	}
	return false
}

// injectProfile writes the active profile at ProfileKey. The profile is a
// runtime fact, never a file-supplied fact: document values there are
// overwritten, with a warning rather than an error.
func (l *loader) injectProfile(root *Node) {
	app, ok := root.Child("app")
	if !ok || app.Kind() != KindMapping {
		if ok {
			l.log.Warn("document-supplied value at reserved path replaced",
				zap.String("key", "app"))
		}
		app = NewMapping()
		root.Set("app", app)
	}

	if existing, ok := app.Child("profile"); ok {
		if existing.Kind() != KindScalar || existing.Value() != l.opts.Profile {
			l.log.Warn("document-supplied value at reserved path overwritten",
				zap.String("key", ProfileKey),
				zap.String("profile", l.opts.Profile))
		}
	}
	app.Set("profile", NewScalar(l.opts.Profile))
}

// injectMetadata attaches provenance under MetadataKey. Unlike the profile
// fact, metadata injection is non-destructive: a user-supplied value at any
// of the exact metadata paths is preserved untouched.
func (l *loader) injectMetadata(root *Node) {
	ns, ok := root.Child("sprigconfig")
	if ok && ns.Kind() != KindMapping {
		l.log.Debug("metadata not injected: reserved path holds a user value",
			zap.String("key", "sprigconfig"))
		return
	}
	if !ok {
		ns = NewMapping()
		root.Set("sprigconfig", ns)
	}

	meta, ok := ns.Child("_meta")
	if ok && meta.Kind() != KindMapping {
		l.log.Debug("metadata not injected: reserved path holds a user value",
			zap.String("key", MetadataKey))
		return
	}
	if !ok {
		meta = NewMapping()
		ns.Set("_meta", meta)
	}

	setDefault := func(key string, value *Node) {
		if _, exists := meta.Child(key); !exists {
			meta.Set(key, value)
		}
	}

	setDefault("profile", NewScalar(l.opts.Profile))

	sources := NewSequence()
	for _, s := range l.r.sources() {
		sources.Append(NewScalar(s))
	}
	setDefault("sources", sources)

	trace := NewSequence()
	for _, e := range l.r.trace {
		entry := NewMapping()
		entry.Set("file", NewScalar(e.File))
		entry.Set("imported_by", NewScalar(e.ImportedBy))
		entry.Set("import_key", NewScalar(e.ImportKey))
		entry.Set("depth", NewScalar(e.Depth))
		entry.Set("order", NewScalar(e.Order))
		trace.Append(entry)
	}
	setDefault("import_trace", trace)
}
