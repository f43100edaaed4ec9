package config

import (
	"path/filepath"
	"sync"

	"github.com/sprigconfig/sprigconfig/pkg/errors"
)

// Store caches loaded configurations per (directory, profile) pair. It is
// the process-wide reuse collaborator: the engine itself has no global
// state, and every cached entry is an ordinary immutable Config. All
// methods are safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	cache map[string]*Config
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{cache: make(map[string]*Config)}
}

var defaultStore = NewStore()

// DefaultStore returns the package-level store for callers that want one
// shared cache per process.
func DefaultStore() *Store {
	return defaultStore
}

// Get returns the cached configuration for opts, loading it on first use.
func (s *Store) Get(opts Options) (*Config, error) {
	opts, key, err := s.key(opts)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if cfg, ok := s.cache[key]; ok {
		return cfg, nil
	}
	cfg, err := Load(opts)
	if err != nil {
		return nil, err
	}
	s.cache[key] = cfg
	return cfg, nil
}

// Init loads and caches the configuration for opts, failing with an
// already_initialized error when an entry exists. Use Init at application
// entry points where double initialization indicates a wiring bug.
func (s *Store) Init(opts Options) (*Config, error) {
	opts, key, err := s.key(opts)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cache[key]; ok {
		return nil, errors.Newf(errors.ErrorTypeAlreadyInitialized,
			"configuration already initialized for dir %q profile %q", opts.Dir, opts.Profile)
	}
	cfg, err := Load(opts)
	if err != nil {
		return nil, err
	}
	s.cache[key] = cfg
	return cfg, nil
}

// Reload forces a fresh load for opts, replacing any cached entry. It
// always returns a new Config instance.
func (s *Store) Reload(opts Options) (*Config, error) {
	opts, key, err := s.key(opts)
	if err != nil {
		return nil, err
	}

	cfg, err := Load(opts)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[key] = cfg
	s.mu.Unlock()
	return cfg, nil
}

// Reset clears the cache. Test fixtures only; production code should never
// need to forget loaded configuration.
func (s *Store) Reset() {
	s.mu.Lock()
	s.cache = make(map[string]*Config)
	s.mu.Unlock()
}

func (s *Store) key(opts Options) (Options, string, error) {
	opts, err := normalizeOptions(opts)
	if err != nil {
		return opts, "", err
	}
	abs, err := filepath.Abs(opts.Dir)
	if err != nil {
		return opts, "", errors.Wrap(err, errors.ErrorTypeConfig, "resolving configuration directory")
	}
	return opts, abs + "\x00" + opts.Profile, nil
}
