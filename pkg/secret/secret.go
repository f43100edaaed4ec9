// Package secret implements lazy decryption for ENC(...) configuration values.
//
// A secret value is a Fernet token wrapped in an ENC(...) marker. The token
// stays encrypted through loading and merging; decryption happens only when
// Reveal is called. The decryption key is resolved, in priority order, from
// an explicit key passed to RevealWith, a process-wide KeyProvider, or the
// SPRIG_SECRET_KEY environment variable.
package secret

import (
	"os"
	"strings"
	"sync"

	"github.com/fernet/fernet-go"

	"github.com/sprigconfig/sprigconfig/pkg/errors"
)

const (
	// EnvKey is the environment variable consulted for the decryption key
	// when no explicit key or provider is configured.
	EnvKey = "SPRIG_SECRET_KEY"

	// Redacted is the placeholder rendered in place of secret values when
	// a configuration is serialized without revealing secrets.
	Redacted = "ENC(**REDACTED**)"

	markerPrefix = "ENC("
	markerSuffix = ")"
)

// KeyProvider supplies a decryption key from a process-wide source, such as
// a vault client or a test fixture. It reports false when no key is available.
type KeyProvider func() (string, bool)

var (
	providerMu sync.RWMutex
	provider   KeyProvider
)

// SetKeyProvider installs a process-wide key provider. It takes precedence
// over the SPRIG_SECRET_KEY environment variable but is overridden by an
// explicit key passed to RevealWith. Passing nil removes the provider.
func SetKeyProvider(p KeyProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	provider = p
}

// IsMarker reports whether s has the exact ENC(<payload>) shape.
func IsMarker(s string) bool {
	return strings.HasPrefix(s, markerPrefix) && strings.HasSuffix(s, markerSuffix)
}

// Payload extracts the ciphertext from an ENC(<payload>) marker.
func Payload(s string) (string, bool) {
	if !IsMarker(s) {
		return "", false
	}
	return s[len(markerPrefix) : len(s)-len(markerSuffix)], true
}

// LazySecret holds an encrypted value and defers decryption until Reveal.
// Decryption is idempotent; the plaintext is memoized within the instance.
// A LazySecret is safe for concurrent use.
type LazySecret struct {
	ciphertext string

	mu        sync.Mutex
	plaintext string
	revealed  bool
}

// New creates a LazySecret from a raw Fernet token (the payload inside the
// ENC(...) marker).
func New(ciphertext string) *LazySecret {
	return &LazySecret{ciphertext: ciphertext}
}

// FromMarker creates a LazySecret from an ENC(<payload>) marker string.
// It reports false if s does not have the marker shape.
func FromMarker(s string) (*LazySecret, bool) {
	payload, ok := Payload(s)
	if !ok {
		return nil, false
	}
	return New(payload), true
}

// Ciphertext returns the encrypted payload without decrypting it.
func (s *LazySecret) Ciphertext() string {
	return s.ciphertext
}

// String renders the redaction placeholder, never the plaintext. This keeps
// accidental %v formatting of a secret from leaking its value.
func (s *LazySecret) String() string {
	return Redacted
}

// Reveal decrypts the secret using the standard key resolution chain:
// process-wide provider first, then SPRIG_SECRET_KEY.
func (s *LazySecret) Reveal() (string, error) {
	key, err := resolveKey()
	if err != nil {
		return "", err
	}
	return s.RevealWith(key)
}

// RevealWith decrypts the secret with an explicit key, bypassing the
// provider and environment lookup.
func (s *LazySecret) RevealWith(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.revealed {
		return s.plaintext, nil
	}

	k, err := fernet.DecodeKey(key)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrorTypeSecret, "invalid secret key")
	}

	msg := fernet.VerifyAndDecrypt([]byte(s.ciphertext), 0, []*fernet.Key{k})
	if msg == nil {
		return "", errors.New(errors.ErrorTypeSecret, "ciphertext does not match key")
	}

	s.plaintext = string(msg)
	s.revealed = true
	return s.plaintext, nil
}

// Zeroize drops the memoized plaintext so a later Reveal decrypts again.
func (s *LazySecret) Zeroize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plaintext = ""
	s.revealed = false
}

func resolveKey() (string, error) {
	providerMu.RLock()
	p := provider
	providerMu.RUnlock()

	if p != nil {
		if key, ok := p(); ok {
			return key, nil
		}
	}

	if key := os.Getenv(EnvKey); key != "" {
		return key, nil
	}

	return "", errors.Newf(errors.ErrorTypeSecret,
		"no secret key available: set %s or install a key provider", EnvKey)
}
