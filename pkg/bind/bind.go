// Package bind provides explicit, typed binding from a merged configuration
// to caller-defined structs and values. There is no registration and no
// field injection magic: callers invoke these functions at construction
// time against a Config's dotted-key accessor.
package bind

import (
	"github.com/mitchellh/mapstructure"

	"github.com/sprigconfig/sprigconfig/pkg/config"
	"github.com/sprigconfig/sprigconfig/pkg/errors"
	"github.com/sprigconfig/sprigconfig/pkg/secret"
)

// Options controls how secrets are rendered during binding.
type Options struct {
	// RevealSecrets decrypts secret values into their target fields.
	// When false, secrets bind as the ENC(**REDACTED**) placeholder.
	RevealSecrets bool
}

// Section decodes the mapping at a dotted key into out, which must be a
// pointer to a struct. Field names match keys case-insensitively; use
// mapstructure tags to override. Secrets bind as the redaction placeholder.
func Section(cfg *config.Config, key string, out interface{}) error {
	return SectionWith(cfg, key, out, Options{})
}

// SectionWith is Section with explicit secret handling.
func SectionWith(cfg *config.Config, key string, out interface{}, opts Options) error {
	v, ok := cfg.Get(key)
	if !ok {
		return errors.Newf(errors.ErrorTypeConfig, "no section at %q", key)
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return errors.Newf(errors.ErrorTypeConfig, "value at %q is not a mapping", key)
	}

	plain, err := renderSecrets(m, opts)
	if err != nil {
		return err
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "building decoder")
	}
	if err := dec.Decode(plain); err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "binding section "+key)
	}
	return nil
}

// Value resolves one dotted key to a typed value, returning def when the
// key is missing or cannot be converted. Numeric conversions are weak:
// an int64 scalar binds to an int target.
func Value[T any](cfg *config.Config, key string, def T) T {
	v, ok := cfg.Get(key)
	if !ok {
		return def
	}
	if t, ok := v.(T); ok {
		return t
	}
	var out T
	if err := mapstructure.WeakDecode(v, &out); err != nil {
		return def
	}
	return out
}

// renderSecrets rewrites *secret.LazySecret values in a plain tree per the
// binding options.
func renderSecrets(v interface{}, opts Options) (interface{}, error) {
	switch t := v.(type) {
	case *secret.LazySecret:
		if !opts.RevealSecrets {
			return secret.Redacted, nil
		}
		return t.Reveal()
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, child := range t {
			r, err := renderSecrets(child, opts)
			if err != nil {
				return nil, err
			}
			out[k] = r
		}
		return out, nil
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, child := range t {
			r, err := renderSecrets(child, opts)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	default:
		return v, nil
	}
}
