package config

import (
	"sort"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/sprigconfig/sprigconfig/pkg/errors"
)

func init() {
	RegisterFormat(tomlFormat{})
}

// tomlFormat parses TOML. go-toml does not expose document key order, so
// mapping keys are canonicalized by sorting; the loader only needs the order
// to be deterministic.
type tomlFormat struct{}

func (tomlFormat) Name() string { return "toml" }

func (tomlFormat) Extensions() []string { return []string{"toml"} }

func (tomlFormat) Parse(data []byte) (*Node, error) {
	var m map[string]interface{}
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeParse, "invalid TOML")
	}
	if m == nil {
		return NewMapping(), nil
	}
	return tomlMapping(m)
}

func tomlMapping(m map[string]interface{}) (*Node, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := NewMapping()
	for _, k := range keys {
		child, err := tomlValue(m[k])
		if err != nil {
			return nil, err
		}
		out.Set(k, child)
	}
	return out, nil
}

func tomlValue(v interface{}) (*Node, error) {
	switch t := v.(type) {
	case map[string]interface{}:
		return tomlMapping(t)
	case []interface{}:
		out := NewSequence()
		for _, item := range t {
			child, err := tomlValue(item)
			if err != nil {
				return nil, err
			}
			out.Append(child)
		}
		return out, nil
	case []map[string]interface{}:
		// array-of-tables form
		out := NewSequence()
		for _, item := range t {
			child, err := tomlMapping(item)
			if err != nil {
				return nil, err
			}
			out.Append(child)
		}
		return out, nil
	default:
		// string, int64, float64, bool, time values
		return NewScalar(v), nil
	}
}
