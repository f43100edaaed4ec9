package config

import (
	"bytes"
	"io"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/sprigconfig/sprigconfig/pkg/errors"
)

func init() {
	RegisterFormat(jsonFormat{})
}

// jsonFormat parses JSON through the streaming token API so that object key
// order is preserved exactly as written.
type jsonFormat struct{}

func (jsonFormat) Name() string { return "json" }

func (jsonFormat) Extensions() []string { return []string{"json"} }

func (jsonFormat) Parse(data []byte) (*Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return NewMapping(), nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := jsonValue(dec)
	if err != nil {
		return nil, err
	}
	if root.Kind() != KindMapping {
		return nil, errors.New(errors.ErrorTypeParse, "document root must be a mapping")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New(errors.ErrorTypeParse, "trailing data after JSON document")
	}
	return root, nil
}

func jsonValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeParse, "invalid JSON")
	}
	return jsonNode(dec, tok)
}

func jsonNode(dec *json.Decoder, tok json.Token) (*Node, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			out := NewMapping()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, errors.Wrap(err, errors.ErrorTypeParse, "invalid JSON")
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, errors.New(errors.ErrorTypeParse, "object key is not a string")
				}
				child, err := jsonValue(dec)
				if err != nil {
					return nil, err
				}
				out.Set(key, child)
			}
			if _, err := dec.Token(); err != nil { // closing brace
				return nil, errors.Wrap(err, errors.ErrorTypeParse, "invalid JSON")
			}
			return out, nil

		case '[':
			out := NewSequence()
			for dec.More() {
				child, err := jsonValue(dec)
				if err != nil {
					return nil, err
				}
				out.Append(child)
			}
			if _, err := dec.Token(); err != nil { // closing bracket
				return nil, errors.Wrap(err, errors.ErrorTypeParse, "invalid JSON")
			}
			return out, nil
		}
		return nil, errors.Newf(errors.ErrorTypeParse, "unexpected delimiter %q", t.String())

	case json.Number:
		if !strings.ContainsAny(t.String(), ".eE") {
			if i, err := t.Int64(); err == nil {
				return NewScalar(i), nil
			}
		}
		f, err := t.Float64()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeParse, "invalid JSON number")
		}
		return NewScalar(f), nil

	case string:
		return NewScalar(t), nil

	case bool:
		return NewScalar(t), nil

	case nil:
		return NewScalar(nil), nil

	default:
		return nil, errors.Newf(errors.ErrorTypeParse, "unexpected JSON token %v", tok)
	}
}
