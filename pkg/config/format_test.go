package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprigconfig/sprigconfig/pkg/config"
	"github.com/sprigconfig/sprigconfig/pkg/errors"
)

func TestFormatRegistry(t *testing.T) {
	for _, ext := range []string{"yml", "yaml", "json", "toml"} {
		_, ok := config.FormatFor(ext)
		assert.True(t, ok, "format for %q", ext)
	}

	_, ok := config.FormatFor("ini")
	assert.False(t, ok)

	// leading dots are tolerated
	_, ok = config.FormatFor(".yml")
	assert.True(t, ok)
}

func TestYAMLPreservesKeyOrder(t *testing.T) {
	f, _ := config.FormatFor("yml")
	n, err := f.Parse([]byte("zebra: 1\nalpha: 2\nmike: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"zebra", "alpha", "mike"}, n.Keys())
}

func TestYAMLScalarTypes(t *testing.T) {
	f, _ := config.FormatFor("yml")
	n, err := f.Parse([]byte(`
str: hello
num: 42
flt: 3.5
yes: true
nil: null
`))
	require.NoError(t, err)

	get := func(key string) interface{} {
		c, ok := n.Child(key)
		require.True(t, ok, key)
		return c.Value()
	}
	assert.Equal(t, "hello", get("str"))
	assert.Equal(t, 42, get("num"))
	assert.Equal(t, 3.5, get("flt"))
	assert.Equal(t, true, get("yes"))
	assert.Nil(t, get("nil"))
}

func TestYAMLEmptyDocument(t *testing.T) {
	f, _ := config.FormatFor("yml")
	for _, text := range []string{"", "# just a comment\n", "---\n"} {
		n, err := f.Parse([]byte(text))
		require.NoError(t, err, "text %q", text)
		assert.Equal(t, config.KindMapping, n.Kind())
		assert.Equal(t, 0, n.Len())
	}
}

func TestYAMLParseError(t *testing.T) {
	f, _ := config.FormatFor("yml")
	_, err := f.Parse([]byte("a: [unclosed\n"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeParse))
}

func TestYAMLRootMustBeMapping(t *testing.T) {
	f, _ := config.FormatFor("yml")
	_, err := f.Parse([]byte("- a\n- b\n"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeParse))
}

func TestJSONPreservesKeyOrder(t *testing.T) {
	f, _ := config.FormatFor("json")
	n, err := f.Parse([]byte(`{"zebra": 1, "alpha": 2, "mike": 3}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"zebra", "alpha", "mike"}, n.Keys())
}

func TestJSONScalarTypes(t *testing.T) {
	f, _ := config.FormatFor("json")
	n, err := f.Parse([]byte(`{"s": "x", "i": 7, "f": 1.25, "b": false, "z": null, "seq": [1, "two"]}`))
	require.NoError(t, err)

	i, _ := n.Child("i")
	assert.Equal(t, int64(7), i.Value())
	fv, _ := n.Child("f")
	assert.Equal(t, 1.25, fv.Value())
	b, _ := n.Child("b")
	assert.Equal(t, false, b.Value())
	z, _ := n.Child("z")
	assert.Nil(t, z.Value())
	seq, _ := n.Child("seq")
	require.Equal(t, config.KindSequence, seq.Kind())
	assert.Equal(t, 2, seq.Len())
}

func TestJSONParseError(t *testing.T) {
	f, _ := config.FormatFor("json")
	_, err := f.Parse([]byte(`{"a": `))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeParse))
}

func TestJSONTrailingData(t *testing.T) {
	f, _ := config.FormatFor("json")
	_, err := f.Parse([]byte(`{"a": 1} {"b": 2}`))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeParse))
}

func TestTOMLParsesNested(t *testing.T) {
	f, _ := config.FormatFor("toml")
	n, err := f.Parse([]byte(`
title = "demo"

[server]
port = 8080
host = "localhost"
`))
	require.NoError(t, err)

	server, ok := n.Child("server")
	require.True(t, ok)
	port, _ := server.Child("port")
	assert.Equal(t, int64(8080), port.Value())
}

func TestTOMLDeterministicKeyOrder(t *testing.T) {
	f, _ := config.FormatFor("toml")
	n, err := f.Parse([]byte("zebra = 1\nalpha = 2\nmike = 3\n"))
	require.NoError(t, err)
	// go-toml does not expose document order; keys are canonicalized sorted
	assert.Equal(t, []string{"alpha", "mike", "zebra"}, n.Keys())
}

func TestTOMLParseError(t *testing.T) {
	f, _ := config.FormatFor("toml")
	_, err := f.Parse([]byte("= broken"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeParse))
}
