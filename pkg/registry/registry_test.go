package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprigconfig/sprigconfig/pkg/config"
	"github.com/sprigconfig/sprigconfig/pkg/errors"
	"github.com/sprigconfig/sprigconfig/pkg/registry"
	"github.com/sprigconfig/sprigconfig/pkg/testutil"
)

type greeter struct {
	name string
}

func newGreeter(section map[string]interface{}) (interface{}, error) {
	name, _ := section["name"].(string)
	if name == "" {
		return nil, errors.New(errors.ErrorTypeConfig, "greeter needs a name")
	}
	return &greeter{name: name}, nil
}

func loadRegistryFixture(t *testing.T, base string) *config.Config {
	t.Helper()
	dir := testutil.WriteConfigDir(t, map[string]string{"application.yml": base})
	cfg, err := config.Load(config.Options{
		Dir:     dir,
		Profile: "dev",
		Logger:  testutil.TestLogger(t),
	})
	require.NoError(t, err)
	return cfg
}

func TestRegisterAndList(t *testing.T) {
	r := registry.NewRegistry()
	require.NoError(t, r.Register("zebra", newGreeter))
	require.NoError(t, r.Register("alpha", newGreeter))

	assert.Equal(t, []string{"alpha", "zebra"}, r.List())

	err := r.Register("alpha", newGreeter)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestLookup(t *testing.T) {
	r := registry.NewRegistry()
	require.NoError(t, r.Register("greeter", newGreeter))

	_, ok := r.Lookup("greeter")
	assert.True(t, ok)
	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}

func TestInstantiate(t *testing.T) {
	cfg := loadRegistryFixture(t, `
components:
  hello:
    _target_: greeter
    name: world
`)

	r := registry.NewRegistry()
	require.NoError(t, r.Register("greeter", newGreeter))

	v, err := r.Instantiate(cfg, "components.hello")
	require.NoError(t, err)
	g, ok := v.(*greeter)
	require.True(t, ok)
	assert.Equal(t, "world", g.name)
}

func TestInstantiateUnknownTarget(t *testing.T) {
	cfg := loadRegistryFixture(t, "c:\n  _target_: nope\n")

	r := registry.NewRegistry()
	_, err := r.Instantiate(cfg, "c")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown target")
}

func TestInstantiateMissingTargetEntry(t *testing.T) {
	cfg := loadRegistryFixture(t, "c:\n  name: world\n")

	r := registry.NewRegistry()
	require.NoError(t, r.Register("greeter", newGreeter))

	_, err := r.Instantiate(cfg, "c")
	require.Error(t, err)
	assert.Contains(t, err.Error(), registry.TargetKey)
}

func TestInstantiateStripsTargetFromSection(t *testing.T) {
	cfg := loadRegistryFixture(t, "c:\n  _target_: echo\n  name: world\n")

	r := registry.NewRegistry()
	var seen map[string]interface{}
	require.NoError(t, r.Register("echo", func(section map[string]interface{}) (interface{}, error) {
		seen = section
		return nil, nil
	}))

	_, err := r.Instantiate(cfg, "c")
	require.NoError(t, err)
	assert.NotContains(t, seen, registry.TargetKey)
	assert.Equal(t, "world", seen["name"])
}

func TestInstantiateNotAMapping(t *testing.T) {
	cfg := loadRegistryFixture(t, "c: scalar\n")

	r := registry.NewRegistry()
	_, err := r.Instantiate(cfg, "c")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}
