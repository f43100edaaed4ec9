package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprigconfig/sprigconfig/pkg/config"
	"github.com/sprigconfig/sprigconfig/pkg/testutil"
)

func TestExpandEnvSet(t *testing.T) {
	t.Setenv("SPRIG_TEST_HOST", "db.internal")
	assert.Equal(t, "db.internal", config.ExpandEnv("${SPRIG_TEST_HOST}"))
	assert.Equal(t, "host=db.internal;", config.ExpandEnv("host=${SPRIG_TEST_HOST};"))
}

func TestExpandEnvDefault(t *testing.T) {
	assert.Equal(t, "5432", config.ExpandEnv("${SPRIG_TEST_UNSET_PORT:5432}"))

	// set variable wins over the default
	t.Setenv("SPRIG_TEST_PORT", "9999")
	assert.Equal(t, "9999", config.ExpandEnv("${SPRIG_TEST_PORT:5432}"))
}

func TestExpandEnvDefaultMayContainColons(t *testing.T) {
	assert.Equal(t, "http://localhost:8080",
		config.ExpandEnv("${SPRIG_TEST_UNSET_URL:http://localhost:8080}"))
}

func TestExpandEnvUnsetPassesThrough(t *testing.T) {
	assert.Equal(t, "${SPRIG_TEST_NEVER_SET}", config.ExpandEnv("${SPRIG_TEST_NEVER_SET}"))
}

func TestExpandEnvEmptyDefault(t *testing.T) {
	assert.Equal(t, "", config.ExpandEnv("${SPRIG_TEST_UNSET_EMPTY:}"))
}

func TestExpandEnvMultiple(t *testing.T) {
	t.Setenv("SPRIG_TEST_A", "1")
	t.Setenv("SPRIG_TEST_B", "2")
	assert.Equal(t, "1-2", config.ExpandEnv("${SPRIG_TEST_A}-${SPRIG_TEST_B}"))
}

func TestLoadExpandsScalarsNotKeys(t *testing.T) {
	t.Setenv("SPRIG_TEST_VALUE", "expanded")

	dir := testutil.WriteConfigDir(t, map[string]string{
		"application.yml": "'${SPRIG_TEST_VALUE}': ${SPRIG_TEST_VALUE}\n",
	})

	cfg, err := config.Load(config.Options{
		Dir:     dir,
		Profile: "dev",
		Logger:  testutil.TestLogger(t),
	})
	require.NoError(t, err)

	// the value expanded, the key did not
	assert.Equal(t, "expanded", cfg.GetString("${SPRIG_TEST_VALUE}", ""))
	_, ok := cfg.Get("expanded")
	assert.False(t, ok)
}
