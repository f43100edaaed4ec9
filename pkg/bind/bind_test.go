package bind_test

import (
	"fmt"
	"testing"

	"github.com/fernet/fernet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprigconfig/sprigconfig/pkg/bind"
	"github.com/sprigconfig/sprigconfig/pkg/config"
	"github.com/sprigconfig/sprigconfig/pkg/secret"
	"github.com/sprigconfig/sprigconfig/pkg/testutil"
)

type serverSection struct {
	Host    string
	Port    int
	TLS     bool `mapstructure:"tls"`
	Timeout int  `mapstructure:"timeout_seconds"`
}

func loadFixture(t *testing.T, files map[string]string) *config.Config {
	t.Helper()
	dir := testutil.WriteConfigDir(t, files)
	cfg, err := config.Load(config.Options{
		Dir:     dir,
		Profile: "dev",
		Logger:  testutil.TestLogger(t),
	})
	require.NoError(t, err)
	return cfg
}

func TestSectionDecodes(t *testing.T) {
	cfg := loadFixture(t, map[string]string{
		"application.yml": `
server:
  host: localhost
  port: 8080
  tls: true
  timeout_seconds: 30
`,
	})

	var s serverSection
	require.NoError(t, bind.Section(cfg, "server", &s))
	assert.Equal(t, serverSection{Host: "localhost", Port: 8080, TLS: true, Timeout: 30}, s)
}

func TestSectionWeakTyping(t *testing.T) {
	// quoted numbers still bind to int fields
	cfg := loadFixture(t, map[string]string{
		"application.yml": "server:\n  host: localhost\n  port: \"8080\"\n",
	})

	var s serverSection
	require.NoError(t, bind.Section(cfg, "server", &s))
	assert.Equal(t, 8080, s.Port)
}

func TestSectionMissingKey(t *testing.T) {
	cfg := loadFixture(t, map[string]string{
		"application.yml": "a: 1\n",
	})

	var s serverSection
	assert.Error(t, bind.Section(cfg, "nope", &s))
	assert.Error(t, bind.Section(cfg, "a", &s), "scalar is not a section")
}

func TestSectionSecretsRedactedByDefault(t *testing.T) {
	var k fernet.Key
	require.NoError(t, k.Generate())
	tok, err := fernet.EncryptAndSign([]byte("swordfish"), &k)
	require.NoError(t, err)

	cfg := loadFixture(t, map[string]string{
		"application.yml": fmt.Sprintf("db:\n  user: admin\n  password: ENC(%s)\n", tok),
	})

	type dbSection struct {
		User     string
		Password string
	}

	var d dbSection
	require.NoError(t, bind.Section(cfg, "db", &d))
	assert.Equal(t, secret.Redacted, d.Password)

	t.Setenv(secret.EnvKey, k.Encode())
	require.NoError(t, bind.SectionWith(cfg, "db", &d, bind.Options{RevealSecrets: true}))
	assert.Equal(t, "swordfish", d.Password)
}

func TestValue(t *testing.T) {
	cfg := loadFixture(t, map[string]string{
		"application.yml": "server:\n  port: 8080\n  name: api\n",
	})

	assert.Equal(t, "api", bind.Value(cfg, "server.name", "def"))
	assert.Equal(t, "def", bind.Value(cfg, "server.missing", "def"))
	assert.Equal(t, 8080, bind.Value(cfg, "server.port", 0))

	// weak conversion reaches across scalar types
	assert.Equal(t, "8080", bind.Value(cfg, "server.port", ""))
}
