package configloader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Server struct {
		Port int `koanf:"port"`
	} `koanf:"server"`
	Database struct {
		URL     string        `koanf:"url"`
		Timeout time.Duration `koanf:"timeout"`
	} `koanf:"database"`
	Kafka struct {
		Brokers []string `koanf:"brokers"`
	} `koanf:"kafka"`
}

func (c *testConfig) Validate() error {
	if c.Server.Port == 0 {
		return errors.New("port is required")
	}
	return nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_LoadFrom_Precedence(t *testing.T) {
	// given
	dir := t.TempDir()
	yamlFile := writeFile(t, dir, "config.yaml", `
server:
  port: 8080
database:
  url: postgres://yaml@localhost/catalog
  timeout: 3s
kafka:
  brokers: ["yaml:9092"]
`)
	envFile := writeFile(t, dir, ".env", "TESTSVC_DATABASE_URL=postgres://dotenv@localhost/catalog\nOTHER_KEY=ignored\n")
	t.Setenv("TESTSVC_SERVER_PORT", "9090")
	t.Setenv("TESTSVC_KAFKA_BROKERS", "a:9092,b:9092")

	// when
	cfg, err := LoadFrom[*testConfig](Sources{ConfigFile: yamlFile, EnvFile: envFile, EnvPrefix: "TESTSVC_"})

	// then
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port, "system env overrides yaml")
	assert.Equal(t, "postgres://dotenv@localhost/catalog", cfg.Database.URL, ".env overrides yaml")
	assert.Equal(t, 3*time.Second, cfg.Database.Timeout)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
}

func Test_LoadFrom_MissingFilesAreTolerated(t *testing.T) {
	// given
	dir := t.TempDir()
	t.Setenv("TESTSVC_SERVER_PORT", "7070")

	// when
	cfg, err := LoadFrom[*testConfig](Sources{
		ConfigFile: filepath.Join(dir, "absent.yaml"),
		EnvFile:    filepath.Join(dir, "absent.env"),
		EnvPrefix:  "TESTSVC_",
	})

	// then
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func Test_LoadFrom_ValidationError(t *testing.T) {
	// given
	dir := t.TempDir()
	yamlFile := writeFile(t, dir, "config.yaml", "database:\n  url: postgres://x@y/z\n")

	// when
	_, err := LoadFrom[*testConfig](Sources{ConfigFile: yamlFile, EnvFile: filepath.Join(dir, ".env"), EnvPrefix: "TESTSVC_"})

	// then
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func Test_DefaultSources(t *testing.T) {
	t.Run("conventional names", func(t *testing.T) {
		src := DefaultSources("catalog")
		assert.Equal(t, "config.yaml", src.ConfigFile)
		assert.Equal(t, ".env", src.EnvFile)
		assert.Equal(t, "CATALOG_", src.EnvPrefix)
	})
	t.Run("config file override", func(t *testing.T) {
		t.Setenv("CATALOG_CONFIG_FILE", "/etc/catalog/config.yaml")
		src := DefaultSources("catalog")
		assert.Equal(t, "/etc/catalog/config.yaml", src.ConfigFile)
	})
}
