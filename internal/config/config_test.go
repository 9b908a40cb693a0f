package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setSecrets(t *testing.T) {
	t.Setenv("ACCESS_SECRET", "access")
	t.Setenv("REFRESH_SECRET", "refresh")
	t.Setenv("DATABASE_URL", "postgres://localhost/microblog")
}

func TestLoad_Defaults(t *testing.T) {
	setSecrets(t)

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10, cfg.PostsPerPage)
	assert.Equal(t, "postgres", cfg.StorageDriver)
	assert.Equal(t, "sql", cfg.GraphDriver)
	assert.Equal(t, "noop", cfg.BrokerDriver)
	assert.Equal(t, "postgres://localhost/microblog", cfg.DatabaseURL)
	assert.Equal(t, 3*time.Hour, cfg.AccessTTL)
	assert.Equal(t, 10*time.Minute, cfg.ResetTTL)
	assert.Equal(t, "access", cfg.ResetSecret)
}

func TestLoad_YAMLOverrides(t *testing.T) {
	setSecrets(t)

	dir := t.TempDir()
	yaml := []byte(`
server:
  port: "9000"
pagination:
  posts_per_page: 25
storage:
  driver: memory
broker:
  driver: nats
tokens:
  access_ttl: 15m
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.yaml"), yaml, 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 25, cfg.PostsPerPage)
	assert.Equal(t, "memory", cfg.StorageDriver)
	assert.Equal(t, "nats", cfg.BrokerDriver)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
}

func TestFromViper_Validation(t *testing.T) {
	base := func() *viper.Viper {
		v := viper.New()
		setDefaults(v)
		v.Set("secrets.access", "a")
		v.Set("secrets.refresh", "r")
		v.Set("storage.driver", "memory")
		return v
	}

	tests := []struct {
		name  string
		key   string
		value any
	}{
		{name: "non-positive page size", key: "pagination.posts_per_page", value: 0},
		{name: "unknown storage", key: "storage.driver", value: "sqlite"},
		{name: "postgres without url", key: "storage.driver", value: "postgres"},
		{name: "unknown graph", key: "graph.driver", value: "dgraph"},
		{name: "unknown broker", key: "broker.driver", value: "kafka"},
		{name: "missing access secret", key: "secrets.access", value: ""},
		{name: "refresh secret equals access secret", key: "secrets.refresh", value: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := base()
			v.Set(tt.key, tt.value)

			_, err := FromViper(v)
			require.Error(t, err)
		})
	}

	_, err := FromViper(base())
	require.NoError(t, err)
}

func TestLoadEnv(t *testing.T) {
	require.NoError(t, LoadEnv(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MICROBLOG_TEST_VALUE=42\n"), 0o600))
	t.Setenv("MICROBLOG_TEST_VALUE", "")
	os.Unsetenv("MICROBLOG_TEST_VALUE")

	require.NoError(t, LoadEnv(path))
	assert.Equal(t, "42", os.Getenv("MICROBLOG_TEST_VALUE"))
}
