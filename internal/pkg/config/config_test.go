package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "localhost:9092", cfg.Kafka.Brokers)
	assert.Equal(t, "storefront.notifications", cfg.Kafka.NotificationTopic)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "no-such.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestLoadYamlFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  port: 9000\nredis:\n  addrs: \"redis-a:6379,redis-b:6379\"\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, "redis-a:6379,redis-b:6379", cfg.Redis.Addrs)
	// 文件未覆盖的字段保持默认值
	assert.Equal(t, "localhost:9092", cfg.Kafka.Brokers)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9100")
	t.Setenv("MYSQL_DSN", "user:pw@tcp(db:3306)/storefront")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.HTTP.Port)
	assert.Equal(t, "user:pw@tcp(db:3306)/storefront", cfg.MySQL.DSN)
	assert.Equal(t, "kafka-1:9092", cfg.Kafka.Brokers)
}

func TestEnvOverridesInvalidPortIgnored(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-port")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestLoadRejectsMalformedYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: [not a mapping"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
