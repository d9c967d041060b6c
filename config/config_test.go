package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
database:
  host: "localhost"
  port: 5432
  username: "u"
  password: "p"
  name: "db"
kafka:
  host: "localhost"
  port: 9092
  scan_recorded_topic_name: "scan.recorded"
redis:
  host: "localhost"
  port: 6379
scanbox:
  http_addr: ":8080"
  kafka_consumer_group: "scan-worker"
  candidates_ttl_seconds: 60
  scan_rate_limit_per_minute: 30
  capabilities:
    - "tags:register"
`), 0o600))

	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	require.Equal(t, "u", cfg.Database.Username)
	require.Equal(t, "scan.recorded", cfg.Kafka.ScanRecordedTopicName)
	require.Equal(t, 6379, cfg.Redis.Port)
	require.Equal(t, ":8080", cfg.ScanBox.HTTPAddr)
	require.Equal(t, 60, cfg.ScanBox.CandidatesTTLSeconds)
	require.Equal(t, []string{"tags:register"}, cfg.ScanBox.Capabilities)
}

func TestLoadConfig_missingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
