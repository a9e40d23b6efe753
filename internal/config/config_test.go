package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults_FillsZeroFields(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultNeo4jURI, cfg.Neo4j.URI)
	assert.Equal(t, DefaultRedisAddr, cfg.Redis.Addr)
	assert.Equal(t, []string{DefaultKafkaBroker}, cfg.Kafka.Brokers)
	assert.Equal(t, DefaultEmbeddingDim, cfg.Embedding.Dimension)
	assert.Equal(t, DefaultSanctionsThreshold, cfg.Sanctions.MatchThreshold)
	assert.Equal(t, DefaultSanctionsTopN, cfg.Sanctions.TopN)
	assert.Equal(t, DefaultEntityConcurrency, cfg.Risk.EntityConcurrency)
	assert.Equal(t, 10*time.Second, cfg.Risk.DomainTimeout)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 9090
	cfg.Neo4j.URI = "bolt://graph.internal:7687"
	cfg.Sanctions.MatchThreshold = 0.9

	ApplyDefaults(cfg)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "bolt://graph.internal:7687", cfg.Neo4j.URI)
	assert.Equal(t, 0.9, cfg.Sanctions.MatchThreshold)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port",
		},
		{
			name:    "bad mode",
			mutate:  func(c *Config) { c.Server.Mode = "prod" },
			wantErr: "server.mode",
		},
		{
			name:    "threshold above one",
			mutate:  func(c *Config) { c.Sanctions.MatchThreshold = 1.5 },
			wantErr: "sanctions.match_threshold",
		},
		{
			name:    "non-positive top n",
			mutate:  func(c *Config) { c.Sanctions.TopN = -1 },
			wantErr: "sanctions.top_n",
		},
		{
			name:    "non-positive concurrency",
			mutate:  func(c *Config) { c.Risk.EntityConcurrency = -2 },
			wantErr: "risk.entity_concurrency",
		},
		{
			name: "milvus enabled without addr",
			mutate: func(c *Config) {
				c.Milvus.Enabled = true
				c.Milvus.Addr = ""
			},
			wantErr: "milvus.addr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9191
  mode: release
neo4j:
  uri: bolt://graph:7687
  password: secret
sanctions:
  csv_path: /data/sdn.csv
  match_threshold: 0.8
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "bolt://graph:7687", cfg.Neo4j.URI)
	assert.Equal(t, "secret", cfg.Neo4j.Password)
	assert.Equal(t, "/data/sdn.csv", cfg.Sanctions.CSVPath)
	assert.Equal(t, 0.8, cfg.Sanctions.MatchThreshold)
	// Unset fields fall back to defaults.
	assert.Equal(t, DefaultRedisAddr, cfg.Redis.Addr)
	assert.Equal(t, DefaultSanctionsTopN, cfg.Sanctions.TopN)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  mode: prod\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromEnv_UsesDefaultsWhenUnset(t *testing.T) {
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultNeo4jURI, cfg.Neo4j.URI)
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		MustLoad(filepath.Join(t.TempDir(), "absent.yaml"))
	})
}
