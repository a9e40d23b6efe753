// Package config defines all configuration structures for the
// FinCrime-Intelligence platform.  No I/O or parsing logic lives here — only
// plain data types and validation.
package config

import (
	"fmt"
	"time"

	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Neo4jConfig holds relationship-store connection parameters.
type Neo4jConfig struct {
	URI                   string        `mapstructure:"uri"`
	User                  string        `mapstructure:"user"`
	Password              string        `mapstructure:"password"`
	Database              string        `mapstructure:"database"`
	MaxConnectionPoolSize int           `mapstructure:"max_connection_pool_size"`
	ConnectionTimeout     time.Duration `mapstructure:"connection_timeout"`
}

// PostgresConfig holds the assessment audit store connection parameters.
type PostgresConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxConns        int           `mapstructure:"max_conns"`
	MinConns        int           `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationPath   string        `mapstructure:"migration_path"`
}

// RedisConfig holds knowledge-cache connection parameters.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	DefaultTTL   time.Duration `mapstructure:"default_ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// KafkaConfig holds event bus producer/consumer parameters.
type KafkaConfig struct {
	Brokers         []string      `mapstructure:"brokers"`
	GroupID         string        `mapstructure:"group_id"`
	ProducerRetries int           `mapstructure:"producer_retries"`
	BatchTimeout    time.Duration `mapstructure:"batch_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
}

// MilvusConfig holds the optional sanctions vector-index parameters.
// When Enabled is false the in-memory sanctions index is used instead.
type MilvusConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Addr         string `mapstructure:"addr"`
	Collection   string `mapstructure:"collection"`
	EmbeddingDim int    `mapstructure:"embedding_dim"`
}

// EmbeddingConfig holds the text-encoder service parameters.
type EmbeddingConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Model     string        `mapstructure:"model"`
	Dimension int           `mapstructure:"dimension"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// KnowledgeConfig holds the open-knowledge source endpoints used by the
// reputation scorer.
type KnowledgeConfig struct {
	WikipediaURL string        `mapstructure:"wikipedia_url"`
	WikidataURL  string        `mapstructure:"wikidata_url"`
	NewsURL      string        `mapstructure:"news_url"`
	NewsAPIKey   string        `mapstructure:"news_api_key"`
	UserAgent    string        `mapstructure:"user_agent"`
	MaxArticles  int           `mapstructure:"max_articles"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
}

// SanctionsConfig holds sanctions reference-set parameters.
type SanctionsConfig struct {
	CSVPath        string  `mapstructure:"csv_path"`
	WatchFile      bool    `mapstructure:"watch_file"`
	MatchThreshold float64 `mapstructure:"match_threshold"`
	TopN           int     `mapstructure:"top_n"`
}

// RiskConfig holds pipeline tunables.  The normative scoring weights and
// thresholds live as constants next to the scorers; only operational knobs
// are configurable.
type RiskConfig struct {
	EntityConcurrency int           `mapstructure:"entity_concurrency"`
	DomainTimeout     time.Duration `mapstructure:"domain_timeout"`
}

// MetricsConfig holds Prometheus exposure parameters.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Top-level Config
// ─────────────────────────────────────────────────────────────────────────────

// Config aggregates every sub-configuration of the platform.
type Config struct {
	Server    ServerConfig      `mapstructure:"server"`
	Neo4j     Neo4jConfig       `mapstructure:"neo4j"`
	Postgres  PostgresConfig    `mapstructure:"postgres"`
	Redis     RedisConfig       `mapstructure:"redis"`
	Kafka     KafkaConfig       `mapstructure:"kafka"`
	Milvus    MilvusConfig      `mapstructure:"milvus"`
	Embedding EmbeddingConfig   `mapstructure:"embedding"`
	Knowledge KnowledgeConfig   `mapstructure:"knowledge"`
	Sanctions SanctionsConfig   `mapstructure:"sanctions"`
	Risk      RiskConfig        `mapstructure:"risk"`
	Log       logging.LogConfig `mapstructure:"log"`
	Metrics   MetricsConfig     `mapstructure:"metrics"`
}

// Validate checks cross-field consistency of the configuration.  It is called
// by the loader after defaults have been applied, so zero values that have a
// default never fail validation.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in (0, 65535], got %d", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode must be debug|release|test, got %q", c.Server.Mode)
	}
	if c.Sanctions.MatchThreshold < 0 || c.Sanctions.MatchThreshold > 1 {
		return fmt.Errorf("sanctions.match_threshold must be in [0,1], got %f", c.Sanctions.MatchThreshold)
	}
	if c.Sanctions.TopN <= 0 {
		return fmt.Errorf("sanctions.top_n must be positive, got %d", c.Sanctions.TopN)
	}
	if c.Risk.EntityConcurrency <= 0 {
		return fmt.Errorf("risk.entity_concurrency must be positive, got %d", c.Risk.EntityConcurrency)
	}
	if c.Milvus.Enabled && c.Milvus.Addr == "" {
		return fmt.Errorf("milvus.addr is required when milvus.enabled is true")
	}
	if c.Embedding.Dimension <= 0 {
		return fmt.Errorf("embedding.dimension must be positive, got %d", c.Embedding.Dimension)
	}
	return nil
}
