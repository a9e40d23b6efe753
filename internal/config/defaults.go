package config

import "time"

// Default value constants.
const (
	DefaultServerPort = 8080
	DefaultServerMode = "debug"

	DefaultNeo4jURI      = "bolt://localhost:7687"
	DefaultNeo4jUser     = "neo4j"
	DefaultNeo4jDatabase = "neo4j"

	DefaultPostgresHost = "localhost"
	DefaultPostgresPort = 5432
	DefaultPostgresDB   = "fincrime"

	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisKeyPrefix = "fincrime:"

	DefaultKafkaBroker  = "localhost:9092"
	DefaultKafkaGroupID = "fincrime-audit"

	DefaultMilvusAddr       = "localhost:19530"
	DefaultMilvusCollection = "sanctions_names"

	DefaultEmbeddingBaseURL = "http://localhost:8501"
	DefaultEmbeddingModel   = "all-MiniLM-L6-v2"
	// DefaultEmbeddingDim matches the MiniLM sentence encoder output width.
	DefaultEmbeddingDim = 384

	DefaultWikipediaURL = "https://en.wikipedia.org/w/api.php"
	DefaultWikidataURL  = "https://www.wikidata.org/w/api.php"
	DefaultNewsURL      = "https://newsapi.org/v2/everything"
	DefaultUserAgent    = "FinCrime-Intelligence/1.0"
	DefaultMaxArticles  = 10

	DefaultSanctionsCSVPath   = "data/sdn.csv"
	DefaultSanctionsThreshold = 0.75
	DefaultSanctionsTopN      = 3

	DefaultEntityConcurrency = 8

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsPath = "/metrics"
)

// ApplyDefaults fills every zero-value field in cfg with the platform default.
// Fields that have already been set by the caller (non-zero values) are left
// unchanged so that explicit configuration always wins.  It must be called
// after unmarshalling raw config data and before Validate().
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ───────────────────────────────────────────────────────────────
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30 * time.Second
	}

	// ── Neo4j ────────────────────────────────────────────────────────────────
	if cfg.Neo4j.URI == "" {
		cfg.Neo4j.URI = DefaultNeo4jURI
	}
	if cfg.Neo4j.User == "" {
		cfg.Neo4j.User = DefaultNeo4jUser
	}
	if cfg.Neo4j.Database == "" {
		cfg.Neo4j.Database = DefaultNeo4jDatabase
	}
	if cfg.Neo4j.MaxConnectionPoolSize == 0 {
		cfg.Neo4j.MaxConnectionPoolSize = 50
	}
	if cfg.Neo4j.ConnectionTimeout == 0 {
		cfg.Neo4j.ConnectionTimeout = 10 * time.Second
	}

	// ── Postgres ─────────────────────────────────────────────────────────────
	if cfg.Postgres.Host == "" {
		cfg.Postgres.Host = DefaultPostgresHost
	}
	if cfg.Postgres.Port == 0 {
		cfg.Postgres.Port = DefaultPostgresPort
	}
	if cfg.Postgres.DBName == "" {
		cfg.Postgres.DBName = DefaultPostgresDB
	}
	if cfg.Postgres.SSLMode == "" {
		cfg.Postgres.SSLMode = "disable"
	}
	if cfg.Postgres.MaxConns == 0 {
		cfg.Postgres.MaxConns = 25
	}
	if cfg.Postgres.MigrationPath == "" {
		cfg.Postgres.MigrationPath = "file://migrations"
	}

	// ── Redis ────────────────────────────────────────────────────────────────
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}
	if cfg.Redis.DefaultTTL == 0 {
		cfg.Redis.DefaultTTL = time.Hour
	}

	// ── Kafka ────────────────────────────────────────────────────────────────
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = DefaultKafkaGroupID
	}
	if cfg.Kafka.ProducerRetries == 0 {
		cfg.Kafka.ProducerRetries = 3
	}
	if cfg.Kafka.WriteTimeout == 0 {
		cfg.Kafka.WriteTimeout = 10 * time.Second
	}

	// ── Milvus ───────────────────────────────────────────────────────────────
	if cfg.Milvus.Addr == "" {
		cfg.Milvus.Addr = DefaultMilvusAddr
	}
	if cfg.Milvus.Collection == "" {
		cfg.Milvus.Collection = DefaultMilvusCollection
	}
	if cfg.Milvus.EmbeddingDim == 0 {
		cfg.Milvus.EmbeddingDim = DefaultEmbeddingDim
	}

	// ── Embedding ────────────────────────────────────────────────────────────
	if cfg.Embedding.BaseURL == "" {
		cfg.Embedding.BaseURL = DefaultEmbeddingBaseURL
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = DefaultEmbeddingModel
	}
	if cfg.Embedding.Dimension == 0 {
		cfg.Embedding.Dimension = DefaultEmbeddingDim
	}
	if cfg.Embedding.Timeout == 0 {
		cfg.Embedding.Timeout = 10 * time.Second
	}

	// ── Knowledge ────────────────────────────────────────────────────────────
	if cfg.Knowledge.WikipediaURL == "" {
		cfg.Knowledge.WikipediaURL = DefaultWikipediaURL
	}
	if cfg.Knowledge.WikidataURL == "" {
		cfg.Knowledge.WikidataURL = DefaultWikidataURL
	}
	if cfg.Knowledge.NewsURL == "" {
		cfg.Knowledge.NewsURL = DefaultNewsURL
	}
	if cfg.Knowledge.UserAgent == "" {
		cfg.Knowledge.UserAgent = DefaultUserAgent
	}
	if cfg.Knowledge.MaxArticles == 0 {
		cfg.Knowledge.MaxArticles = DefaultMaxArticles
	}
	if cfg.Knowledge.FetchTimeout == 0 {
		cfg.Knowledge.FetchTimeout = 10 * time.Second
	}
	if cfg.Knowledge.CacheTTL == 0 {
		cfg.Knowledge.CacheTTL = time.Hour
	}

	// ── Sanctions ────────────────────────────────────────────────────────────
	if cfg.Sanctions.CSVPath == "" {
		cfg.Sanctions.CSVPath = DefaultSanctionsCSVPath
	}
	if cfg.Sanctions.MatchThreshold == 0 {
		cfg.Sanctions.MatchThreshold = DefaultSanctionsThreshold
	}
	if cfg.Sanctions.TopN == 0 {
		cfg.Sanctions.TopN = DefaultSanctionsTopN
	}

	// ── Risk ─────────────────────────────────────────────────────────────────
	if cfg.Risk.EntityConcurrency == 0 {
		cfg.Risk.EntityConcurrency = DefaultEntityConcurrency
	}
	if cfg.Risk.DomainTimeout == 0 {
		cfg.Risk.DomainTimeout = 10 * time.Second
	}

	// ── Log / Metrics ────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
}

// NewDefaultConfig returns a Config populated entirely with platform defaults.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Metrics.Enabled = true
	return cfg
}
