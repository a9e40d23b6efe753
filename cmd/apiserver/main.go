// API server entry point: wires the full risk pipeline behind the REST
// surface and runs until terminated.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/turtacn/FinCrime-Intelligence/internal/application/risk"
	"github.com/turtacn/FinCrime-Intelligence/internal/config"
	sanctionsdom "github.com/turtacn/FinCrime-Intelligence/internal/domain/sanctions"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/database/neo4j"
	neo4jrepos "github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/database/neo4j/repositories"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/database/postgres"
	pgrepos "github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/database/postgres/repositories"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/database/redis"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/embedding"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/knowledge"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/sanctions"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/search/milvus"
	httpiface "github.com/turtacn/FinCrime-Intelligence/internal/interfaces/http"
	"github.com/turtacn/FinCrime-Intelligence/internal/interfaces/http/handlers"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: using default configuration: %v\n", err)
		cfg = config.NewDefaultConfig()
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot initialize logger: %v\n", err)
		os.Exit(1)
	}
	if err := run(cfg, logger); err != nil {
		logger.Error("apiserver exited with error", logging.Err(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            "fincrime",
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, logger)
	if err != nil {
		return fmt.Errorf("metrics collector: %w", err)
	}
	metrics := prometheus.NewAppMetrics(collector)

	// Relationship graph.
	driver, err := neo4j.NewDriver(cfg.Neo4j, logger)
	if err != nil {
		return fmt.Errorf("neo4j: %w", err)
	}
	defer driver.Close()
	relRepo := neo4jrepos.NewRelationshipRepository(driver, logger)

	// Text encoder.
	encoder := embedding.NewClient(cfg.Embedding, logger)

	// Sanctions reference set and similarity index.
	loader := sanctions.NewLoader(encoder, logger)
	records, err := loader.LoadFile(ctx, cfg.Sanctions.CSVPath)
	if err != nil {
		return fmt.Errorf("sanctions reference set: %w", err)
	}

	var index sanctionsdom.Index
	if cfg.Milvus.Enabled {
		milvusIndex, err := milvus.NewIndex(ctx, cfg.Milvus, records, logger)
		if err != nil {
			return fmt.Errorf("milvus index: %w", err)
		}
		defer milvusIndex.Close()
		index = milvusIndex
		metrics.SanctionsIndexSize.WithLabelValues("milvus").Set(float64(milvusIndex.Size()))
	} else {
		memIndex := sanctions.NewMemoryIndex(records)
		index = memIndex
		metrics.SanctionsIndexSize.WithLabelValues("memory").Set(float64(memIndex.Size()))
		if cfg.Sanctions.WatchFile {
			watcher, err := sanctions.NewWatcher(cfg.Sanctions.CSVPath, loader, memIndex, logger)
			if err != nil {
				return fmt.Errorf("sanctions watcher: %w", err)
			}
			go watcher.Run(ctx)
		}
	}

	// Open-knowledge sources, cached in Redis when it is reachable.
	knowledgeClient := knowledge.NewClient(cfg.Knowledge, logger)
	var provider knowledge.Provider = knowledgeClient
	redisClient, err := redis.NewClient(cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, knowledge lookups run uncached", logging.Err(err))
	} else {
		defer redisClient.Close()
		cache := redis.NewCache(redisClient, logger)
		provider = knowledge.NewCachedProvider(knowledgeClient, cache, cfg.Knowledge.CacheTTL, logger)
	}

	// Assessment audit store.
	pg, err := postgres.NewConnection(ctx, cfg.Postgres, logger)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pg.Close()
	if cfg.Postgres.MigrationPath != "" {
		if err := postgres.RunMigrations(postgres.DSN(cfg.Postgres), cfg.Postgres.MigrationPath); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}
	assessmentRepo := pgrepos.NewAssessmentRepository(pg.Pool(), logger)

	// Event bus.
	producer := kafka.NewProducer(cfg.Kafka, logger)
	defer producer.Close()

	// Risk pipeline.
	service := risk.NewService(
		risk.NewEntityMatcher(relRepo, encoder, logger),
		risk.NewNetworkRiskScorer(relRepo, logger),
		risk.NewSanctionsRiskScorer(encoder, index, logger),
		risk.NewReputationRiskScorer(provider, knowledge.NoNarrative{}, logger),
		producer,
		metrics,
		cfg.Risk,
		logger,
	)

	checks := []handlers.ComponentCheck{
		{Name: "neo4j", Check: driver.HealthCheck},
		{Name: "postgres", Check: pg.HealthCheck},
	}
	if redisClient != nil {
		checks = append(checks, handlers.ComponentCheck{Name: "redis", Check: redisClient.Ping})
	}

	router := httpiface.NewRouter(httpiface.RouterConfig{
		AssessHandler:     handlers.NewAssessHandler(service, logger),
		AssessmentHandler: handlers.NewAssessmentHandler(assessmentRepo, logger),
		HealthHandler:     handlers.NewHealthHandler(checks, metrics, logger),

		Mode:    cfg.Server.Mode,
		Metrics: cfg.Metrics,

		Logger:           logger,
		MetricsCollector: collector,
		AppMetrics:       metrics,
	})
	server := httpiface.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Stop(shutdownCtx)
}
