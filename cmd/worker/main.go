// Worker entry point: consumes completed assessment events from the bus and
// persists them to the audit store.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/turtacn/FinCrime-Intelligence/internal/config"
	"github.com/turtacn/FinCrime-Intelligence/internal/domain/entity"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/database/postgres"
	pgrepos "github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/database/postgres/repositories"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
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
		logger.Error("worker exited with error", logging.Err(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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
	repo := pgrepos.NewAssessmentRepository(pg.Pool(), logger)

	handler := func(ctx context.Context, risk *entity.TransactionRisk) error {
		return repo.Save(ctx, risk)
	}
	consumer := kafka.NewConsumer(cfg.Kafka, handler, logger)

	logger.Info("assessment worker started",
		logging.Any("brokers", cfg.Kafka.Brokers),
		logging.String("group_id", cfg.Kafka.GroupID))

	if err := consumer.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("consumer: %w", err)
	}
	logger.Info("assessment worker stopped")
	return nil
}
