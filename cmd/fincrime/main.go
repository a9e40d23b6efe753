// fincrime CLI entry point.  Pipeline dependencies are built lazily so that
// flag parsing and help output never require live backends.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/turtacn/FinCrime-Intelligence/internal/application/risk"
	"github.com/turtacn/FinCrime-Intelligence/internal/config"
	"github.com/turtacn/FinCrime-Intelligence/internal/domain/entity"
	sanctionsdom "github.com/turtacn/FinCrime-Intelligence/internal/domain/sanctions"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/database/neo4j"
	neo4jrepos "github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/database/neo4j/repositories"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/embedding"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/knowledge"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/sanctions"
	"github.com/turtacn/FinCrime-Intelligence/internal/interfaces/cli"
)

func main() {
	opts := &cli.RootOptions{}
	root := cli.NewRootCommand(opts)

	root.AddCommand(
		cli.NewAssessCmd(&lazyAssessor{opts: opts}, opts, bootLogger(opts)),
		cli.NewSanctionsCmd(&lazyLoader{opts: opts}, &lazyChecker{opts: opts}, opts, bootLogger(opts)),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bootLogger builds a console logger honoring the global log-level flag.
// Flags are parsed at Execute time, so the level is read lazily.
func bootLogger(opts *cli.RootOptions) logging.Logger {
	return &deferredLogger{opts: opts}
}

// loadConfig resolves the configuration for the current invocation.
func loadConfig(opts *cli.RootOptions) (*config.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		path = "configs/config.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		cfg = config.NewDefaultConfig()
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	cfg.Log.Format = "console"
	return cfg, nil
}

func newLogger(opts *cli.RootOptions) logging.Logger {
	cfg, _ := loadConfig(opts)
	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return logging.NewNopLogger()
	}
	return logger
}

// deferredLogger resolves the real logger on first use, after flags have
// been parsed.
type deferredLogger struct {
	opts *cli.RootOptions
	real logging.Logger
}

func (d *deferredLogger) resolve() logging.Logger {
	if d.real == nil {
		d.real = newLogger(d.opts)
	}
	return d.real
}

func (d *deferredLogger) Debug(msg string, fields ...logging.Field) { d.resolve().Debug(msg, fields...) }
func (d *deferredLogger) Info(msg string, fields ...logging.Field)  { d.resolve().Info(msg, fields...) }
func (d *deferredLogger) Warn(msg string, fields ...logging.Field)  { d.resolve().Warn(msg, fields...) }
func (d *deferredLogger) Error(msg string, fields ...logging.Field) { d.resolve().Error(msg, fields...) }
func (d *deferredLogger) Fatal(msg string, fields ...logging.Field) { d.resolve().Fatal(msg, fields...) }
func (d *deferredLogger) With(fields ...logging.Field) logging.Logger {
	return d.resolve().With(fields...)
}
func (d *deferredLogger) Named(name string) logging.Logger { return d.resolve().Named(name) }

// lazyAssessor builds the full pipeline on first use and tears it down after
// the single assessment completes.
type lazyAssessor struct {
	opts *cli.RootOptions
}

func (l *lazyAssessor) AssessTransaction(ctx context.Context, entities []entity.ExtractedEntity) (*entity.TransactionRisk, error) {
	cfg, err := loadConfig(l.opts)
	if err != nil {
		return nil, err
	}
	logger := newLogger(l.opts)

	driver, err := neo4j.NewDriver(cfg.Neo4j, logger)
	if err != nil {
		return nil, fmt.Errorf("neo4j: %w", err)
	}
	defer driver.Close()
	relRepo := neo4jrepos.NewRelationshipRepository(driver, logger)

	encoder := embedding.NewClient(cfg.Embedding, logger)

	loader := sanctions.NewLoader(encoder, logger)
	records, err := loader.LoadFile(ctx, cfg.Sanctions.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("sanctions reference set: %w", err)
	}
	index := sanctions.NewMemoryIndex(records)

	provider := knowledge.NewClient(cfg.Knowledge, logger)

	service := risk.NewService(
		risk.NewEntityMatcher(relRepo, encoder, logger),
		risk.NewNetworkRiskScorer(relRepo, logger),
		risk.NewSanctionsRiskScorer(encoder, index, logger),
		risk.NewReputationRiskScorer(provider, knowledge.NoNarrative{}, logger),
		nil, nil,
		cfg.Risk,
		logger,
	)
	return service.AssessTransaction(ctx, entities)
}

// lazyLoader defers loader construction until the command runs.
type lazyLoader struct {
	opts *cli.RootOptions
}

func (l *lazyLoader) LoadFile(ctx context.Context, path string) ([]sanctionsdom.Record, error) {
	cfg, err := loadConfig(l.opts)
	if err != nil {
		return nil, err
	}
	logger := newLogger(l.opts)
	return sanctions.NewLoader(embedding.NewClient(cfg.Embedding, logger), logger).LoadFile(ctx, path)
}

// lazyChecker builds the sanctions scorer over the in-memory index on first
// use.
type lazyChecker struct {
	opts *cli.RootOptions
}

func (l *lazyChecker) Score(ctx context.Context, name string) (entity.SanctionsRiskResult, error) {
	cfg, err := loadConfig(l.opts)
	if err != nil {
		return entity.SanctionsRiskResult{}, err
	}
	logger := newLogger(l.opts)

	encoder := embedding.NewClient(cfg.Embedding, logger)
	records, err := sanctions.NewLoader(encoder, logger).LoadFile(ctx, cfg.Sanctions.CSVPath)
	if err != nil {
		return entity.SanctionsRiskResult{}, err
	}
	index := sanctions.NewMemoryIndex(records)

	return risk.NewSanctionsRiskScorer(encoder, index, logger).Score(ctx, name)
}
