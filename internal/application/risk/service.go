package risk

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/FinCrime-Intelligence/internal/config"
	"github.com/turtacn/FinCrime-Intelligence/internal/domain/entity"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/FinCrime-Intelligence/pkg/errors"
)

// Matcher resolves extracted entities against the relationship store.
type Matcher interface {
	Match(ctx context.Context, ext entity.ExtractedEntity) (entity.MatchedEntity, error)
}

// NetworkScorer scores a matched entity's relationship neighborhood.
type NetworkScorer interface {
	Score(ctx context.Context, matched entity.MatchedEntity) (entity.NetworkRiskResult, error)
}

// SanctionsScorer screens an entity name against the sanctions reference set.
type SanctionsScorer interface {
	Score(ctx context.Context, name string) (entity.SanctionsRiskResult, error)
}

// ReputationScorer assesses an entity from open knowledge sources.  It never
// fails: unavailable sources degrade inside the scorer.
type ReputationScorer interface {
	Score(ctx context.Context, name, jurisdiction string) entity.ReputationRiskResult
}

// EventPublisher publishes the completed assessment.  A nil publisher
// disables publication.
type EventPublisher interface {
	PublishAssessment(ctx context.Context, risk *entity.TransactionRisk) error
}

// Service orchestrates the full transaction assessment: per-entity fan-out,
// per-domain scoring with single-call degradation, and aggregation.
type Service struct {
	matcher    Matcher
	network    NetworkScorer
	sanctions  SanctionsScorer
	reputation ReputationScorer
	publisher  EventPublisher
	metrics    *prometheus.AppMetrics
	cfg        config.RiskConfig
	logger     logging.Logger
}

// NewService wires the pipeline.  publisher and metrics may be nil.
func NewService(
	matcher Matcher,
	network NetworkScorer,
	sanctions SanctionsScorer,
	reputation ReputationScorer,
	publisher EventPublisher,
	metrics *prometheus.AppMetrics,
	cfg config.RiskConfig,
	log logging.Logger,
) *Service {
	return &Service{
		matcher:    matcher,
		network:    network,
		sanctions:  sanctions,
		reputation: reputation,
		publisher:  publisher,
		metrics:    metrics,
		cfg:        cfg,
		logger:     log.Named("risk_service"),
	}
}

// AssessTransaction scores every extracted entity across the three domains
// and rolls the results up to a transaction verdict.  A failing domain scorer
// degrades to its documented default for that entity; a malformed entity is
// rejected individually and the rest of the transaction proceeds.  Context
// cancellation aborts the whole assessment.
func (s *Service) AssessTransaction(ctx context.Context, entities []entity.ExtractedEntity) (*entity.TransactionRisk, error) {
	if len(entities) == 0 {
		return nil, errors.New(errors.ErrCodeTransactionEmpty, "no entities to assess")
	}
	start := time.Now()

	entityRisks := make([]entity.PerEntityRisk, len(entities))

	g, gctx := errgroup.WithContext(ctx)
	if s.cfg.EntityConcurrency > 0 {
		g.SetLimit(s.cfg.EntityConcurrency)
	}
	for i, ext := range entities {
		g.Go(func() error {
			if err := ext.Validate(); err != nil {
				s.logger.Warn("rejecting malformed entity",
					logging.String("entity", ext.Name), logging.Err(err))
				entityRisks[i] = entity.PerEntityRisk{
					Name:            ext.Name,
					Network:         entity.NetworkRiskResult{Name: ext.Name, Type: ext.Type},
					Sanctions:       entity.SanctionsRiskResult{Entity: ext.Name},
					Reputation:      entity.ReputationRiskResult{Entity: ext.Name},
					ValidationError: err.Error(),
				}
				return nil
			}
			risk, err := s.assessEntity(gctx, ext)
			if err != nil {
				return err
			}
			entityRisks[i] = risk
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if s.metrics != nil {
			prometheus.RecordAssessment(s.metrics, false, len(entities), time.Since(start))
		}
		return nil, err
	}

	result := aggregateTransaction(entityRisks)
	s.logger.Info("transaction assessed",
		logging.String("assessment_id", result.ID.String()),
		logging.Int("entities", len(entities)),
		logging.Float64("risk_score", result.RiskScore),
		logging.Float64("confidence_score", result.ConfidenceScore))
	if s.metrics != nil {
		prometheus.RecordAssessment(s.metrics, true, len(entities), time.Since(start))
	}

	// The verdict must reach the caller even when the event bus is down.
	if s.publisher != nil {
		if err := s.publisher.PublishAssessment(ctx, result); err != nil {
			s.logger.Error("failed to publish assessment event",
				logging.String("assessment_id", result.ID.String()), logging.Err(err))
		}
	}
	return result, nil
}

// assessEntity runs the three domain scorers for one entity.  Matching and
// network scoring are sequential (the traversal needs the match); sanctions
// and reputation run alongside them.  Only context cancellation is returned
// as an error; scorer failures degrade to defaults.
func (s *Service) assessEntity(ctx context.Context, ext entity.ExtractedEntity) (entity.PerEntityRisk, error) {
	var (
		networkResult    entity.NetworkRiskResult
		sanctionsResult  entity.SanctionsRiskResult
		reputationResult entity.ReputationRiskResult
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		dctx, cancel := s.domainContext(gctx)
		defer cancel()

		matched, err := s.matcher.Match(dctx, ext)
		if err != nil {
			return s.degrade(gctx, "network", ext.Name, err, func() {
				networkResult = entity.NetworkRiskResult{
					Name: ext.Name, Type: ext.Type,
					MatchedType: entity.CategoryForType(ext.Type),
				}
			})
		}
		if s.metrics != nil {
			prometheus.RecordEntityMatch(s.metrics, string(matched.MatchedType), matched.IsMatched())
		}
		result, err := s.network.Score(dctx, matched)
		if err != nil {
			return s.degrade(gctx, "network", ext.Name, err, func() {
				networkResult = entity.NetworkRiskResult{
					Name: ext.Name, Type: ext.Type,
					MatchedName: matched.MatchedName, MatchedType: matched.MatchedType,
				}
			})
		}
		networkResult = result
		return nil
	})

	g.Go(func() error {
		dctx, cancel := s.domainContext(gctx)
		defer cancel()

		result, err := s.sanctions.Score(dctx, ext.Name)
		if err != nil {
			return s.degrade(gctx, "sanctions", ext.Name, err, func() {
				sanctionsResult = entity.SanctionsRiskResult{Entity: ext.Name}
			})
		}
		sanctionsResult = result
		return nil
	})

	g.Go(func() error {
		dctx, cancel := s.domainContext(gctx)
		defer cancel()

		reputationResult = s.reputation.Score(dctx, ext.Name, ext.Place)
		return nil
	})

	if err := g.Wait(); err != nil {
		return entity.PerEntityRisk{}, err
	}
	return mergeEntityRisk(ext.Name, networkResult, sanctionsResult, reputationResult), nil
}

// degrade records a domain scorer failure and installs the default result,
// unless the failure was the assessment being cancelled.
func (s *Service) degrade(ctx context.Context, domain, name string, err error, setDefault func()) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	s.logger.Warn("domain scorer degraded to default",
		logging.String("domain", domain),
		logging.String("entity", name),
		logging.Err(err))
	if s.metrics != nil {
		prometheus.RecordDegradation(s.metrics, domain, string(errors.GetCode(err)))
	}
	setDefault()
	return nil
}

func (s *Service) domainContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.DomainTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.DomainTimeout)
}
