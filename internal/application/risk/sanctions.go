package risk

import (
	"context"
	"fmt"
	"strings"

	"github.com/turtacn/FinCrime-Intelligence/internal/domain/entity"
	"github.com/turtacn/FinCrime-Intelligence/internal/domain/sanctions"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/embedding"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
)

// Sanctions screening parameters.  The blend weights favor the name match;
// program severity, narrative sentiment, and keyword signals refine it.
const (
	sanctionsTopN      = 3
	sanctionsThreshold = 0.75

	weightMatch     = 0.4
	weightProgram   = 0.35
	weightSentiment = 0.15
	weightKeyword   = 0.1
)

// SanctionsRiskScorer screens entity names against the sanctions reference
// set by embedding similarity.
type SanctionsRiskScorer struct {
	encoder embedding.Encoder
	index   sanctions.Index
	logger  logging.Logger
}

// NewSanctionsRiskScorer builds a scorer over the given encoder and index.
func NewSanctionsRiskScorer(encoder embedding.Encoder, index sanctions.Index, log logging.Logger) *SanctionsRiskScorer {
	return &SanctionsRiskScorer{
		encoder: encoder,
		index:   index,
		logger:  log.Named("sanctions_scorer"),
	}
}

// Score screens one entity name.  The top candidates above the similarity
// threshold each produce a blended score; the result risk is the maximum
// across candidates and the confidence is their mean similarity.  No
// qualifying candidate yields the no-match default: risk 0 at confidence 1.
func (s *SanctionsRiskScorer) Score(ctx context.Context, name string) (entity.SanctionsRiskResult, error) {
	vec, err := s.encoder.Encode(ctx, name)
	if err != nil {
		return entity.SanctionsRiskResult{}, err
	}

	candidates, err := s.index.Search(ctx, vec, sanctionsTopN)
	if err != nil {
		return entity.SanctionsRiskResult{}, err
	}

	var (
		maxRisk       float64
		similaritySum float64
		qualifying    int
		reasons       []string
	)
	for _, c := range candidates {
		if c.Similarity <= sanctionsThreshold {
			continue
		}
		qualifying++
		similaritySum += c.Similarity

		info := c.Record.InfoText()
		normMatch := c.Similarity
		normProgram := sanctions.MinMaxNormalize(sanctions.ProgramRisk(c.Record.SanctionProgram), 0, sanctions.MaxProgramRisk)
		normSentiment := sanctions.MinMaxNormalize(float64(sanctions.SentimentRisk(info)), 0, sanctions.MaxSentimentRisk)
		normKeyword := sanctions.MinMaxNormalize(float64(sanctions.KeywordRisk(info)), 0, sanctions.MaxKeywordRisk)

		blended := weightMatch*normMatch +
			weightProgram*normProgram +
			weightSentiment*normSentiment +
			weightKeyword*normKeyword
		if blended > maxRisk {
			maxRisk = blended
		}

		reasons = append(reasons, fmt.Sprintf(
			"(Entity: %s) (Info: %s) (Match Score: %.2f, Sanction Risk: %.2f, Sentiment Risk: %.2f, Keyword Risk: %.2f)",
			c.Record.Name, info, normMatch, normProgram, normSentiment, normKeyword))
	}

	if qualifying == 0 {
		return entity.NoSanctionsMatch(name), nil
	}

	return entity.SanctionsRiskResult{
		Entity:          name,
		RiskScore:       round3(maxRisk),
		Reason:          strings.Join(reasons, "; "),
		ConfidenceScore: similaritySum / float64(qualifying),
	}, nil
}
