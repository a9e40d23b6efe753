package risk

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/turtacn/FinCrime-Intelligence/internal/domain/entity"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/knowledge"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
)

// Reputation component weights.  The four components always sum to 1.
const (
	weightEntityStructure  = 0.25
	weightJurisdiction     = 0.25
	weightReputation       = 0.30
	weightFinancialTransp  = 0.20
	maxComponentScore      = 100
	negativeArticleStep    = 15
	maxNegativeArticleRisk = 40
)

// highRiskJurisdictions are matched as substrings of the lowercased
// jurisdiction string.
var highRiskJurisdictions = []string{
	"panama", "cayman", "bvi", "virgin islands",
	"seychelles", "malta", "cyprus", "mauritius",
}

// Wikidata item identifiers carrying elevated structural risk.
var (
	shellCompanyTypes      = []string{"Q201818", "Q7278"}
	highRiskIndustries     = []string{"Q188569", "Q131645"}
	offshoreJurisdictionQs = []string{"Q5785", "Q423", "Q37806"} // Cayman, Panama, BVI
)

// negativeTerms flag a news article as adverse when found in its title or
// description.  Stems match inflected forms (investigat → investigated,
// investigation).
var negativeTerms = []string{"fraud", "scam", "launder", "investigat", "sue", "charged"}

// ReputationRiskScorer assesses an entity from open knowledge sources.  Each
// source degrades independently; a fully dark entity still gets a scored
// result at low confidence.
type ReputationRiskScorer struct {
	provider  knowledge.Provider
	narrative knowledge.NarrativeProvider
	logger    logging.Logger
}

// NewReputationRiskScorer builds a scorer over the given knowledge provider.
// narrative may be knowledge.NoNarrative{} when no narrative source is wired.
func NewReputationRiskScorer(provider knowledge.Provider, narrative knowledge.NarrativeProvider, log logging.Logger) *ReputationRiskScorer {
	return &ReputationRiskScorer{
		provider:  provider,
		narrative: narrative,
		logger:    log.Named("reputation_scorer"),
	}
}

// Score fetches the three knowledge sources concurrently and folds them into
// the four weighted components.  The total is capped at 100 and truncated to
// an integer; confidence is the percentage of attainable data-completeness
// points.
func (s *ReputationRiskScorer) Score(ctx context.Context, name, jurisdiction string) entity.ReputationRiskResult {
	var (
		wiki     knowledge.WikipediaData
		wikidata *knowledge.WikidataInfo
		articles []knowledge.NewsArticle
		wg       sync.WaitGroup
	)
	wg.Add(3)
	go func() { defer wg.Done(); wiki = s.provider.Wikipedia(ctx, name) }()
	go func() { defer wg.Done(); wikidata = s.provider.Wikidata(ctx, name) }()
	go func() { defer wg.Done(); articles = s.provider.News(ctx, name, jurisdiction) }()
	wg.Wait()

	breakdown := map[string]entity.ComponentScore{
		"entity_structure":       entityStructureRisk(wikidata),
		"jurisdiction":           jurisdictionRisk(jurisdiction, wikidata),
		"reputation":             reputationRisk(wiki, articles),
		"financial_transparency": financialTransparencyRisk(wikidata),
	}

	var total float64
	for _, comp := range breakdown {
		total += float64(comp.Score) * comp.Weight
	}
	score := int(total)
	if score > maxComponentScore {
		score = maxComponentScore
	}

	return entity.ReputationRiskResult{
		Entity:        name,
		Jurisdiction:  jurisdiction,
		RiskScore:     score,
		RiskLevel:     entity.RiskLevelForScore(score),
		Confidence:    completenessConfidence(wiki, wikidata, articles),
		RiskBreakdown: breakdown,
		Evidence:      s.collectEvidence(ctx, name, wiki, wikidata, articles),
	}
}

func entityStructureRisk(info *knowledge.WikidataInfo) entity.ComponentScore {
	if info == nil {
		return entity.ComponentScore{
			Score:   60,
			Weight:  weightEntityStructure,
			Factors: []string{"No Wikidata information available"},
		}
	}

	score := 20
	var factors []string
	if containsAny(info.InstanceOf, shellCompanyTypes) {
		score += 50
		factors = append(factors, "Identified as shell company type")
	}
	if containsAny(info.Industry, highRiskIndustries) {
		score += 30
		factors = append(factors, "High-risk industry")
	}
	if factors == nil {
		factors = []string{"Standard corporate structure"}
	}
	return entity.ComponentScore{Score: capScore(score), Weight: weightEntityStructure, Factors: factors}
}

func jurisdictionRisk(jurisdiction string, info *knowledge.WikidataInfo) entity.ComponentScore {
	score := 20
	var factors []string

	lowered := strings.ToLower(jurisdiction)
	if jurisdiction != "" {
		for _, j := range highRiskJurisdictions {
			if strings.Contains(lowered, j) {
				score += 60
				factors = append(factors, "High-risk jurisdiction: "+jurisdiction)
				break
			}
		}
	}
	if info != nil && containsAny(info.Jurisdiction, offshoreJurisdictionQs) {
		score += 50
		factors = append(factors, "Registered in offshore jurisdiction")
	}
	if factors == nil {
		factors = []string{"Standard jurisdiction"}
	}
	return entity.ComponentScore{Score: capScore(score), Weight: weightJurisdiction, Factors: factors}
}

func reputationRisk(wiki knowledge.WikipediaData, articles []knowledge.NewsArticle) entity.ComponentScore {
	score := 20
	var factors []string

	if wiki.Controversial {
		score += 40
		factors = append(factors, "Wikipedia indicates controversy")
	}

	negative := 0
	for _, a := range articles {
		text := strings.ToLower(a.Title + " " + a.Description)
		for _, term := range negativeTerms {
			if strings.Contains(text, term) {
				negative++
				break
			}
		}
	}
	if negative > 0 {
		add := negative * negativeArticleStep
		if add > maxNegativeArticleRisk {
			add = maxNegativeArticleRisk
		}
		score += add
		factors = append(factors, fmt.Sprintf("%d negative news articles", negative))
	}
	if factors == nil {
		factors = []string{"Clean reputation"}
	}
	return entity.ComponentScore{Score: capScore(score), Weight: weightReputation, Factors: factors}
}

func financialTransparencyRisk(info *knowledge.WikidataInfo) entity.ComponentScore {
	if info == nil {
		return entity.ComponentScore{
			Score:   50,
			Weight:  weightFinancialTransp,
			Factors: []string{"No financial data available"},
		}
	}

	score := 30
	var factors []string
	if len(info.Founded) == 0 {
		score += 20
		factors = append(factors, "No founding date available")
	}
	if len(info.Website) == 0 {
		score += 15
		factors = append(factors, "No official website")
	}
	if factors == nil {
		factors = []string{"Good financial transparency"}
	}
	return entity.ComponentScore{Score: capScore(score), Weight: weightFinancialTransp, Factors: factors}
}

// completenessConfidence scores data availability: up to 30 points from the
// encyclopedia, 40 from structured knowledge, 30 from news coverage, reported
// as a percentage of the attainable total.
func completenessConfidence(wiki knowledge.WikipediaData, info *knowledge.WikidataInfo, articles []knowledge.NewsArticle) int {
	confidence := 0

	if wiki.Exists {
		if wiki.Extract != "" {
			confidence += 10
		} else {
			confidence += 5
		}
		if wiki.Controversial {
			confidence += 10
		} else {
			confidence += 5
		}
		if wiki.URL != "" {
			confidence += 10
		}
	}

	if info != nil {
		points := 0
		for _, present := range []bool{
			len(info.InstanceOf) > 0,
			len(info.Industry) > 0,
			len(info.Jurisdiction) > 0,
			len(info.Founded) > 0,
			len(info.Website) > 0,
		} {
			if present {
				points++
			}
		}
		confidence += 10 + points*6
	}

	if len(articles) > 0 {
		extra := len(articles)
		if extra > 20 {
			extra = 20
		}
		confidence += 10 + extra
	}

	if confidence > 100 {
		confidence = 100
	}
	return confidence
}

// collectEvidence assembles source references backing the assessment: the
// encyclopedia URL, top article titles, and any narrative text.
func (s *ReputationRiskScorer) collectEvidence(ctx context.Context, name string, wiki knowledge.WikipediaData, info *knowledge.WikidataInfo, articles []knowledge.NewsArticle) []string {
	var evidence []string
	if wiki.URL != "" {
		evidence = append(evidence, "Wikipedia: "+wiki.URL)
	}
	if info != nil && info.ID != "" {
		evidence = append(evidence, "Wikidata: "+info.ID)
	}
	for i, a := range articles {
		if i == 3 {
			break
		}
		evidence = append(evidence, "News: "+a.Title)
	}

	narrative, err := s.narrative.Lookup(ctx, name)
	if err != nil {
		s.logger.Warn("narrative lookup failed", logging.String("entity", name), logging.Err(err))
	} else if narrative != "" {
		evidence = append(evidence, "Narrative: "+narrative)
	}
	return evidence
}

func containsAny(values, wanted []string) bool {
	for _, v := range values {
		for _, w := range wanted {
			if v == w {
				return true
			}
		}
	}
	return false
}

func capScore(score int) int {
	if score > maxComponentScore {
		return maxComponentScore
	}
	return score
}
