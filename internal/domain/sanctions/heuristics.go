package sanctions

import (
	"regexp"
	"strings"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sanction program severity
// ─────────────────────────────────────────────────────────────────────────────

// programWeights maps a sanction program designation to its severity weight
// in [0,1].  Programs absent from the table carry unknownProgramWeight; a
// blank program field means no sanctions and scores 0.
var programWeights = map[string]float64{
	"SDGT":           0.95, // Specially Designated Global Terrorist
	"RUSSIA-EO14024": 0.95,
	"IRGC":           0.9,  // Islamic Revolutionary Guard Corps
	"IFSR":           0.85, // Iran Financial Sanctions Regulations
	"OFAC":           0.8,
	"NS-PLC":         0.7, // Non-SDN Palestinian Legislative Council
	"FSE":            0.6, // Foreign Sanctions Evaders
	"NS-ISA":         0.5, // Non-SDN Iranian Sanctions Act
	"CAPTA":          0.4, // Correspondent Account sanctions
	"None":           0.0,
}

const unknownProgramWeight = 0.75

// MaxProgramRisk is the highest severity weight in the table, used as the
// min-max normalization ceiling for the sanction-severity signal.
const MaxProgramRisk = 0.95

// ProgramRisk derives the sanction-severity risk for a program field.  The
// field may list several designations (optionally bracketed, whitespace
// separated); the highest weight governs.  Blank input scores 0.
func ProgramRisk(programField string) float64 {
	cleaned := strings.NewReplacer("[", "", "]", "").Replace(programField)
	programs := strings.Fields(cleaned)
	if len(programs) == 0 {
		return 0.0
	}
	maxRisk := 0.0
	for _, p := range programs {
		w, ok := programWeights[p]
		if !ok {
			w = unknownProgramWeight
		}
		if w > maxRisk {
			maxRisk = w
		}
	}
	return maxRisk
}

// ─────────────────────────────────────────────────────────────────────────────
// Keyword risk
// ─────────────────────────────────────────────────────────────────────────────

// keywordWeights lists high-risk terms and their additive weights.  Each term
// counts once regardless of how often it appears in the notes.
var keywordWeights = map[string]int{
	"terrorist":        30,
	"fraud":            25,
	"money laundering": 25,
	"pakistan":         25,
	"criminal":         20,
	"drug":             20,
	"weapons":          20,
	"russia":           20,
	"china":            20,
}

// MaxKeywordRisk is the sum of all keyword weights, used as the min-max
// normalization ceiling for the keyword signal.
const MaxKeywordRisk = 205

// keywordPatterns holds one whole-word pattern per keyword so that "drug"
// does not match "drugstore-adjacent" substrings of unrelated words.
var keywordPatterns = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(keywordWeights))
	for kw := range keywordWeights {
		m[kw] = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
	}
	return m
}()

// KeywordRisk sums the weights of high-risk terms present in text.
func KeywordRisk(text string) int {
	if text == "" {
		return 0
	}
	lower := strings.ToLower(text)
	risk := 0
	for kw, re := range keywordPatterns {
		if re.MatchString(lower) {
			risk += keywordWeights[kw]
		}
	}
	return risk
}

// ─────────────────────────────────────────────────────────────────────────────
// Sentiment risk
// ─────────────────────────────────────────────────────────────────────────────

// MaxSentimentRisk is the normalization ceiling for the sentiment signal.
const MaxSentimentRisk = 20

// polarityLexicon assigns a polarity in [-1,1] to words that commonly appear
// in sanctions notes.  Coverage is intentionally narrow: the notes are short
// administrative text, and only the negative band matters for scoring.
var polarityLexicon = map[string]float64{
	"illegal":     -0.8,
	"illicit":     -0.8,
	"violent":     -0.8,
	"banned":      -0.7,
	"prohibited":  -0.6,
	"smuggling":   -0.6,
	"trafficking": -0.6,
	"convicted":   -0.6,
	"dangerous":   -0.6,
	"hostile":     -0.5,
	"fraudulent":  -0.5,
	"corrupt":     -0.5,
	"suspected":   -0.3,
	"blocked":     -0.3,
	"frozen":      -0.2,
	"designated":  -0.1,
	"legitimate":  0.5,
	"compliant":   0.5,
	"authorized":  0.4,
	"cleared":     0.3,
}

var wordRe = regexp.MustCompile(`[a-z]+`)

// textPolarity computes the mean polarity of recognized words in text, in
// [-1,1].  Text with no recognized words is neutral.
func textPolarity(text string) float64 {
	words := wordRe.FindAllString(strings.ToLower(text), -1)
	sum, n := 0.0, 0
	for _, w := range words {
		if p, ok := polarityLexicon[w]; ok {
			sum += p
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// SentimentRisk converts the polarity of the notes into a risk score:
// strongly negative polarity scores 20, mildly negative 10, neutral or
// positive 0.  Empty text is neutral.
func SentimentRisk(text string) int {
	if text == "" {
		return 0
	}
	switch polarity := textPolarity(text); {
	case polarity <= -0.1:
		return 20
	case polarity < 0:
		return 10
	default:
		return 0
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Normalization
// ─────────────────────────────────────────────────────────────────────────────

// MinMaxNormalize scales value into [0,1] over [minVal, maxVal].  A collapsed
// range yields 0.
func MinMaxNormalize(value, minVal, maxVal float64) float64 {
	if maxVal == minVal {
		return 0
	}
	return (value - minVal) / (maxVal - minVal)
}
