package sanctions

import "testing"

func TestProgramRisk(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  float64
	}{
		{"blank means no sanctions", "", 0.0},
		{"whitespace only", "   ", 0.0},
		{"single program", "SDGT", 0.95},
		{"bracketed list takes the max", "[SDGT] [CAPTA]", 0.95},
		{"lowest known program", "CAPTA", 0.4},
		{"unknown program defaults", "MYSTERY-LIST", 0.75},
		{"explicit none", "None", 0.0},
		{"mixed known and unknown", "CAPTA MYSTERY-LIST", 0.75},
		{"russia eo", "RUSSIA-EO14024", 0.95},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProgramRisk(tt.field); got != tt.want {
				t.Errorf("ProgramRisk(%q) = %v, want %v", tt.field, got, tt.want)
			}
		})
	}
}

func TestKeywordRisk(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"no keywords", "registered shipping company in Rotterdam", 0},
		{"single keyword", "linked to fraud investigations", 25},
		{"multi-word keyword", "suspected of money laundering", 25},
		{"keyword counted once", "fraud, more fraud, repeated fraud", 25},
		{"multiple keywords sum", "terrorist financing and drug trade", 50},
		{"whole words only", "defrauded investors", 0},
		{"case insensitive", "FRAUD and RUSSIA ties", 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeywordRisk(tt.text); got != tt.want {
				t.Errorf("KeywordRisk(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestMaxKeywordRisk_MatchesTable(t *testing.T) {
	sum := 0
	for _, w := range keywordWeights {
		sum += w
	}
	if sum != MaxKeywordRisk {
		t.Errorf("keyword weights sum to %d, constant says %d", sum, MaxKeywordRisk)
	}
}

func TestSentimentRisk(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty is neutral", "", 0},
		{"unrecognized words are neutral", "vessel registered in 1998", 0},
		{"strongly negative", "illegal trafficking of banned goods", 20},
		{"boundary polarity is high band", "designated entity", 20},
		{"positive", "legitimate and compliant operator", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SentimentRisk(tt.text); got != tt.want {
				t.Errorf("SentimentRisk(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestSentimentRisk_Bands(t *testing.T) {
	// frozen (-0.2) alone falls in the high band.
	if got := SentimentRisk("assets frozen"); got != 20 {
		t.Errorf("frozen alone = %d, want 20", got)
	}
	// designated (-0.1) with cleared (0.3) averages +0.1: neutral.
	if got := SentimentRisk("designated but later cleared"); got != 0 {
		t.Errorf("offsetting polarity = %d, want 0", got)
	}
	// blocked (-0.3), frozen (-0.2), authorized (0.4) average -0.033: the
	// mildly negative band.
	if got := SentimentRisk("blocked and frozen but partially authorized"); got != 10 {
		t.Errorf("mildly negative mix = %d, want 10", got)
	}
}

func TestMinMaxNormalize(t *testing.T) {
	if got := MinMaxNormalize(0.5, 0, 1); got != 0.5 {
		t.Errorf("got %v", got)
	}
	if got := MinMaxNormalize(20, 0, 20); got != 1 {
		t.Errorf("got %v", got)
	}
	if got := MinMaxNormalize(5, 5, 5); got != 0 {
		t.Errorf("collapsed range: got %v, want 0", got)
	}
}

func TestRecord_InfoText(t *testing.T) {
	r := Record{AdditionalInfo: "linked to fraud", OtherInfo: "-0-"}
	if got := r.InfoText(); got != "linked to fraud" {
		t.Errorf("got %q", got)
	}
	r = Record{AdditionalInfo: "-0-", OtherInfo: "-0-"}
	if got := r.InfoText(); got != "" {
		t.Errorf("got %q, want empty", got)
	}
	r = Record{AdditionalInfo: "a", OtherInfo: "b"}
	if got := r.InfoText(); got != "ab" {
		t.Errorf("got %q, want ab", got)
	}
}
