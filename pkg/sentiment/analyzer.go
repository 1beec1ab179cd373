package sentiment

import (
	"strings"
	"unicode"
)

// Label is the coarse sentiment bucket of a score.
type Label string

const (
	Positive Label = "positive"
	Negative Label = "negative"
	Neutral  Label = "neutral"
)

// Labels lists every label in display order.
var Labels = []Label{Positive, Negative, Neutral}

// Classification thresholds. Comparisons are strict, so ±0.2 itself is neutral.
const (
	PositiveThreshold = 0.2
	NegativeThreshold = -0.2
)

// String returns the label value.
func (l Label) String() string {
	return string(l)
}

// Result is the outcome of scoring a single message.
type Result struct {
	Score float64 `json:"score"`
	Label Label   `json:"label"`
}

// Breakdown exposes the lexicon hits behind a Result.
type Breakdown struct {
	Result
	PositiveHits []string `json:"positive_hits"`
	NegativeHits []string `json:"negative_hits"`
}

// Classify maps a score onto a Label using the strict thresholds.
func Classify(score float64) Label {
	switch {
	case score > PositiveThreshold:
		return Positive
	case score < NegativeThreshold:
		return Negative
	default:
		return Neutral
	}
}

// Analyzer scores text against a Lexicon.
type Analyzer struct {
	lexicon *Lexicon
}

// NewAnalyzer creates an Analyzer. A nil lexicon selects DefaultLexicon.
func NewAnalyzer(lex *Lexicon) *Analyzer {
	if lex == nil {
		lex = DefaultLexicon()
	}
	return &Analyzer{lexicon: lex}
}

// Lexicon returns the vocabulary used by the analyzer.
func (a *Analyzer) Lexicon() *Lexicon {
	return a.lexicon
}

// Analyze scores text. It never fails: empty or unmatched text is neutral with score 0.
func (a *Analyzer) Analyze(text string) Result {
	return a.Explain(text).Result
}

// Explain scores text and also reports which tokens matched each polarity.
func (a *Analyzer) Explain(text string) Breakdown {
	var b Breakdown
	for _, tok := range Tokenize(text) {
		if a.lexicon.IsPositive(tok) {
			b.PositiveHits = append(b.PositiveHits, tok)
		}
		if a.lexicon.IsNegative(tok) {
			b.NegativeHits = append(b.NegativeHits, tok)
		}
	}

	pos, neg := len(b.PositiveHits), len(b.NegativeHits)
	if total := pos + neg; total > 0 {
		b.Score = float64(pos-neg) / float64(total)
	}
	b.Label = Classify(b.Score)
	return b
}

// Tokenize lower-cases text and splits it into maximal runs of word characters
// (letters, numeric characters and underscore).
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
