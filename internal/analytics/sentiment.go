package analytics

import (
	"strings"

	"github.com/jonreiter/govader"

	"github.com/arwanasir/bank-sentiment-analysis/internal/domain"
)

// Scorer produces a polarity in [-1, 1] for a piece of free text. The
// classification policy below is the contract under test; the lexicon scoring
// itself is delegated.
type Scorer interface {
	Polarity(text string) float64
}

// Classification thresholds. Both boundaries are open: a score of exactly
// ±0.1 classifies as neutral.
const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1
)

// Classifier labels review text via a pluggable polarity scorer.
// Classify is deterministic and side-effect-free, so reviews may be
// classified concurrently.
type Classifier struct {
	scorer Scorer
}

func NewClassifier(s Scorer) *Classifier {
	return &Classifier{scorer: s}
}

// Classify returns the sentiment annotation for one review body. Nil or
// blank text short-circuits to (neutral, 0.0) without invoking the scorer.
func (c *Classifier) Classify(text *string) domain.SentimentAnnotation {
	if text == nil || strings.TrimSpace(*text) == "" {
		return domain.SentimentAnnotation{Label: domain.SentimentNeutral, Score: 0.0}
	}

	score := c.scorer.Polarity(*text)
	switch {
	case score > positiveThreshold:
		return domain.SentimentAnnotation{Label: domain.SentimentPositive, Score: score}
	case score < negativeThreshold:
		return domain.SentimentAnnotation{Label: domain.SentimentNegative, Score: score}
	default:
		return domain.SentimentAnnotation{Label: domain.SentimentNeutral, Score: score}
	}
}

// VaderScorer scores text with the VADER sentiment lexicon (word polarities
// adjusted by local negation and intensity modifiers), reported as the
// compound polarity in [-1, 1].
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (s *VaderScorer) Polarity(text string) float64 {
	return s.analyzer.PolarityScores(text).Compound
}
