package domain

// Review is one user-submitted rating+text for one app, as delivered by the
// acquisition feed. Text stays a pointer so "missing body" and "empty body"
// remain distinct until the normalizer has run.
type Review struct {
	ID     string // review_id, dedup key and storage primary key
	Bank   string // free-text bank label from the feed
	Text   *string
	Rating int    // 1..5
	Date   string // YYYY-MM-DD after normalization
	Source string // provenance tag, e.g. "Google Play"
}

type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// SentimentAnnotation is derived from a review and recomputed, never mutated
// in place. Score is polarity in [-1, 1]; Label is a fixed-threshold function
// of Score.
type SentimentAnnotation struct {
	Label SentimentLabel
	Score float64
}

// AnnotatedReview is a normalized review after sentiment classification and,
// when identity resolution succeeded, with the canonical bank id attached.
type AnnotatedReview struct {
	Review
	Sentiment SentimentAnnotation
	BankID    int64 // 0 when unresolved
}

// Keyword is one ranked vocabulary entry for a corpus slice.
type Keyword struct {
	Term  string
	Score float64
}

// Theme is a named bucket of assigned keywords plus up to two evidencing
// review excerpts. Themes with no keywords are never emitted.
type Theme struct {
	Name     string
	Keywords []string
	Examples []string
}

// BankThemes is the per-bank thematic deliverable.
type BankThemes struct {
	Bank   string
	Themes []Theme
}

// BankSummary is the per-bank aggregate row. Means are unrounded; rounding
// happens only at the reporting boundary.
type BankSummary struct {
	Bank          string
	MeanRating    float64
	MeanSentiment float64
	Reviews       int
}

// RatingAggregate is one per-(bank, rating) row. Slices with zero reviews are
// omitted, never emitted zero-filled; Positive+Neutral+Negative equals Total.
type RatingAggregate struct {
	Bank          string
	Rating        int
	MeanSentiment float64
	Positive      int
	Neutral       int
	Negative      int
	Total         int
}

// BankInsight names the drivers and pain points detected for one bank from
// its labeled reviews.
type BankInsight struct {
	Bank       string
	Drivers    []string
	PainPoints []string
}
