package analytics

import (
	"math"
	"sort"

	"github.com/arwanasir/bank-sentiment-analysis/internal/domain"
)

// SummarizeBanks computes one summary row per bank: mean rating, mean
// sentiment score and review count. banks fixes the output order and must
// come from a stably-ordered source (first-seen input order); banks with zero
// reviews are omitted. Means stay unrounded so repeated aggregation is not
// lossy.
func SummarizeBanks(reviews []domain.AnnotatedReview, banks []string) []domain.BankSummary {
	type acc struct {
		ratingSum float64
		scoreSum  float64
		count     int
	}
	byBank := make(map[string]*acc, len(banks))
	for i := range reviews {
		r := &reviews[i]
		a := byBank[r.Bank]
		if a == nil {
			a = &acc{}
			byBank[r.Bank] = a
		}
		a.ratingSum += float64(r.Rating)
		a.scoreSum += r.Sentiment.Score
		a.count++
	}

	out := make([]domain.BankSummary, 0, len(banks))
	for _, bank := range banks {
		a := byBank[bank]
		if a == nil || a.count == 0 {
			continue
		}
		out = append(out, domain.BankSummary{
			Bank:          bank,
			MeanRating:    a.ratingSum / float64(a.count),
			MeanSentiment: a.scoreSum / float64(a.count),
			Reviews:       a.count,
		})
	}
	return out
}

// BreakdownByRating computes one row per (bank, rating) combination with at
// least one review: mean sentiment score plus per-label counts. Output order
// is bank (caller order) then rating ascending.
func BreakdownByRating(reviews []domain.AnnotatedReview, banks []string) []domain.RatingAggregate {
	type acc struct {
		scoreSum                    float64
		positive, neutral, negative int
		total                       int
	}
	type key struct {
		bank   string
		rating int
	}
	cells := make(map[key]*acc)
	for i := range reviews {
		r := &reviews[i]
		k := key{bank: r.Bank, rating: r.Rating}
		a := cells[k]
		if a == nil {
			a = &acc{}
			cells[k] = a
		}
		a.scoreSum += r.Sentiment.Score
		a.total++
		switch r.Sentiment.Label {
		case domain.SentimentPositive:
			a.positive++
		case domain.SentimentNegative:
			a.negative++
		default:
			a.neutral++
		}
	}

	var out []domain.RatingAggregate
	for _, bank := range banks {
		for rating := 1; rating <= 5; rating++ {
			a := cells[key{bank: bank, rating: rating}]
			if a == nil {
				continue
			}
			out = append(out, domain.RatingAggregate{
				Bank:          bank,
				Rating:        rating,
				MeanSentiment: a.scoreSum / float64(a.total),
				Positive:      a.positive,
				Neutral:       a.neutral,
				Negative:      a.negative,
				Total:         a.total,
			})
		}
	}
	return out
}

// RankByRating orders summaries by mean rating descending for "top performer"
// style output. The sort is stable, so ties keep the caller's bank order.
func RankByRating(summaries []domain.BankSummary) []domain.BankSummary {
	out := make([]domain.BankSummary, len(summaries))
	copy(out, summaries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MeanRating > out[j].MeanRating
	})
	return out
}

// Round3 rounds to three decimal places. Applied only at reporting
// boundaries (HTTP DTOs, exports), never inside aggregation.
func Round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
