package analytics_test

import (
	"math"
	"testing"

	"github.com/arwanasir/bank-sentiment-analysis/internal/analytics"
	"github.com/arwanasir/bank-sentiment-analysis/internal/domain"
)

func annotated(id, bank string, rating int, label domain.SentimentLabel, score float64) domain.AnnotatedReview {
	return domain.AnnotatedReview{
		Review:    domain.Review{ID: id, Bank: bank, Text: ptr("t"), Rating: rating, Date: "2026-01-01"},
		Sentiment: domain.SentimentAnnotation{Label: label, Score: score},
	}
}

func TestSummarizeBanks(t *testing.T) {
	reviews := []domain.AnnotatedReview{
		annotated("r1", "CBE", 5, domain.SentimentPositive, 0.8),
		annotated("r2", "CBE", 3, domain.SentimentNeutral, 0.0),
		annotated("r3", "Dashen", 1, domain.SentimentNegative, -0.6),
	}
	got := analytics.SummarizeBanks(reviews, []string{"CBE", "Dashen", "BOA"})

	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2 (zero-review bank omitted)", len(got))
	}
	if got[0].Bank != "CBE" || got[0].Reviews != 2 {
		t.Fatalf("unexpected first row: %+v", got[0])
	}
	if got[0].MeanRating != 4.0 {
		t.Fatalf("CBE mean rating = %v, want 4", got[0].MeanRating)
	}
	if got[0].MeanSentiment != 0.4 {
		t.Fatalf("CBE mean sentiment = %v, want 0.4", got[0].MeanSentiment)
	}
	if got[1].Bank != "Dashen" || got[1].MeanRating != 1.0 {
		t.Fatalf("unexpected second row: %+v", got[1])
	}
}

func TestSummarizeBanks_MeansStayUnrounded(t *testing.T) {
	reviews := []domain.AnnotatedReview{
		annotated("r1", "CBE", 5, domain.SentimentPositive, 0.1),
		annotated("r2", "CBE", 4, domain.SentimentPositive, 0.2),
		annotated("r3", "CBE", 4, domain.SentimentPositive, 0.2),
	}
	got := analytics.SummarizeBanks(reviews, []string{"CBE"})
	want := (0.1 + 0.2 + 0.2) / 3
	if math.Abs(got[0].MeanSentiment-want) > 1e-15 {
		t.Fatalf("mean sentiment = %v, want unrounded %v", got[0].MeanSentiment, want)
	}
}

func TestBreakdownByRating(t *testing.T) {
	reviews := []domain.AnnotatedReview{
		annotated("r1", "CBE", 5, domain.SentimentPositive, 0.9),
		annotated("r2", "CBE", 5, domain.SentimentNeutral, 0.05),
		annotated("r3", "CBE", 1, domain.SentimentNegative, -0.7),
		annotated("r4", "Dashen", 3, domain.SentimentNeutral, 0.0),
	}
	got := analytics.BreakdownByRating(reviews, []string{"CBE", "Dashen"})

	if len(got) != 3 {
		t.Fatalf("got %d rows, want 3 (empty cells omitted)", len(got))
	}
	// bank order then rating ascending
	if got[0].Bank != "CBE" || got[0].Rating != 1 {
		t.Fatalf("row 0 = %+v, want CBE rating 1", got[0])
	}
	if got[1].Bank != "CBE" || got[1].Rating != 5 {
		t.Fatalf("row 1 = %+v, want CBE rating 5", got[1])
	}
	if got[2].Bank != "Dashen" || got[2].Rating != 3 {
		t.Fatalf("row 2 = %+v, want Dashen rating 3", got[2])
	}

	// label counts always sum to the row total
	for _, row := range got {
		if row.Positive+row.Neutral+row.Negative != row.Total {
			t.Errorf("counts do not sum to total: %+v", row)
		}
	}
	if got[1].Positive != 1 || got[1].Neutral != 1 || got[1].Total != 2 {
		t.Fatalf("CBE rating-5 counts wrong: %+v", got[1])
	}
}

func TestAggregation_Idempotent(t *testing.T) {
	reviews := []domain.AnnotatedReview{
		annotated("r1", "CBE", 5, domain.SentimentPositive, 0.123456789),
		annotated("r2", "CBE", 5, domain.SentimentPositive, 0.987654321),
		annotated("r3", "CBE", 2, domain.SentimentNegative, -0.333333333),
		annotated("r4", "Dashen", 4, domain.SentimentNeutral, 0.1),
	}
	banks := []string{"CBE", "Dashen"}

	// Outputs stay unrounded, so a second pass over the same rows must
	// reproduce every number bit for bit.
	s1 := analytics.SummarizeBanks(reviews, banks)
	s2 := analytics.SummarizeBanks(reviews, banks)
	if len(s1) != len(s2) {
		t.Fatalf("summary lengths differ: %d vs %d", len(s1), len(s2))
	}
	for i := range s1 {
		if s1[i] != s2[i] {
			t.Errorf("summary row %d differs: %+v vs %+v", i, s1[i], s2[i])
		}
	}

	b1 := analytics.BreakdownByRating(reviews, banks)
	b2 := analytics.BreakdownByRating(reviews, banks)
	if len(b1) != len(b2) {
		t.Fatalf("breakdown lengths differ: %d vs %d", len(b1), len(b2))
	}
	for i := range b1 {
		if b1[i] != b2[i] {
			t.Errorf("breakdown row %d differs: %+v vs %+v", i, b1[i], b2[i])
		}
	}

	// Rounding is presentation-only and stable under repetition.
	for _, s := range s1 {
		once := analytics.Round3(s.MeanSentiment)
		if analytics.Round3(once) != once {
			t.Errorf("Round3 not idempotent for %v", s.MeanSentiment)
		}
	}
}

func TestRankByRating_StableOnTies(t *testing.T) {
	in := []domain.BankSummary{
		{Bank: "CBE", MeanRating: 4.0},
		{Bank: "BOA", MeanRating: 4.5},
		{Bank: "Dashen", MeanRating: 4.0},
	}
	got := analytics.RankByRating(in)

	if got[0].Bank != "BOA" {
		t.Fatalf("got %q first, want BOA", got[0].Bank)
	}
	// tie between CBE and Dashen keeps input order
	if got[1].Bank != "CBE" || got[2].Bank != "Dashen" {
		t.Fatalf("tie order changed: %v %v", got[1].Bank, got[2].Bank)
	}
	// input untouched
	if in[0].Bank != "CBE" {
		t.Fatal("RankByRating must not mutate its input")
	}
}

func TestRound3(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0.123456, 0.123},
		{0.1235, 0.124},
		{-0.6666, -0.667},
		{1, 1},
	}
	for _, c := range cases {
		if got := analytics.Round3(c.in); got != c.want {
			t.Errorf("Round3(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
