package analytics_test

import (
	"testing"

	"github.com/arwanasir/bank-sentiment-analysis/internal/analytics"
	"github.com/arwanasir/bank-sentiment-analysis/internal/domain"
)

// fakeScorer returns a fixed polarity and records whether it was called.
type fakeScorer struct {
	score  float64
	called bool
}

func (f *fakeScorer) Polarity(string) float64 {
	f.called = true
	return f.score
}

func TestClassify_Thresholds(t *testing.T) {
	cases := []struct {
		score float64
		want  domain.SentimentLabel
	}{
		{0.5, domain.SentimentPositive},
		{0.11, domain.SentimentPositive},
		{0.1, domain.SentimentNeutral}, // boundary is open
		{0.0, domain.SentimentNeutral},
		{-0.1, domain.SentimentNeutral}, // boundary is open
		{-0.11, domain.SentimentNegative},
		{-0.9, domain.SentimentNegative},
	}
	for _, c := range cases {
		cl := analytics.NewClassifier(&fakeScorer{score: c.score})
		got := cl.Classify(ptr("some review text"))
		if got.Label != c.want {
			t.Errorf("Classify(score=%v) = %s, want %s", c.score, got.Label, c.want)
		}
		if got.Score != c.score {
			t.Errorf("Classify(score=%v) kept score %v", c.score, got.Score)
		}
	}
}

func TestClassify_BlankSkipsScorer(t *testing.T) {
	for _, text := range []*string{nil, ptr(""), ptr("   \t ")} {
		s := &fakeScorer{score: 0.9}
		got := analytics.NewClassifier(s).Classify(text)
		if got.Label != domain.SentimentNeutral || got.Score != 0.0 {
			t.Errorf("blank text: got (%s, %v), want (neutral, 0)", got.Label, got.Score)
		}
		if s.called {
			t.Error("scorer must not be invoked for blank text")
		}
	}
}

func TestVaderScorer_Direction(t *testing.T) {
	s := analytics.NewVaderScorer()
	if p := s.Polarity("This app is great, I love it!"); p <= 0 {
		t.Errorf("positive text scored %v", p)
	}
	if p := s.Polarity("Terrible app, it always crashes and I hate it."); p >= 0 {
		t.Errorf("negative text scored %v", p)
	}
}
