package analytics_test

import (
	"reflect"
	"testing"

	"github.com/arwanasir/bank-sentiment-analysis/internal/analytics"
	"github.com/arwanasir/bank-sentiment-analysis/internal/domain"
)

func TestInsights(t *testing.T) {
	reviews := []domain.AnnotatedReview{
		annotated("r1", "CBE", 5, domain.SentimentPositive, 0.8),
		annotated("r2", "CBE", 1, domain.SentimentNegative, -0.7),
		annotated("r3", "Dashen", 3, domain.SentimentNeutral, 0.0),
	}
	reviews[0].Text = ptr("Super fast and easy to use")
	reviews[1].Text = ptr("The app crashes on login every time")
	reviews[2].Text = ptr("It is okay I guess")

	got := analytics.Insights(reviews, []string{"CBE", "Dashen", "BOA"})

	if len(got) != 2 {
		t.Fatalf("got %d banks, want 2 (BOA has no reviews)", len(got))
	}
	cbe := got[0]
	if cbe.Bank != "CBE" {
		t.Fatalf("first insight for %q, want CBE", cbe.Bank)
	}
	if !reflect.DeepEqual(cbe.Drivers, []string{"Fast Transactions", "Easy to Use"}) {
		t.Fatalf("CBE drivers = %v", cbe.Drivers)
	}
	if !reflect.DeepEqual(cbe.PainPoints, []string{"App Crashes", "Login Issues"}) {
		t.Fatalf("CBE pain points = %v", cbe.PainPoints)
	}

	// neutral-only bank appears with no findings
	dashen := got[1]
	if dashen.Bank != "Dashen" || dashen.Drivers != nil || dashen.PainPoints != nil {
		t.Fatalf("unexpected Dashen insight: %+v", dashen)
	}
}
