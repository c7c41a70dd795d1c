package analytics

import (
	"strings"

	"github.com/arwanasir/bank-sentiment-analysis/internal/domain"
)

// Driver and pain-point signal registries. Each entry maps a reportable
// finding to the words that evidence it in positive (drivers) or negative
// (pain points) review text. Declaration order fixes the output order.
var driverSignals = []struct {
	name  string
	words []string
}{
	{"Fast Transactions", []string{"fast", "quick", "instant", "speed"}},
	{"Easy to Use", []string{"easy", "simple", "user-friendly", "intuitive"}},
	{"Good UI", []string{"interface", "design", "look", "smooth", "ui"}},
	{"Reliable", []string{"reliable", "stable", "consistent", "dependable"}},
	{"Good Support", []string{"support", "helpful", "responsive", "customer service"}},
}

var painSignals = []struct {
	name  string
	words []string
}{
	{"Slow Performance", []string{"slow", "lag", "delay", "wait", "loading"}},
	{"App Crashes", []string{"crash", "freeze", "close", "stop working", "bug"}},
	{"Login Issues", []string{"login", "password", "cant enter", "access", "sign in"}},
	{"Transfer Problems", []string{"transfer", "transaction", "send money", "failed"}},
	{"Poor Support", []string{"support", "help", "response", "ignore", "no reply"}},
}

// Insights scans each bank's labeled reviews for driver and pain-point
// signals: drivers from the concatenated positive texts, pain points from the
// negative ones. Banks with no reviews are omitted.
func Insights(reviews []domain.AnnotatedReview, banks []string) []domain.BankInsight {
	posText := make(map[string]*strings.Builder, len(banks))
	negText := make(map[string]*strings.Builder, len(banks))
	seen := make(map[string]bool, len(banks))

	for i := range reviews {
		r := &reviews[i]
		seen[r.Bank] = true
		var dst map[string]*strings.Builder
		switch r.Sentiment.Label {
		case domain.SentimentPositive:
			dst = posText
		case domain.SentimentNegative:
			dst = negText
		default:
			continue
		}
		b := dst[r.Bank]
		if b == nil {
			b = &strings.Builder{}
			dst[r.Bank] = b
		}
		if r.Text != nil {
			b.WriteString(strings.ToLower(*r.Text))
			b.WriteByte(' ')
		}
	}

	out := make([]domain.BankInsight, 0, len(banks))
	for _, bank := range banks {
		if !seen[bank] {
			continue
		}
		in := domain.BankInsight{Bank: bank}
		if b := posText[bank]; b != nil {
			text := b.String()
			for _, sig := range driverSignals {
				if containsAny(text, sig.words) {
					in.Drivers = append(in.Drivers, sig.name)
				}
			}
		}
		if b := negText[bank]; b != nil {
			text := b.String()
			for _, sig := range painSignals {
				if containsAny(text, sig.words) {
					in.PainPoints = append(in.PainPoints, sig.name)
				}
			}
		}
		out = append(out, in)
	}
	return out
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
