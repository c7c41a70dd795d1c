package analytics

import (
	"strings"

	"github.com/arwanasir/bank-sentiment-analysis/internal/domain"
)

// ThemeRule is one taxonomy entry: a theme name, the substring signals that
// claim a keyword for it, and the fallback capacity for unmatched keywords.
type ThemeRule struct {
	Name     string
	Signals  []string
	Capacity int
}

// DefaultTaxonomy is the fixed theme ontology for banking-app reviews.
// Declaration order is significant twice over: signal matching is
// first-match-wins, and unmatched keywords fall back to the first theme
// still under capacity.
func DefaultTaxonomy() []ThemeRule {
	return []ThemeRule{
		{Name: "Login & Account Access", Signals: []string{"login", "password", "fingerprint", "access", "account"}, Capacity: 5},
		{Name: "Transaction & Transfer", Signals: []string{"transfer", "transaction", "money", "send", "payment"}, Capacity: 5},
		{Name: "App Performance", Signals: []string{"slow", "fast", "crash", "error", "bug", "work"}, Capacity: 5},
		{Name: "User Interface", Signals: []string{"interface", "design", "easy", "simple", "beautiful"}, Capacity: 5},
		{Name: "Customer Support", Signals: []string{"support", "help", "service", "contact"}, Capacity: 5},
		{Name: "Feature Requests", Signals: []string{"should", "could", "please", "add", "feature"}, Capacity: 5},
	}
}

const (
	maxExamplesPerTheme = 2
	exampleScanLimit    = 20
	snippetRuneLimit    = 80
)

// Grouper partitions extracted keywords into the themes of a fixed taxonomy.
type Grouper struct {
	taxonomy []ThemeRule
}

func NewGrouper(taxonomy []ThemeRule) *Grouper {
	return &Grouper{taxonomy: taxonomy}
}

// Group assigns every keyword to exactly one theme. A keyword goes to the
// first theme (taxonomy order) whose signal list contains a substring of it;
// otherwise to the first theme still under its fallback capacity. When every
// theme is at capacity the keyword lands in the last theme, so none is ever
// lost. Themes left empty are dropped; retained themes carry up to two
// example snippets drawn from the earliest reviews mentioning one of the
// theme's top-3 keywords.
func (g *Grouper) Group(keywords []string, reviews []string) []domain.Theme {
	buckets := make([][]string, len(g.taxonomy))

assign:
	for _, kw := range keywords {
		low := strings.ToLower(kw)
		for i, rule := range g.taxonomy {
			for _, sig := range rule.Signals {
				if strings.Contains(low, sig) {
					buckets[i] = append(buckets[i], kw)
					continue assign
				}
			}
		}
		placed := false
		for i, rule := range g.taxonomy {
			if len(buckets[i]) < rule.Capacity {
				buckets[i] = append(buckets[i], kw)
				placed = true
				break
			}
		}
		if !placed && len(buckets) > 0 {
			last := len(buckets) - 1
			buckets[last] = append(buckets[last], kw)
		}
	}

	out := make([]domain.Theme, 0, len(g.taxonomy))
	for i, rule := range g.taxonomy {
		if len(buckets[i]) == 0 {
			continue
		}
		out = append(out, domain.Theme{
			Name:     rule.Name,
			Keywords: buckets[i],
			Examples: exampleSnippets(buckets[i], reviews),
		})
	}
	return out
}

func exampleSnippets(keywords []string, reviews []string) []string {
	top := keywords
	if len(top) > 3 {
		top = top[:3]
	}

	var examples []string
	scanned := 0
	for _, review := range reviews {
		if scanned >= exampleScanLimit || len(examples) >= maxExamplesPerTheme {
			break
		}
		scanned++
		low := strings.ToLower(review)
		for _, kw := range top {
			if strings.Contains(low, strings.ToLower(kw)) {
				examples = append(examples, truncate(review, snippetRuneLimit))
				break
			}
		}
	}
	return examples
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
