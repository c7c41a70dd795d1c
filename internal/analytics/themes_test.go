package analytics_test

import (
	"strings"
	"testing"

	"github.com/arwanasir/bank-sentiment-analysis/internal/analytics"
)

func TestGroup_EveryKeywordPlacedExactlyOnce(t *testing.T) {
	g := analytics.NewGrouper(analytics.DefaultTaxonomy())
	keywords := []string{"login error", "transfer", "crash", "design", "support", "please add", "zzz unmatched"}

	themes := g.Group(keywords, nil)

	placed := map[string]int{}
	for _, th := range themes {
		for _, kw := range th.Keywords {
			placed[kw]++
		}
	}
	for _, kw := range keywords {
		if placed[kw] != 1 {
			t.Errorf("keyword %q placed %d times, want exactly 1", kw, placed[kw])
		}
	}
}

func TestGroup_FirstMatchWins(t *testing.T) {
	g := analytics.NewGrouper(analytics.DefaultTaxonomy())
	// "account transfer" matches both Login ("account") and Transaction
	// ("transfer"); taxonomy order says Login wins.
	themes := g.Group([]string{"account transfer"}, nil)

	if len(themes) != 1 || themes[0].Name != "Login & Account Access" {
		t.Fatalf("got %+v, want single Login & Account Access theme", themes)
	}
}

func TestGroup_EmptyThemesDropped(t *testing.T) {
	g := analytics.NewGrouper(analytics.DefaultTaxonomy())
	themes := g.Group([]string{"transfer"}, nil)

	if len(themes) != 1 || themes[0].Name != "Transaction & Transfer" {
		t.Fatalf("got %+v, want only Transaction & Transfer", themes)
	}
}

func TestGroup_FallbackRespectsCapacity(t *testing.T) {
	tax := []analytics.ThemeRule{
		{Name: "First", Signals: []string{"never-matches-a"}, Capacity: 2},
		{Name: "Second", Signals: []string{"never-matches-b"}, Capacity: 2},
	}
	g := analytics.NewGrouper(tax)
	themes := g.Group([]string{"kw1", "kw2", "kw3"}, nil)

	if len(themes) != 2 {
		t.Fatalf("got %d themes, want 2", len(themes))
	}
	if len(themes[0].Keywords) != 2 {
		t.Fatalf("first theme got %v, want 2 fallback keywords", themes[0].Keywords)
	}
	if len(themes[1].Keywords) != 1 || themes[1].Keywords[0] != "kw3" {
		t.Fatalf("overflow should spill into next theme, got %v", themes[1].Keywords)
	}
}

func TestGroup_ExampleSnippets(t *testing.T) {
	g := analytics.NewGrouper(analytics.DefaultTaxonomy())
	long := "The transfer took forever and then failed, " + strings.Repeat("really ", 20) + "frustrating experience overall"
	reviews := []string{
		"Transfer worked fine for me",
		long,
		"Transfer number three, should not appear as an example",
	}
	themes := g.Group([]string{"transfer"}, reviews)

	if len(themes) != 1 {
		t.Fatalf("got %d themes, want 1", len(themes))
	}
	ex := themes[0].Examples
	if len(ex) != 2 {
		t.Fatalf("got %d examples, want 2", len(ex))
	}
	if ex[0] != "Transfer worked fine for me" {
		t.Fatalf("examples must come from the earliest matching reviews, got %q", ex[0])
	}
	if !strings.HasSuffix(ex[1], "...") {
		t.Fatalf("long example not truncated: %q", ex[1])
	}
	if got := len([]rune(strings.TrimSuffix(ex[1], "..."))); got != 80 {
		t.Fatalf("truncated snippet is %d runes, want 80", got)
	}
}
