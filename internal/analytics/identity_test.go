package analytics_test

import (
	"reflect"
	"testing"

	"github.com/arwanasir/bank-sentiment-analysis/internal/analytics"
	"github.com/arwanasir/bank-sentiment-analysis/internal/domain"
)

func registry() []domain.BankIdentity {
	return []domain.BankIdentity{
		{ID: 1, CanonicalName: "Commercial Bank of Ethiopia"},
		{ID: 2, CanonicalName: "Bank of Abyssinia"},
		{ID: 3, CanonicalName: "Dashen Bank"},
	}
}

func TestResolve_CaseAndWhitespaceInsensitive(t *testing.T) {
	m := analytics.NewMatcher(registry())
	for _, name := range []string{"Dashen Bank", "dashen bank", "DASHEN BANK", "  Dashen Bank  "} {
		id, ok := m.Resolve(name)
		if !ok || id != 3 {
			t.Errorf("Resolve(%q) = (%d, %v), want (3, true)", name, id, ok)
		}
	}
	if names := m.Unmatched(); len(names) != 0 {
		t.Fatalf("no names should be unmatched, got %v", names)
	}
}

func TestResolve_NoFuzzyMatching(t *testing.T) {
	m := analytics.NewMatcher(registry())
	if _, ok := m.Resolve("Dashen"); ok {
		t.Fatal("partial name must not resolve")
	}
	if _, ok := m.Resolve("Dashen Banks"); ok {
		t.Fatal("near-miss must not resolve")
	}
}

func TestUnmatched_AggregatesDistinctNames(t *testing.T) {
	m := analytics.NewMatcher(registry())
	m.Resolve("awash bank")
	m.Resolve("Awash Bank") // different casing, distinct entry
	m.Resolve("awash bank") // repeat, not duplicated
	m.Resolve(" zemen ")

	got := m.Unmatched()
	want := []string{"Awash Bank", "awash bank", "zemen"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Unmatched() = %v, want %v", got, want)
	}
}
