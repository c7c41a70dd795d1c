package analytics

import (
	"sort"
	"strings"

	"github.com/arwanasir/bank-sentiment-analysis/internal/domain"
)

// Matcher resolves free-text bank labels to canonical identities. Matching is
// exact on a lowercase, whitespace-trimmed key; no fuzzy or edit-distance
// matching. Names that fail to resolve are collected once each for a single
// aggregated warning instead of failing the batch.
type Matcher struct {
	byName    map[string]domain.BankIdentity
	unmatched map[string]struct{}
}

func NewMatcher(banks []domain.BankIdentity) *Matcher {
	m := &Matcher{
		byName:    make(map[string]domain.BankIdentity, len(banks)),
		unmatched: make(map[string]struct{}),
	}
	for _, b := range banks {
		m.byName[normalizeName(b.CanonicalName)] = b
	}
	return m
}

// Resolve returns the bank id for name, or false when the registry has no
// entry. Unresolved names are remembered (trimmed, original casing) for
// Unmatched.
func (m *Matcher) Resolve(name string) (int64, bool) {
	b, ok := m.byName[normalizeName(name)]
	if !ok {
		m.unmatched[strings.TrimSpace(name)] = struct{}{}
		return 0, false
	}
	return b.ID, true
}

// Unmatched returns the distinct unresolved names seen so far, sorted for a
// stable warning message.
func (m *Matcher) Unmatched() []string {
	out := make([]string, 0, len(m.unmatched))
	for n := range m.unmatched {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
