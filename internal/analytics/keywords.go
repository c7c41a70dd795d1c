package analytics

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	prose "github.com/jdkato/prose/v2"

	"github.com/arwanasir/bank-sentiment-analysis/internal/domain"
)

// Unicode classes, not \w: review text is mixed Amharic/English and the
// Ethiopic script has to survive cleaning.
var nonAlnum = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// Extractor computes the most salient unigrams and bigrams of a corpus slice
// ranked by TF-IDF. Terms are lowercased, punctuation-stripped and stop-word
// filtered before counting.
type Extractor struct {
	topN int
}

func NewExtractor(topN int) *Extractor {
	if topN <= 0 {
		topN = 20
	}
	return &Extractor{topN: topN}
}

// Extract ranks terms across the corpus. Nil texts are treated as empty
// strings: they contribute no terms but keep document alignment. A corpus
// with zero usable tokens yields an empty list.
//
// Salience of a term is the sum over documents of its length-normalized term
// frequency, weighted by smoothed inverse document frequency. Ties are broken
// lexicographically so the ordering is deterministic.
func (e *Extractor) Extract(texts []*string) []domain.Keyword {
	n := len(texts)
	if n == 0 {
		return nil
	}

	df := make(map[string]int)
	score := make(map[string]float64)

	type docTerms struct {
		counts map[string]int
		length int
	}
	docs := make([]docTerms, 0, n)

	for _, t := range texts {
		tokens := tokenizeClean(derefText(t))
		counts := make(map[string]int, len(tokens)*2)
		for i, tok := range tokens {
			counts[tok]++
			if i+1 < len(tokens) {
				counts[tok+" "+tokens[i+1]]++
			}
		}
		for term := range counts {
			df[term]++
		}
		docs = append(docs, docTerms{counts: counts, length: len(tokens)})
	}

	for _, d := range docs {
		if d.length == 0 {
			continue
		}
		for term, count := range d.counts {
			idf := math.Log(float64(1+n)/float64(1+df[term])) + 1
			score[term] += float64(count) / float64(d.length) * idf
		}
	}
	if len(score) == 0 {
		return nil
	}

	ranked := make([]domain.Keyword, 0, len(score))
	for term, s := range score {
		ranked = append(ranked, domain.Keyword{Term: term, Score: s})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Term < ranked[j].Term
	})
	if len(ranked) > e.topN {
		ranked = ranked[:e.topN]
	}
	return ranked
}

// Terms reduces Extract output to the bare term list, in rank order.
func (e *Extractor) Terms(texts []*string) []string {
	kws := e.Extract(texts)
	out := make([]string, len(kws))
	for i, kw := range kws {
		out[i] = kw.Term
	}
	return out
}

// tokenizeClean lowercases, strips non-alphanumeric characters and returns
// stop-word-filtered tokens of at least two characters.
func tokenizeClean(text string) []string {
	cleaned := strings.TrimSpace(nonAlnum.ReplaceAllString(strings.ToLower(text), " "))
	if cleaned == "" {
		return nil
	}
	doc, err := prose.NewDocument(cleaned, prose.WithTagging(false), prose.WithExtraction(false))
	if err != nil {
		// degrade to an empty document rather than failing the corpus
		return nil
	}
	toks := doc.Tokens()
	out := make([]string, 0, len(toks))
	for _, tok := range toks {
		w := tok.Text
		if utf8.RuneCountInString(w) < 2 || isStopword(w) {
			continue
		}
		out = append(out, w)
	}
	return out
}

func derefText(t *string) string {
	if t == nil {
		return ""
	}
	return *t
}
