package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/arwanasir/bank-sentiment-analysis/internal/adapters/observability"
	"github.com/arwanasir/bank-sentiment-analysis/internal/analytics"
	"github.com/arwanasir/bank-sentiment-analysis/internal/domain"
)

// Pipeline runs the single-pass batch over a raw review list:
// normalize -> sentiment -> per-bank keywords/themes -> aggregate.
// Stages share nothing mutable; the two parallel grains (per-review
// sentiment, per-bank theme analysis) gather results by index so output
// ordering always matches input ordering.
type Pipeline struct {
	classifier *analytics.Classifier
	extractor  *analytics.Extractor
	grouper    *analytics.Grouper
	workers    int64
}

func NewPipeline(c *analytics.Classifier, e *analytics.Extractor, g *analytics.Grouper, workers int) *Pipeline {
	if workers <= 0 {
		workers = 1
	}
	return &Pipeline{classifier: c, extractor: e, grouper: g, workers: int64(workers)}
}

// Result carries the pipeline's two deliverables (aggregates and themes)
// plus the annotated working set and repair diagnostics.
type Result struct {
	Reviews   []domain.AnnotatedReview
	Banks     []string // first-seen input order
	Stats     analytics.RepairStats
	Summaries []domain.BankSummary
	Ratings   []domain.RatingAggregate
	Themes    []domain.BankThemes
	Keywords  map[string][]domain.Keyword // per bank, rank order
	Insights  []domain.BankInsight
}

// Run processes one batch. Bad rows never abort the run; they are repaired or
// dropped with counters. The only hard failure besides context cancellation
// is a non-empty input that normalizes to nothing, reported as
// domain.ErrNoUsableRows so callers can tell it from an empty feed.
func (p *Pipeline) Run(ctx context.Context, raw []domain.Review) (Result, error) {
	cleaned, stats := analytics.Normalize(raw, time.Now())
	observability.ObservePipeline("normalize", "deduped", stats.Duplicates)
	observability.ObservePipeline("normalize", "dropped_missing_text", stats.MissingText)
	observability.ObservePipeline("normalize", "dates_filled", stats.DatesFilled)
	for range stats.BadDates {
		observability.DateWarnings.Inc()
	}
	if len(stats.BadDates) > 0 {
		log.Warn().Strs("values", stats.BadDates).Msg("dates left unmodified: failed to parse")
	}
	log.Info().
		Int("input", stats.Input).
		Int("output", stats.Output).
		Int("duplicates", stats.Duplicates).
		Int("missing_text", stats.MissingText).
		Msg("normalization done")

	if len(raw) > 0 && len(cleaned) == 0 {
		return Result{Stats: stats}, domain.ErrNoUsableRows
	}

	annotated, err := p.classifyAll(ctx, cleaned)
	if err != nil {
		return Result{Stats: stats}, err
	}

	banks := firstSeenBanks(cleaned)

	themes, keywords, err := p.themesByBank(ctx, annotated, banks)
	if err != nil {
		return Result{Stats: stats}, err
	}

	res := Result{
		Reviews:   annotated,
		Banks:     banks,
		Stats:     stats,
		Summaries: analytics.SummarizeBanks(annotated, banks),
		Ratings:   analytics.BreakdownByRating(annotated, banks),
		Themes:    themes,
		Keywords:  keywords,
		Insights:  analytics.Insights(annotated, banks),
	}
	return res, nil
}

// classifyAll scores reviews concurrently, bounded by the worker budget.
// Results are written to the slot matching the input index.
func (p *Pipeline) classifyAll(ctx context.Context, cleaned []domain.Review) ([]domain.AnnotatedReview, error) {
	out := make([]domain.AnnotatedReview, len(cleaned))
	sem := semaphore.NewWeighted(p.workers)
	var wg sync.WaitGroup

	for i := range cleaned {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			defer sem.Release(1)
			out[idx] = domain.AnnotatedReview{
				Review:    cleaned[idx],
				Sentiment: p.classifier.Classify(cleaned[idx].Text),
			}
		}(i)
	}
	wg.Wait()
	return out, nil
}

// themesByBank extracts keywords and groups them into themes for each bank's
// corpus independently, in parallel, gathered back by roster index. The raw
// ranked keywords are returned alongside the themes for artifact rendering.
func (p *Pipeline) themesByBank(ctx context.Context, reviews []domain.AnnotatedReview, banks []string) ([]domain.BankThemes, map[string][]domain.Keyword, error) {
	out := make([]domain.BankThemes, len(banks))
	ranked := make([][]domain.Keyword, len(banks))
	sem := semaphore.NewWeighted(p.workers)
	var wg sync.WaitGroup

	for i, bank := range banks {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, nil, err
		}
		wg.Add(1)
		go func(idx int, bank string) {
			defer wg.Done()
			defer sem.Release(1)

			var texts []*string
			var bodies []string
			for j := range reviews {
				if reviews[j].Bank != bank {
					continue
				}
				texts = append(texts, reviews[j].Text)
				if reviews[j].Text != nil {
					bodies = append(bodies, *reviews[j].Text)
				}
			}
			kws := p.extractor.Extract(texts)
			terms := make([]string, len(kws))
			for k, kw := range kws {
				terms[k] = kw.Term
			}
			ranked[idx] = kws
			out[idx] = domain.BankThemes{
				Bank:   bank,
				Themes: p.grouper.Group(terms, bodies),
			}
		}(i, bank)
	}
	wg.Wait()

	keywords := make(map[string][]domain.Keyword, len(banks))
	for i, bank := range banks {
		keywords[bank] = ranked[i]
	}
	return out, keywords, nil
}

func firstSeenBanks(reviews []domain.Review) []string {
	seen := make(map[string]struct{})
	var banks []string
	for i := range reviews {
		if _, ok := seen[reviews[i].Bank]; ok {
			continue
		}
		seen[reviews[i].Bank] = struct{}{}
		banks = append(banks, reviews[i].Bank)
	}
	return banks
}
