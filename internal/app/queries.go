package app

import (
	"context"
	"fmt"
	"time"

	"github.com/arwanasir/bank-sentiment-analysis/internal/analytics"
	"github.com/arwanasir/bank-sentiment-analysis/internal/domain"
)

// QueryService serves the reporting reads. Aggregates and themes are computed
// from the stored working set on demand and cached; reviews ordered by the
// repository keep the bank iteration order stable across calls.
type QueryService struct {
	repo      domain.ReviewRepository
	cache     domain.Cache
	cacheTTL  time.Duration
	extractor *analytics.Extractor
	grouper   *analytics.Grouper
}

func NewQueryService(r domain.ReviewRepository, c domain.Cache, ttl time.Duration, e *analytics.Extractor, g *analytics.Grouper) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl, extractor: e, grouper: g}
}

// BankSummaries returns one summary per bank, ranked by mean rating
// descending (stable on ties).
func (s *QueryService) BankSummaries(ctx context.Context) ([]domain.BankSummary, error) {
	const key = "report:summaries"
	var out []domain.BankSummary
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	reviews, err := s.repo.ListAnnotated(ctx)
	if err != nil {
		return nil, err
	}
	banks := annotatedBankOrder(reviews)
	out = analytics.RankByRating(analytics.SummarizeBanks(reviews, banks))

	_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

// RatingBreakdown returns the per-(bank, rating) rows for one bank. A bank
// with no stored reviews yields an empty slice, not an error.
func (s *QueryService) RatingBreakdown(ctx context.Context, bank string) ([]domain.RatingAggregate, error) {
	key := fmt.Sprintf("report:ratings:%s", bank)
	var out []domain.RatingAggregate
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	reviews, err := s.repo.ListAnnotatedByBank(ctx, bank)
	if err != nil {
		return nil, err
	}
	out = analytics.BreakdownByRating(reviews, []string{bank})

	_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

// BankThemes extracts and groups the keyword themes for one bank's corpus.
func (s *QueryService) BankThemes(ctx context.Context, bank string) (domain.BankThemes, error) {
	key := fmt.Sprintf("report:themes:%s", bank)
	var out domain.BankThemes
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	reviews, err := s.repo.ListAnnotatedByBank(ctx, bank)
	if err != nil {
		return domain.BankThemes{}, err
	}
	texts := make([]*string, len(reviews))
	var bodies []string
	for i := range reviews {
		texts[i] = reviews[i].Text
		if reviews[i].Text != nil {
			bodies = append(bodies, *reviews[i].Text)
		}
	}
	out = domain.BankThemes{
		Bank:   bank,
		Themes: s.grouper.Group(s.extractor.Terms(texts), bodies),
	}

	_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

// BankInsights returns the drivers/pain-points scan over all banks.
func (s *QueryService) BankInsights(ctx context.Context) ([]domain.BankInsight, error) {
	const key = "report:insights"
	var out []domain.BankInsight
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	reviews, err := s.repo.ListAnnotated(ctx)
	if err != nil {
		return nil, err
	}
	out = analytics.Insights(reviews, annotatedBankOrder(reviews))

	_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

func annotatedBankOrder(reviews []domain.AnnotatedReview) []string {
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
