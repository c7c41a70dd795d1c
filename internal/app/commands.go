package app

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/arwanasir/bank-sentiment-analysis/internal/adapters/observability"
	"github.com/arwanasir/bank-sentiment-analysis/internal/analytics"
	"github.com/arwanasir/bank-sentiment-analysis/internal/domain"
	"github.com/arwanasir/bank-sentiment-analysis/internal/export"
)

// Target names one app to ingest: the bank label the feed rows will carry and
// the store-side app id to fetch.
type Target struct {
	Bank  string
	AppID string
}

// CloudRenderer draws a keyword cloud image for one bank's vocabulary.
type CloudRenderer interface {
	RenderWithFallback(terms []domain.Keyword, outPath string) error
}

// IngestionService drives one full batch: acquire raw rows per bank, run the
// analytics pipeline, resolve bank identities against the registry, persist
// resolved rows, and write the file-boundary artifacts.
type IngestionService struct {
	source  domain.ReviewSource
	repo    domain.ReviewRepository
	pipe    *Pipeline
	writer  *export.Writer // nil disables artifact export
	clouds  CloudRenderer  // nil disables word-cloud rendering
	workers int64
}

func NewIngestionService(src domain.ReviewSource, repo domain.ReviewRepository, pipe *Pipeline, w *export.Writer, clouds CloudRenderer, workers int) *IngestionService {
	if workers <= 0 {
		workers = 1
	}
	return &IngestionService{source: src, repo: repo, pipe: pipe, writer: w, clouds: clouds, workers: int64(workers)}
}

// Run ingests every target and returns the pipeline result. Fetches run
// concurrently but are flattened back in roster order so downstream ordering
// (and the aggregator's tie-break) stays deterministic.
func (s *IngestionService) Run(ctx context.Context, targets []Target, targetPerBank int) (Result, error) {
	batches := make([][]domain.Review, len(targets))
	sem := semaphore.NewWeighted(s.workers)
	var wg sync.WaitGroup
	errs := make([]error, len(targets))

	for i, t := range targets {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return Result{}, err
		}
		wg.Add(1)
		go func(idx int, t Target) {
			defer wg.Done()
			defer sem.Release(1)
			rows, err := s.source.FetchReviews(ctx, t.Bank, t.AppID, targetPerBank)
			if err != nil {
				errs[idx] = fmt.Errorf("fetch %s: %w", t.Bank, err)
				return
			}
			status := "NO"
			if len(rows) >= targetPerBank {
				status = "YES"
			}
			log.Info().Str("bank", t.Bank).Int("reviews", len(rows)).Str("target_met", status).Msg("fetch done")
			batches[idx] = rows
		}(i, t)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return Result{}, err
		}
	}

	var raw []domain.Review
	for _, b := range batches {
		raw = append(raw, b...)
	}
	observability.ObservePipeline("acquire", "fetched", len(raw))

	res, err := s.pipe.Run(ctx, raw)
	if err != nil {
		return Result{}, err
	}

	if err := s.persist(ctx, &res); err != nil {
		return Result{}, err
	}

	if s.writer != nil {
		if err := s.exportArtifacts(&res); err != nil {
			return Result{}, err
		}
	}

	if counts, err := s.repo.CountByBank(ctx); err == nil {
		for bank, n := range counts {
			log.Info().Str("bank", bank).Int("stored", n).Msg("verification count")
		}
	} else {
		log.Warn().Err(err).Msg("verification query failed")
	}

	return res, nil
}

// persist resolves bank identities and upserts the resolved rows. Unmatched
// bank labels are excluded from the join and reported once, aggregated, at
// the end; they never fail the batch.
func (s *IngestionService) persist(ctx context.Context, res *Result) error {
	banks, err := s.repo.ListBanks(ctx)
	if err != nil {
		return fmt.Errorf("load bank registry: %w", err)
	}
	matcher := analytics.NewMatcher(banks)

	matched := make([]domain.AnnotatedReview, 0, len(res.Reviews))
	for i := range res.Reviews {
		r := res.Reviews[i]
		id, ok := matcher.Resolve(r.Bank)
		if !ok {
			continue
		}
		r.BankID = id
		matched = append(matched, r)
	}

	if unmatched := matcher.Unmatched(); len(unmatched) > 0 {
		log.Warn().Strs("banks", unmatched).Msg("bank labels not in registry; rows excluded")
		for _, name := range unmatched {
			observability.UnmatchedBanks.Inc()
			if err := s.repo.LogIdentityMiss(ctx, name); err != nil {
				log.Warn().Err(err).Str("bank", name).Msg("identity miss log failed")
			}
		}
	}

	if len(matched) == 0 {
		return nil
	}
	if err := s.repo.UpsertReviews(ctx, matched); err != nil {
		return fmt.Errorf("upsert reviews: %w", err)
	}
	log.Info().Int("rows", len(matched)).Msg("reviews persisted")
	return nil
}

func (s *IngestionService) exportArtifacts(res *Result) error {
	cleaned := make([]domain.Review, len(res.Reviews))
	for i := range res.Reviews {
		cleaned[i] = res.Reviews[i].Review
	}
	if err := s.writer.WriteCleaned(cleaned); err != nil {
		return fmt.Errorf("export cleaned reviews: %w", err)
	}
	if err := s.writer.WriteAnnotated(res.Reviews); err != nil {
		return fmt.Errorf("export annotated reviews: %w", err)
	}
	if err := s.writer.WriteThemes(res.Themes); err != nil {
		return fmt.Errorf("export themes: %w", err)
	}
	if s.clouds != nil {
		for _, bank := range res.Banks {
			out := s.writer.Path(bankSlug(bank) + "_wordcloud.png")
			if err := s.clouds.RenderWithFallback(res.Keywords[bank], out); err != nil {
				return fmt.Errorf("render wordcloud for %s: %w", bank, err)
			}
		}
	}
	return nil
}

func bankSlug(bank string) string {
	slug := strings.ToLower(strings.TrimSpace(bank))
	return strings.ReplaceAll(slug, " ", "_")
}
