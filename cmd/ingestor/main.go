package main

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"github.com/arwanasir/bank-sentiment-analysis/internal/adapters/observability"
	"github.com/arwanasir/bank-sentiment-analysis/internal/adapters/playstore"
	"github.com/arwanasir/bank-sentiment-analysis/internal/adapters/render"
	"github.com/arwanasir/bank-sentiment-analysis/internal/analytics"
	"github.com/arwanasir/bank-sentiment-analysis/internal/app"
	"github.com/arwanasir/bank-sentiment-analysis/internal/export"
	"github.com/arwanasir/bank-sentiment-analysis/internal/shared"
	mysqlrepo "github.com/arwanasir/bank-sentiment-analysis/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("base", cfg.PlayBase).
		Int("workers", cfg.Workers).
		Int("target_per_bank", cfg.TargetPerBank).
		Msg("ingestor starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	client, err := playstore.New(cfg.PlayBase, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Play Store client")
	}

	pipe := app.NewPipeline(
		analytics.NewClassifier(analytics.NewVaderScorer()),
		analytics.NewExtractor(cfg.TopKeywords),
		analytics.NewGrouper(analytics.DefaultTaxonomy()),
		cfg.Workers,
	)
	writer := export.NewWriter(cfg.DataDir)
	clouds, err := render.NewCloud()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize wordcloud renderer")
	}
	ing := app.NewIngestionService(client, repo, pipe, writer, clouds, cfg.Workers)

	targets := make([]app.Target, 0, len(shared.BankApps))
	for _, a := range shared.BankApps {
		targets = append(targets, app.Target{Bank: a.Name, AppID: a.AppID})
	}

	res, err := ing.Run(ctx, targets, cfg.TargetPerBank)
	if err != nil {
		log.Fatal().Err(err).Msg("ingestion failed")
	}

	log.Info().
		Int("reviews", len(res.Reviews)).
		Int("banks", len(res.Summaries)).
		Msg("ingestion completed")
}
