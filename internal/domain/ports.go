package domain

import "context"

type ReviewRepository interface {
	// Write paths
	UpsertReviews(ctx context.Context, rs []AnnotatedReview) error
	LogIdentityMiss(ctx context.Context, name string) error

	// Read paths
	ListBanks(ctx context.Context) ([]BankIdentity, error)
	ListAnnotated(ctx context.Context) ([]AnnotatedReview, error)
	ListAnnotatedByBank(ctx context.Context, bank string) ([]AnnotatedReview, error)
	CountByBank(ctx context.Context) (map[string]int, error)
}

// ReviewSource is the acquisition collaborator: it materializes a flat list
// of raw review rows for one app, already tagged with the bank label.
type ReviewSource interface {
	FetchReviews(ctx context.Context, bank, appID string, target int) ([]Review, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
