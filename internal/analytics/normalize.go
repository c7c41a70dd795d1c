// Package analytics holds the review normalization and text-analytics core:
// deduplication and field repair, sentiment classification, TF-IDF keyword
// extraction, theme bucketing, bank identity resolution, and aggregation.
// Every function here is a pure transformation over its inputs; diagnostics
// are returned as counters and value lists, never logged or persisted.
package analytics

import (
	"time"

	"github.com/arwanasir/bank-sentiment-analysis/internal/domain"
)

// DateFormat is the single calendar format all review dates are normalized to.
const DateFormat = "2006-01-02"

// acceptedDateLayouts are the formats the normalizer will repair from.
// A value matching none of them is left unmodified and reported as a warning
// rather than dropped.
var acceptedDateLayouts = []string{
	DateFormat,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"Jan 2, 2006",
}

// RepairStats counts what each normalization step removed or repaired.
type RepairStats struct {
	Input       int
	Output      int
	Duplicates  int
	MissingText int
	DatesFilled int

	// BadDates lists date values that failed to parse and were kept as-is.
	// This is the known soft-failure path: warn, don't lose data.
	BadDates []string
}

// Normalize deduplicates and field-repairs raw review rows. Steps run in a
// fixed order: drop all but the first occurrence of each review id, drop rows
// with a missing (nil) text body, fill missing dates with now, then reformat
// every date to DateFormat. Rows with an empty-but-present text are retained.
func Normalize(in []domain.Review, now time.Time) ([]domain.Review, RepairStats) {
	stats := RepairStats{Input: len(in)}

	seen := make(map[string]struct{}, len(in))
	out := make([]domain.Review, 0, len(in))
	for _, r := range in {
		if _, dup := seen[r.ID]; dup {
			stats.Duplicates++
			continue
		}
		seen[r.ID] = struct{}{}

		if r.Text == nil {
			stats.MissingText++
			continue
		}

		if r.Date == "" {
			r.Date = now.Format(DateFormat)
			stats.DatesFilled++
		} else if formatted, ok := reformatDate(r.Date); ok {
			r.Date = formatted
		} else {
			stats.BadDates = append(stats.BadDates, r.Date)
		}

		out = append(out, r)
	}

	stats.Output = len(out)
	return out, stats
}

func reformatDate(v string) (string, bool) {
	for _, layout := range acceptedDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(DateFormat), true
		}
	}
	return "", false
}
