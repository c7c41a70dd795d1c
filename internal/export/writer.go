// Package export writes the pipeline's file-boundary artifacts. Column names
// and the nested theme document layout are fixed contracts consumed by
// downstream tooling; keep them stable.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/arwanasir/bank-sentiment-analysis/internal/analytics"
	"github.com/arwanasir/bank-sentiment-analysis/internal/domain"
)

const (
	CleanedFile   = "cleaned_reviews.csv"
	AnnotatedFile = "reviews_with_sentiment.csv"
	ThemesFile    = "bank_themes.json"
)

type Writer struct {
	dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Path resolves an artifact file name inside the output directory.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// WriteCleaned writes the normalized rows. Raw fields text/bank are renamed
// to review/bank at this boundary.
func (w *Writer) WriteCleaned(reviews []domain.Review) error {
	rows := make([][]string, 0, len(reviews)+1)
	rows = append(rows, []string{"review_id", "review", "rating", "date", "bank"})
	for i := range reviews {
		r := &reviews[i]
		rows = append(rows, []string{r.ID, textOrEmpty(r.Text), strconv.Itoa(r.Rating), r.Date, r.Bank})
	}
	return w.writeCSV(CleanedFile, rows)
}

// WriteAnnotated writes the cleaned rows plus their sentiment columns.
// Scores are rounded to three decimals here, at the reporting boundary.
func (w *Writer) WriteAnnotated(reviews []domain.AnnotatedReview) error {
	rows := make([][]string, 0, len(reviews)+1)
	rows = append(rows, []string{"review_id", "review", "rating", "date", "bank", "sentiment_label", "sentiment_score"})
	for i := range reviews {
		r := &reviews[i]
		rows = append(rows, []string{
			r.ID,
			textOrEmpty(r.Text),
			strconv.Itoa(r.Rating),
			r.Date,
			r.Bank,
			string(r.Sentiment.Label),
			strconv.FormatFloat(analytics.Round3(r.Sentiment.Score), 'f', -1, 64),
		})
	}
	return w.writeCSV(AnnotatedFile, rows)
}

// WriteThemes serializes the per-bank theme map as a nested document:
// bank -> {themes: {name: [keywords]}, examples: {name: [snippets]}}.
func (w *Writer) WriteThemes(banks []domain.BankThemes) error {
	type bankDoc struct {
		Themes   map[string][]string `json:"themes"`
		Examples map[string][]string `json:"examples"`
	}
	doc := make(map[string]bankDoc, len(banks))
	for _, b := range banks {
		d := bankDoc{
			Themes:   make(map[string][]string, len(b.Themes)),
			Examples: make(map[string][]string, len(b.Themes)),
		}
		for _, t := range b.Themes {
			d.Themes[t.Name] = t.Keywords
			d.Examples[t.Name] = t.Examples
		}
		doc[b.Bank] = d
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(w.dir, ThemesFile))
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode %s: %w", ThemesFile, err)
	}
	return nil
}

func (w *Writer) writeCSV(name string, rows [][]string) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(w.dir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func textOrEmpty(t *string) string {
	if t == nil {
		return ""
	}
	return *t
}
