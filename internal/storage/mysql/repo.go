package mysql

import (
	"context"
	"database/sql"
	"strings"

	"github.com/arwanasir/bank-sentiment-analysis/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertReviews(ctx context.Context, rs []domain.AnnotatedReview) error {
	if len(rs) == 0 {
		return nil
	}
	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*8) // 8 params per row
	for _, rv := range rs {
		values = append(values, "(?,?,?,?,?,?,?,?)")
		args = append(args,
			rv.ID,
			rv.BankID,
			valStr(rv.Text),
			rv.Rating,
			rv.Date,
			string(rv.Sentiment.Label),
			rv.Sentiment.Score,
			rv.Source,
		)
	}
	sqlStr := insertReviewsPrefix + strings.Join(values, ",") + insertReviewsOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *Repo) LogIdentityMiss(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx, insertMissSQL, name)
	return err
}

func (r *Repo) ListBanks(ctx context.Context) ([]domain.BankIdentity, error) {
	rows, err := r.db.QueryContext(ctx, listBanksSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.BankIdentity
	for rows.Next() {
		var b domain.BankIdentity
		var app sql.NullString
		if err := rows.Scan(&b.ID, &b.CanonicalName, &app); err != nil {
			return nil, err
		}
		if app.Valid {
			b.AppName = app.String
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repo) ListAnnotated(ctx context.Context) ([]domain.AnnotatedReview, error) {
	return r.scanAnnotated(ctx, listAnnotatedSQL)
}

func (r *Repo) ListAnnotatedByBank(ctx context.Context, bank string) ([]domain.AnnotatedReview, error) {
	return r.scanAnnotated(ctx, listAnnotatedByBankSQL, bank)
}

func (r *Repo) scanAnnotated(ctx context.Context, query string, args ...any) ([]domain.AnnotatedReview, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AnnotatedReview
	for rows.Next() {
		var rv domain.AnnotatedReview
		var (
			text  sql.NullString
			date  sql.NullString
			label sql.NullString
			score sql.NullFloat64
		)
		if err := rows.Scan(
			&rv.ID,
			&rv.Bank,
			&rv.BankID,
			&text,
			&rv.Rating,
			&date,
			&label,
			&score,
			&rv.Source,
		); err != nil {
			return nil, err
		}
		if text.Valid {
			s := text.String
			rv.Text = &s
		}
		if date.Valid {
			rv.Date = date.String
		}
		if label.Valid {
			rv.Sentiment.Label = domain.SentimentLabel(label.String)
		}
		if score.Valid {
			rv.Sentiment.Score = score.Float64
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) CountByBank(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, countByBankSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, err
		}
		out[name] = n
	}
	return out, rows.Err()
}
