package mysql

const listBanksSQL = `
SELECT id, bank_name, app_name
FROM banks
ORDER BY id
`

const insertReviewsPrefix = "INSERT INTO reviews\n  (review_id, bank_id, review_text, rating, review_date, sentiment_label, sentiment_score, source)\nVALUES "

// Use VALUES(col) for broad compatibility; COALESCE keeps old value if new is NULL.
const insertReviewsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  review_text     = COALESCE(VALUES(review_text), reviews.review_text),\n" +
	"  rating          = VALUES(rating),\n" +
	"  review_date     = VALUES(review_date),\n" +
	"  sentiment_label = VALUES(sentiment_label),\n" +
	"  sentiment_score = VALUES(sentiment_score),\n" +
	"  source          = VALUES(source),\n" +
	"  updated_at      = CURRENT_TIMESTAMP\n"

const insertMissSQL = `
INSERT INTO identity_misses (bank_name)
VALUES (?)
ON DUPLICATE KEY UPDATE seen_at = CURRENT_TIMESTAMP
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const countByBankSQL = `
SELECT b.bank_name, COUNT(r.review_id)
FROM banks b
LEFT JOIN reviews r ON r.bank_id = b.id
GROUP BY b.id, b.bank_name
ORDER BY b.id
`

// DATE_FORMAT keeps the date a plain YYYY-MM-DD string on the way out, so the
// storage round trip never changes the normalized representation.
const listAnnotatedSQL = `
SELECT
  r.review_id,
  b.bank_name,
  r.bank_id,
  r.review_text,
  r.rating,
  DATE_FORMAT(r.review_date, '%Y-%m-%d'),
  r.sentiment_label,
  r.sentiment_score,
  r.source
FROM reviews r
JOIN banks b ON b.id = r.bank_id
ORDER BY r.bank_id, r.review_date, r.review_id
`

const listAnnotatedByBankSQL = `
SELECT
  r.review_id,
  b.bank_name,
  r.bank_id,
  r.review_text,
  r.rating,
  DATE_FORMAT(r.review_date, '%Y-%m-%d'),
  r.sentiment_label,
  r.sentiment_score,
  r.source
FROM reviews r
JOIN banks b ON b.id = r.bank_id
WHERE LOWER(b.bank_name) = LOWER(?)
ORDER BY r.review_date, r.review_id
`
