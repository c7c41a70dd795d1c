// Package playstore is the acquisition collaborator: it pulls paginated
// review batches for one app until a target count (or the feed) is
// exhausted. The pipeline consumes its output as a flat list of raw rows.
package playstore

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/arwanasir/bank-sentiment-analysis/internal/adapters/observability"
	"github.com/arwanasir/bank-sentiment-analysis/internal/domain"
)

const (
	// SourceTag marks every row's provenance for a run against this feed.
	SourceTag = "Google Play"

	batchSize   = 200
	maxAttempts = 10 // pagination attempts per app, not HTTP retries
)

type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// wire shapes of the review feed
type reviewRow struct {
	ReviewID string  `json:"reviewId"`
	Content  *string `json:"content"`
	Score    int     `json:"score"`
	At       string  `json:"at"`
}

type reviewPage struct {
	Reviews   []reviewRow `json:"reviews"`
	NextToken string      `json:"nextToken"`
}

// FetchReviews pages through the feed newest-first until target rows are
// collected, the feed ends, or the attempt cap is hit. Rows beyond target
// are discarded so every bank contributes at most the same amount.
func (c *Client) FetchReviews(ctx context.Context, bank, appID string, target int) ([]domain.Review, error) {
	var rows []reviewRow
	token := ""

	for attempt := 0; len(rows) < target && attempt < maxAttempts; attempt++ {
		page, err := c.fetchPage(ctx, appID, token)
		if err != nil {
			return nil, err
		}
		rows = append(rows, page.Reviews...)
		if page.NextToken == "" {
			break
		}
		token = page.NextToken
	}
	if len(rows) > target {
		rows = rows[:target]
	}

	out := make([]domain.Review, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Review{
			ID:     r.ReviewID,
			Bank:   bank,
			Text:   r.Content,
			Rating: r.Score,
			Date:   r.At,
			Source: SourceTag,
		})
	}
	return out, nil
}

func (c *Client) fetchPage(ctx context.Context, appID, token string) (reviewPage, error) {
	q := url.Values{"count": []string{strconv.Itoa(batchSize)}}
	if token != "" {
		q.Set("token", token)
	}
	u := fmt.Sprintf("%s/apps/%s/reviews?%s", c.base, url.PathEscape(appID), q.Encode())

	var page reviewPage
	if err := c.get(ctx, u, &page); err != nil {
		return reviewPage{}, err
	}
	return page, nil
}

// ---- Internals ----

var (
	ErrNotFound     = errors.New("playstore: app not found")
	ErrUnauthorized = errors.New("playstore: unauthorized")
)

// get performs a GET with client-side rate limiting, retries, and JSON decode
// into out. Retries on 429 and transient 5xx, honoring Retry-After.
func (c *Client) get(ctx context.Context, reqURL string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "bank-reviews/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("playstore", "reviews", resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusNotFound:
			resp.Body.Close()
			return ErrNotFound

		case http.StatusUnauthorized, http.StatusForbidden:
			resp.Body.Close()
			return ErrUnauthorized

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential delay (200ms, 400ms, 800ms...) with up to
// +50% jitter to avoid thundering herds.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
