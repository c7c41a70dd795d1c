package playstore_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/arwanasir/bank-sentiment-analysis/internal/adapters/playstore"
)

func page(ids []string, next string) map[string]any {
	reviews := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		text := "fine app"
		reviews = append(reviews, map[string]any{
			"reviewId": id,
			"content":  text,
			"score":    4,
			"at":       "2024-05-01",
		})
	}
	return map[string]any{"reviews": reviews, "nextToken": next}
}

func TestClient_FetchReviews_Paginates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		if r.URL.Query().Get("token") == "" {
			_ = json.NewEncoder(w).Encode(page([]string{"r1", "r2"}, "t1"))
			return
		}
		_ = json.NewEncoder(w).Encode(page([]string{"r3"}, ""))
	}))
	defer ts.Close()

	cl, err := playstore.New(ts.URL, 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	rows, err := cl.FetchReviews(ctx, "CBE", "com.example.app", 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows across pages, got %d", len(rows))
	}
	if rows[0].ID != "r1" || rows[2].ID != "r3" {
		t.Fatalf("unexpected ordering: %+v", rows)
	}
	if rows[0].Bank != "CBE" || rows[0].Source != playstore.SourceTag {
		t.Fatalf("rows not tagged: %+v", rows[0])
	}
}

func TestClient_FetchReviews_StopsAtTarget(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		_ = json.NewEncoder(w).Encode(page([]string{"a", "b", "c", "d"}, "more"))
	}))
	defer ts.Close()

	cl, _ := playstore.New(ts.URL, 100)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	rows, err := cl.FetchReviews(ctx, "BOA", "com.example.app", 3)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected target cap of 3, got %d", len(rows))
	}
}

func TestClient_FetchReviews_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			// two transient failures
			w.WriteHeader(500)
		default:
			w.WriteHeader(200)
			_ = json.NewEncoder(w).Encode(page([]string{"r1"}, ""))
		}
	}))
	defer ts.Close()

	cl, _ := playstore.New(ts.URL, 100)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rows, err := cl.FetchReviews(ctx, "CBE", "com.example.app", 5)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
}

func TestClient_FetchReviews_404(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	cl, _ := playstore.New(ts.URL, 100)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := cl.FetchReviews(ctx, "CBE", "com.missing.app", 5)
	if !errors.Is(err, playstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
