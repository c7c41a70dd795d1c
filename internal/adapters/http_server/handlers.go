package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/arwanasir/bank-sentiment-analysis/internal/analytics"
	"github.com/arwanasir/bank-sentiment-analysis/internal/app"
	"github.com/arwanasir/bank-sentiment-analysis/internal/domain"
)

type Handlers struct{ Q *app.QueryService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/banks", h.listBanks)
	s.mux.Get("/v1/banks/{bank}/ratings", h.ratingBreakdown)
	s.mux.Get("/v1/banks/{bank}/themes", h.bankThemes)
	s.mux.Get("/v1/insights", h.insights)
}

// ---- response DTOs (rounding to 3 decimals happens here, and only here) ----

type summaryDTO struct {
	Bank          string  `json:"bank"`
	MeanRating    float64 `json:"mean_rating"`
	MeanSentiment float64 `json:"mean_sentiment"`
	Reviews       int     `json:"total_reviews"`
}

type ratingDTO struct {
	Bank          string  `json:"bank"`
	Rating        int     `json:"rating"`
	MeanSentiment float64 `json:"avg_sentiment_score"`
	Positive      int     `json:"positive_count"`
	Neutral       int     `json:"neutral_count"`
	Negative      int     `json:"negative_count"`
	Total         int     `json:"total_reviews"`
}

type themesDTO struct {
	Bank     string              `json:"bank"`
	Themes   map[string][]string `json:"themes"`
	Examples map[string][]string `json:"examples"`
}

func toSummaryDTOs(in []domain.BankSummary) []summaryDTO {
	out := make([]summaryDTO, len(in))
	for i, s := range in {
		out[i] = summaryDTO{
			Bank:          s.Bank,
			MeanRating:    analytics.Round3(s.MeanRating),
			MeanSentiment: analytics.Round3(s.MeanSentiment),
			Reviews:       s.Reviews,
		}
	}
	return out
}

func toRatingDTOs(in []domain.RatingAggregate) []ratingDTO {
	out := make([]ratingDTO, len(in))
	for i, a := range in {
		out[i] = ratingDTO{
			Bank:          a.Bank,
			Rating:        a.Rating,
			MeanSentiment: analytics.Round3(a.MeanSentiment),
			Positive:      a.Positive,
			Neutral:       a.Neutral,
			Negative:      a.Negative,
			Total:         a.Total,
		}
	}
	return out
}

// ---- helpers ----

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// ---- handlers ----

func (h *Handlers) listBanks(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.Q.BankSummaries(r.Context())
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "failed to load bank summaries")
		return
	}
	writeJSON(w, r, toSummaryDTOs(summaries))
}

func (h *Handlers) ratingBreakdown(w http.ResponseWriter, r *http.Request) {
	bank := chi.URLParam(r, "bank")
	if bank == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid bank", "bank name is required")
		return
	}
	rows, err := h.Q.RatingBreakdown(r.Context(), bank)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "failed to load rating breakdown")
		return
	}
	writeJSON(w, r, toRatingDTOs(rows))
}

func (h *Handlers) bankThemes(w http.ResponseWriter, r *http.Request) {
	bank := chi.URLParam(r, "bank")
	if bank == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid bank", "bank name is required")
		return
	}
	bt, err := h.Q.BankThemes(r.Context(), bank)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "failed to load themes")
		return
	}
	dto := themesDTO{Bank: bt.Bank, Themes: map[string][]string{}, Examples: map[string][]string{}}
	for _, t := range bt.Themes {
		dto.Themes[t.Name] = t.Keywords
		dto.Examples[t.Name] = t.Examples
	}
	writeJSON(w, r, dto)
}

func (h *Handlers) insights(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.BankInsights(r.Context())
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "failed to load insights")
		return
	}
	writeJSON(w, r, out)
}
