// Package render draws keyword clouds for the generated reports.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/arwanasir/bank-sentiment-analysis/internal/domain"
)

// FallbackCorpus seeds the cloud when a bank has no usable review text.
const FallbackCorpus = "bank banking mobile app money transfer"

// ErrNoTerms is returned when there is nothing to draw.
var ErrNoTerms = errors.New("render: no terms to draw")

const (
	canvasW = 1000
	canvasH = 600
	margin  = 24.0
	minPts  = 18.0
	maxPts  = 72.0
)

var palette = [][3]float64{
	{0.13, 0.32, 0.55},
	{0.84, 0.36, 0.14},
	{0.18, 0.52, 0.30},
	{0.55, 0.20, 0.45},
	{0.35, 0.35, 0.35},
}

type Cloud struct {
	fnt *truetype.Font
}

func NewCloud() (*Cloud, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse embedded font: %w", err)
	}
	return &Cloud{fnt: f}, nil
}

// Render draws the weighted terms onto outPath as a PNG. Terms are laid out
// in weight order, largest first, wrapping into rows until the canvas fills.
func (c *Cloud) Render(terms []domain.Keyword, outPath string) error {
	if len(terms) == 0 {
		return ErrNoTerms
	}

	lo, hi := terms[0].Score, terms[0].Score
	for _, t := range terms {
		if t.Score < lo {
			lo = t.Score
		}
		if t.Score > hi {
			hi = t.Score
		}
	}

	dc := gg.NewContext(canvasW, canvasH)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	x, y := margin, margin
	rowH := 0.0
	for i, t := range terms {
		pts := minPts
		if hi > lo {
			pts = minPts + (maxPts-minPts)*(t.Score-lo)/(hi-lo)
		}
		face := truetype.NewFace(c.fnt, &truetype.Options{Size: pts, Hinting: font.HintingFull})
		dc.SetFontFace(face)

		w, h := dc.MeasureString(t.Term)
		if x+w > canvasW-margin {
			x = margin
			y += rowH + 10
			rowH = 0
		}
		if y+h > canvasH-margin {
			break
		}

		col := palette[i%len(palette)]
		dc.SetRGB(col[0], col[1], col[2])
		dc.DrawStringAnchored(t.Term, x, y+h, 0, 0)
		x += w + 16
		if h > rowH {
			rowH = h
		}
	}

	if err := dc.SavePNG(outPath); err != nil {
		return fmt.Errorf("save wordcloud %s: %w", outPath, err)
	}
	return nil
}

// RenderWithFallback retries once with the fallback corpus when the real
// terms are empty. A failure on the fallback pass is a configuration error.
func (c *Cloud) RenderWithFallback(terms []domain.Keyword, outPath string) error {
	err := c.Render(terms, outPath)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNoTerms) {
		return err
	}
	log.Warn().Str("path", outPath).Msg("no terms for wordcloud, falling back to default corpus")
	return c.Render(fallbackTerms(), outPath)
}

func fallbackTerms() []domain.Keyword {
	words := strings.Fields(FallbackCorpus)
	out := make([]domain.Keyword, 0, len(words))
	for _, w := range words {
		out = append(out, domain.Keyword{Term: w, Score: 1})
	}
	return out
}
