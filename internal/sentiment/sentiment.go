// Package sentiment scores free-text comments with a lexicon-based model
// and maps each score to one of three labels.
package sentiment

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"

	"citypulse/backend/internal/model"
)

// Compound score thresholds separating the three labels.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// Scores holds the per-dimension sentiment of a text. Negative, Neutral
// and Positive sum to 1; Compound is the normalized total in [-1, 1].
type Scores struct {
	Negative float64
	Neutral  float64
	Positive float64
	Compound float64
}

// Scorer produces sentiment scores for English text.
type Scorer interface {
	Score(text string) Scores
}

type vaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewScorer creates a Scorer backed by the VADER lexicon.
func NewScorer() Scorer {
	return &vaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score cleans the text and runs it through the analyzer. Text that is
// empty after cleaning scores as fully neutral.
func (s *vaderScorer) Score(text string) Scores {
	cleaned := Clean(text)
	if cleaned == "" {
		return Scores{Neutral: 1}
	}

	result := s.analyzer.PolarityScores(cleaned)
	return Scores{
		Negative: result.Negative,
		Neutral:  result.Neutral,
		Positive: result.Positive,
		Compound: result.Compound,
	}
}

// Classify maps a compound score to a sentiment label.
func Classify(compound float64) string {
	switch {
	case compound >= positiveThreshold:
		return model.LabelPositive
	case compound <= negativeThreshold:
		return model.LabelNegative
	default:
		return model.LabelNeutral
	}
}

var (
	urlPattern     = regexp.MustCompile(`https?://\S+`)
	nonTextPattern = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	spacePattern   = regexp.MustCompile(`\s+`)
)

// Clean normalizes raw comment text before scoring: lowercases, strips
// URLs and punctuation, collapses whitespace. Accented letters survive.
func Clean(text string) string {
	t := strings.ToLower(text)
	t = urlPattern.ReplaceAllString(t, " ")
	t = nonTextPattern.ReplaceAllString(t, " ")
	t = spacePattern.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}
