// Package sentiment scores article tone with the VADER lexicon. The
// estimator is replaceable; the fixed contract is the label thresholding:
// polarity above the positive threshold is positive, below the negative
// threshold is negative, everything else neutral.
package sentiment

import (
	"math"
	"strings"

	"github.com/jonreiter/govader"

	"newsgenie/internal/news"
)

const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
)

type Scorer struct {
	analyzer *govader.SentimentIntensityAnalyzer

	positiveThreshold float64
	negativeThreshold float64
}

func New(positiveThreshold, negativeThreshold float64) *Scorer {
	return &Scorer{
		analyzer:          govader.NewSentimentIntensityAnalyzer(),
		positiveThreshold: positiveThreshold,
		negativeThreshold: negativeThreshold,
	}
}

// Analyze scores one text. Empty or whitespace-only input returns the
// exact neutral zero record; it is never an error.
func (s *Scorer) Analyze(text string) news.Sentiment {
	if strings.TrimSpace(text) == "" {
		return news.Sentiment{Polarity: 0.0, Subjectivity: 0.0, Label: LabelNeutral}
	}

	scores := s.analyzer.PolarityScores(text)

	// Compound is already normalized to [-1,1]; the neutral proportion
	// inverts into a [0,1] subjectivity estimate.
	polarity := round3(clamp(scores.Compound, -1, 1))
	subjectivity := round3(clamp(1-scores.Neutral, 0, 1))

	return news.Sentiment{
		Polarity:     polarity,
		Subjectivity: subjectivity,
		Label:        s.Label(polarity),
	}
}

// Label is the pure thresholding function from polarity to label.
func (s *Scorer) Label(polarity float64) string {
	switch {
	case polarity > s.positiveThreshold:
		return LabelPositive
	case polarity < s.negativeThreshold:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// AnalyzeBatch writes a sentiment record onto every article, scoring the
// title+summary concatenation.
func (s *Scorer) AnalyzeBatch(articles []news.Article) []news.Article {
	for i := range articles {
		articles[i].Sentiment = s.Analyze(articles[i].Text())
	}
	return articles
}

// Distribution counts labels across a batch. All three buckets are always
// present, so consumers can render zeroes.
func Distribution(articles []news.Article) map[string]int {
	dist := map[string]int{
		LabelPositive: 0,
		LabelNegative: 0,
		LabelNeutral:  0,
	}
	for _, a := range articles {
		label := a.Sentiment.Label
		if label == "" {
			label = LabelNeutral
		}
		dist[label]++
	}
	return dist
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
