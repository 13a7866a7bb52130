package sentiment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"newsgenie/internal/news"
)

func defaultScorer() *Scorer {
	return New(0.1, -0.1)
}

func TestAnalyzeEmptyTextIsExactNeutralZero(t *testing.T) {
	s := defaultScorer()

	want := news.Sentiment{Polarity: 0.0, Subjectivity: 0.0, Label: LabelNeutral}
	assert.Equal(t, want, s.Analyze(""))
	assert.Equal(t, want, s.Analyze("   \t\n"))
}

func TestAnalyzePositiveText(t *testing.T) {
	s := defaultScorer()
	got := s.Analyze("This is absolutely wonderful, amazing and fantastic news for everyone")
	assert.Equal(t, LabelPositive, got.Label)
	assert.Greater(t, got.Polarity, 0.1)
}

func TestAnalyzeNegativeText(t *testing.T) {
	s := defaultScorer()
	got := s.Analyze("Horrible disaster kills many, a tragic and devastating catastrophe")
	assert.Equal(t, LabelNegative, got.Label)
	assert.Less(t, got.Polarity, -0.1)
}

func TestAnalyzeRoundsToThreeDecimals(t *testing.T) {
	s := defaultScorer()
	got := s.Analyze("Markets edged slightly higher today amid good economic data")

	scaled := got.Polarity * 1000
	assert.InDelta(t, math.Round(scaled), scaled, 1e-9)
	scaled = got.Subjectivity * 1000
	assert.InDelta(t, math.Round(scaled), scaled, 1e-9)
}

func TestAnalyzeBoundedOutputs(t *testing.T) {
	s := defaultScorer()
	got := s.Analyze("Absolutely incredible, the best most wonderful thing ever, fantastic!")
	assert.GreaterOrEqual(t, got.Polarity, -1.0)
	assert.LessOrEqual(t, got.Polarity, 1.0)
	assert.GreaterOrEqual(t, got.Subjectivity, 0.0)
	assert.LessOrEqual(t, got.Subjectivity, 1.0)
}

func TestLabelThresholdsAreExclusive(t *testing.T) {
	s := defaultScorer()

	assert.Equal(t, LabelNeutral, s.Label(0.1), "exactly at the positive threshold stays neutral")
	assert.Equal(t, LabelNeutral, s.Label(-0.1), "exactly at the negative threshold stays neutral")
	assert.Equal(t, LabelNeutral, s.Label(0.0))
	assert.Equal(t, LabelPositive, s.Label(0.101))
	assert.Equal(t, LabelNegative, s.Label(-0.101))
}

func TestAnalyzeBatchAnnotatesEveryArticle(t *testing.T) {
	s := defaultScorer()
	batch := []news.Article{
		{Title: "Wonderful amazing fantastic victory celebrated"},
		{Title: ""},
	}
	out := s.AnalyzeBatch(batch)
	assert.Equal(t, LabelPositive, out[0].Sentiment.Label)
	assert.Equal(t, LabelNeutral, out[1].Sentiment.Label)
	assert.Zero(t, out[1].Sentiment.Polarity)
}

func TestDistributionAlwaysHasAllBuckets(t *testing.T) {
	dist := Distribution(nil)
	assert.Equal(t, 0, dist[LabelPositive])
	assert.Equal(t, 0, dist[LabelNegative])
	assert.Equal(t, 0, dist[LabelNeutral])

	batch := []news.Article{
		{Sentiment: news.Sentiment{Label: LabelPositive}},
		{Sentiment: news.Sentiment{Label: LabelPositive}},
		{Sentiment: news.Sentiment{}}, // unlabeled counts as neutral
	}
	dist = Distribution(batch)
	assert.Equal(t, 2, dist[LabelPositive])
	assert.Equal(t, 1, dist[LabelNeutral])
}
