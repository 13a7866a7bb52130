// Package trends computes keyword frequency tables over a batch:
// corpus-wide trending topics, per-category breakdowns, and source
// and publication-date distributions.
package trends

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"newsgenie/internal/news"
)

// Keyword is one ranked token with its corpus frequency.
type Keyword struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// CategoryTrend is the per-category slice of the corpus.
type CategoryTrend struct {
	Count    int       `json:"count"`
	Keywords []Keyword `json:"keywords"`
}

// SourceCount is one origin with its article count.
type SourceCount struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// DayCount is one publication day with its article count.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

const categoryKeywordCount = 5
const sourceDistributionCap = 10

// Extractor tokenizes lower-cased alphabetic runs of a minimum length
// and filters them against a stop-word set. Both knobs come from config.
type Extractor struct {
	stopWords map[string]struct{}
	tokenRe   *regexp.Regexp
}

func New(minKeywordLen int, stopWords []string) *Extractor {
	if minKeywordLen <= 0 {
		minKeywordLen = 3
	}
	stops := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &Extractor{
		stopWords: stops,
		tokenRe:   regexp.MustCompile(fmt.Sprintf(`\b[a-z]{%d,}\b`, minKeywordLen)),
	}
}

// ExtractKeywords returns up to topN (keyword, frequency) pairs, most
// frequent first. Equal frequencies keep first-seen order, so the result
// is deterministic for a given text.
func (e *Extractor) ExtractKeywords(text string, topN int) []Keyword {
	words := e.tokenRe.FindAllString(strings.ToLower(text), -1)

	counts := make(map[string]int)
	order := make(map[string]int)
	for _, w := range words {
		if _, stop := e.stopWords[w]; stop {
			continue
		}
		if _, seen := counts[w]; !seen {
			order[w] = len(order)
		}
		counts[w]++
	}

	keywords := make([]Keyword, 0, len(counts))
	for w, n := range counts {
		keywords = append(keywords, Keyword{Word: w, Count: n})
	}
	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].Count != keywords[j].Count {
			return keywords[i].Count > keywords[j].Count
		}
		return order[keywords[i].Word] < order[keywords[j].Word]
	})

	if topN > 0 && len(keywords) > topN {
		keywords = keywords[:topN]
	}
	return keywords
}

// TrendingTopics extracts keywords over every article's title+summary.
func (e *Extractor) TrendingTopics(articles []news.Article, topN int) []Keyword {
	var b strings.Builder
	for _, a := range articles {
		b.WriteString(a.Text())
		b.WriteString(" ")
	}
	return e.ExtractKeywords(b.String(), topN)
}

// CategoryTrends groups the batch by category and computes each group's
// size and its own top keywords.
func (e *Extractor) CategoryTrends(articles []news.Article) map[string]CategoryTrend {
	grouped := make(map[string][]news.Article)
	for _, a := range articles {
		cat := a.Category
		if cat == "" {
			cat = "General"
		}
		grouped[cat] = append(grouped[cat], a)
	}

	result := make(map[string]CategoryTrend, len(grouped))
	for cat, group := range grouped {
		result[cat] = CategoryTrend{
			Count:    len(group),
			Keywords: e.TrendingTopics(group, categoryKeywordCount),
		}
	}
	return result
}

// SourceDistribution counts articles per source, top ten by count.
// Ties keep first-seen order.
func (e *Extractor) SourceDistribution(articles []news.Article) []SourceCount {
	counts := make(map[string]int)
	order := make(map[string]int)
	for _, a := range articles {
		src := a.Source
		if src == "" {
			src = "Unknown"
		}
		if _, seen := counts[src]; !seen {
			order[src] = len(order)
		}
		counts[src]++
	}

	sources := make([]SourceCount, 0, len(counts))
	for src, n := range counts {
		sources = append(sources, SourceCount{Source: src, Count: n})
	}
	sort.Slice(sources, func(i, j int) bool {
		if sources[i].Count != sources[j].Count {
			return sources[i].Count > sources[j].Count
		}
		return order[sources[i].Source] < order[sources[j].Source]
	})

	if len(sources) > sourceDistributionCap {
		sources = sources[:sourceDistributionCap]
	}
	return sources
}

// TemporalTrends counts articles per publication day, oldest first.
// Articles without a date are left out rather than bucketed under a
// fake day.
func (e *Extractor) TemporalTrends(articles []news.Article) []DayCount {
	counts := make(map[string]int)
	for _, a := range articles {
		if a.Published.IsZero() {
			continue
		}
		counts[a.Published.Format("2006-01-02")]++
	}

	days := make([]DayCount, 0, len(counts))
	for day, n := range counts {
		days = append(days, DayCount{Date: day, Count: n})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})
	return days
}
