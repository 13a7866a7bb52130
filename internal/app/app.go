// Package app wires the pipeline together: fetch, dedup, categorize,
// score, and the chat router on top, with a per-filter batch cache so a
// refresh inside the TTL never re-fetches every source.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"newsgenie/internal/cache"
	"newsgenie/internal/chat"
	"newsgenie/internal/classify"
	"newsgenie/internal/config"
	"newsgenie/internal/fetch"
	"newsgenie/internal/gemini"
	"newsgenie/internal/logger"
	"newsgenie/internal/metrics"
	"newsgenie/internal/news"
	"newsgenie/internal/ratelimit"
	"newsgenie/internal/sentiment"
	"newsgenie/internal/trends"
)

// aiSummaryCount caps how many articles per batch get an AI summary.
const aiSummaryCount = 5

type Service struct {
	cfg        *config.Config
	aggregator *news.Aggregator
	classifier *classify.Classifier
	scorer     *sentiment.Scorer
	extractor  *trends.Extractor
	router     *chat.Router
	ai         *gemini.Client // nil when the backend is not configured
	batches    *cache.Cache
}

func New(ctx context.Context, cfg *config.Config) (*Service, error) {
	// Source order is fixed: the API adapter first, feeds in config
	// order. Dedup outcomes depend on this order, not on fetch timing.
	sources := make([]news.Source, 0, len(cfg.Feeds)+1)
	sources = append(sources, fetch.NewAPIAdapter(cfg.NewsAPI, cfg.MaxSummaryLen, cfg.FetchTimeout))
	for _, feedURL := range cfg.Feeds {
		sources = append(sources, fetch.NewFeedAdapter(feedURL, cfg.MaxPerFeed, cfg.MaxSummaryLen, cfg.FetchTimeout))
	}

	svc := &Service{
		cfg:        cfg,
		aggregator: news.NewAggregator(sources, cfg.MaxArticles, cfg.FetchWorkers),
		classifier: classify.New(cfg.Classifier),
		scorer:     sentiment.New(cfg.PositiveThreshold, cfg.NegativeThreshold),
		extractor:  trends.New(cfg.MinKeywordLen, cfg.StopWords),
		batches:    cache.New(),
	}

	if cfg.GeminiAPIKey != "" {
		limiter := ratelimit.New(cfg.MaxGeminiRequests, 24*time.Hour)
		ai, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, limiter)
		if err != nil {
			logger.Warn("generative backend unavailable, continuing without it", "err", err)
		} else {
			svc.ai = ai
		}
	}

	var answerer chat.Answerer
	if svc.ai != nil {
		answerer = svc.ai
	}
	svc.router = chat.NewRouter(svc.classifier, svc.extractor, answerer)

	return svc, nil
}

func (s *Service) Close() {
	s.batches.Close()
	if s.ai != nil {
		s.ai.Close()
	}
}

// Articles returns the processed batch for a category filter, running
// the pipeline when the cache misses. The filter is applied against the
// classified category; limit <= 0 means no limit. An empty result is the
// valid "no data" state, not an error; the only error is cancellation.
func (s *Service) Articles(ctx context.Context, category string, limit int) ([]news.Article, error) {
	batch, err := s.batch(ctx, category)
	if err != nil {
		return nil, err
	}

	if category != "" {
		filtered := make([]news.Article, 0, len(batch))
		for _, a := range batch {
			if strings.EqualFold(a.Category, category) {
				filtered = append(filtered, a)
			}
		}
		batch = filtered
	}

	if limit > 0 && len(batch) > limit {
		batch = batch[:limit]
	}
	return batch, nil
}

// Batch returns the full processed batch without the category view
// applied; the trends and chat surfaces work on the whole corpus.
func (s *Service) Batch(ctx context.Context) ([]news.Article, error) {
	return s.batch(ctx, "")
}

func (s *Service) batch(ctx context.Context, category string) ([]news.Article, error) {
	key := "batch:" + strings.ToLower(category)
	if v, ok := s.batches.Get(key); ok {
		return v.([]news.Article), nil
	}

	start := time.Now()
	batch, err := s.aggregator.FetchAll(ctx, category)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return nil, err
	}

	batch = s.classifier.CategorizeBatch(batch)
	batch = s.scorer.AnalyzeBatch(batch)
	s.enrichSummaries(ctx, batch)

	metrics.Global.RecordBatchDuration(time.Since(start))
	metrics.Global.IncrementBatchesServed()
	metrics.Global.SetLastRun()

	s.batches.Set(key, batch, s.cfg.CacheTTL)
	return batch, nil
}

// enrichSummaries asks the generative backend for summaries of the top
// articles. Failures leave the raw summary in place; the backend's
// absence is not a fault.
func (s *Service) enrichSummaries(ctx context.Context, batch []news.Article) {
	if s.ai == nil {
		return
	}
	for i := range batch {
		if i >= aiSummaryCount {
			break
		}
		if !s.ai.Available() {
			return
		}
		metrics.Global.IncrementAIRequests()
		summary, err := s.ai.Summarize(ctx, batch[i])
		if err != nil {
			metrics.Global.IncrementAIFallbacks()
			logger.Debug("ai summary failed", "title", batch[i].Title, "err", err)
			continue
		}
		batch[i].AISummary = summary
	}
}

// Chat answers a free-text question over the current full batch.
func (s *Service) Chat(ctx context.Context, query string) (string, error) {
	batch, err := s.Batch(ctx)
	if err != nil {
		return "", err
	}
	return s.router.Respond(ctx, query, batch), nil
}

// Trends bundles every aggregate view for the trends surface.
type Trends struct {
	Trending []trends.Keyword                `json:"trending"`
	Category map[string]trends.CategoryTrend `json:"by_category"`
	Sources  []trends.SourceCount            `json:"sources"`
	Timeline []trends.DayCount               `json:"timeline"`
}

func (s *Service) Trends(ctx context.Context, topN int) (*Trends, error) {
	batch, err := s.Batch(ctx)
	if err != nil {
		return nil, err
	}
	return &Trends{
		Trending: s.extractor.TrendingTopics(batch, topN),
		Category: s.extractor.CategoryTrends(batch),
		Sources:  s.extractor.SourceDistribution(batch),
		Timeline: s.extractor.TemporalTrends(batch),
	}, nil
}

// SentimentSummary reports label counts for the whole batch.
func (s *Service) SentimentSummary(ctx context.Context) (map[string]int, error) {
	batch, err := s.Batch(ctx)
	if err != nil {
		return nil, err
	}
	return sentiment.Distribution(batch), nil
}

// Refresh drops every cached batch so the next request rebuilds from
// live sources. Used by the cron schedule and the CLI.
func (s *Service) Refresh() {
	s.batches.Clear()
	logger.Info("batch cache cleared")
}

// Digest renders a plain-text overview of the current batch: top stories,
// trending keywords, and the sentiment split.
func (s *Service) Digest(ctx context.Context, category string, limit int) (string, error) {
	articles, err := s.Articles(ctx, category, limit)
	if err != nil {
		return "", err
	}
	if len(articles) == 0 {
		return "No articles available. Try again later or check the source configuration.", nil
	}

	var b strings.Builder
	if category != "" {
		fmt.Fprintf(&b, "%s news (%d articles)\n\n", category, len(articles))
	} else {
		fmt.Fprintf(&b, "Top stories (%d articles)\n\n", len(articles))
	}

	for i, a := range articles {
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, a.Category, a.Title)
		fmt.Fprintf(&b, "   %s | %s | %s\n", a.Source, a.Published.Format("2006-01-02 15:04"), a.Sentiment.Label)
		if s := a.DisplaySummary(); s != "" {
			fmt.Fprintf(&b, "   %s\n", chat.Truncate(s, 200))
		}
		b.WriteString("\n")
	}

	keywords := s.extractor.TrendingTopics(articles, 10)
	if len(keywords) > 0 {
		b.WriteString("Trending: ")
		words := make([]string, 0, len(keywords))
		for _, kw := range keywords {
			words = append(words, fmt.Sprintf("%s (%d)", kw.Word, kw.Count))
		}
		b.WriteString(strings.Join(words, ", "))
		b.WriteString("\n")
	}

	dist := sentiment.Distribution(articles)
	fmt.Fprintf(&b, "Sentiment: %d positive, %d negative, %d neutral\n",
		dist[sentiment.LabelPositive], dist[sentiment.LabelNegative], dist[sentiment.LabelNeutral])

	return b.String(), nil
}
