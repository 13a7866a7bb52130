package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"newsgenie/internal/config"
	"newsgenie/internal/logger"
	"newsgenie/internal/metrics"
	"newsgenie/internal/news"
	"newsgenie/internal/retry"
)

const apiMaxResponseBytes = 1 << 20 // 1MB

// APIAdapter pulls headlines from a NewsAPI-compatible JSON endpoint.
// Like the feed adapter it never errors out of Fetch: a missing key,
// a non-2xx status or a decode failure all degrade to zero articles.
type APIAdapter struct {
	cfg        config.NewsAPIConfig
	maxSummary int
	client     *http.Client
	retries    retry.Config
}

func NewAPIAdapter(cfg config.NewsAPIConfig, maxSummary int, timeout time.Duration) *APIAdapter {
	return &APIAdapter{
		cfg:        cfg,
		maxSummary: maxSummary,
		client:     &http.Client{Timeout: timeout},
		retries:    retry.Config{MaxAttempts: 2, Delay: time.Second},
	}
}

func (a *APIAdapter) Name() string {
	return "newsapi"
}

type apiResponse struct {
	Status   string      `json:"status"`
	Articles []apiResult `json:"articles"`
}

type apiResult struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
}

func (a *APIAdapter) Fetch(ctx context.Context, category string, seen *news.SeenSet) []news.Article {
	if a.cfg.APIKey == "" {
		logger.Debug("news api key not set, skipping API source")
		return nil
	}

	var payload apiResponse
	err := retry.Do(ctx, a.retries, func() error {
		return a.request(ctx, category, &payload)
	})
	if err != nil {
		logger.Warn("news api unavailable", "err", err)
		metrics.Global.IncrementSourceFailures()
		return nil
	}

	articles := make([]news.Article, 0, len(payload.Articles))
	for _, r := range payload.Articles {
		// Results without a URL cannot be deduplicated or linked; skip them.
		if r.URL == "" || !seen.Add(r.URL) {
			continue
		}

		// Missing dates stay at the zero time so these entries rank
		// least-recent instead of pretending to be fresh.
		var published time.Time
		if r.PublishedAt != "" {
			if t, perr := time.Parse(time.RFC3339, r.PublishedAt); perr == nil {
				published = t
			}
		}

		source := r.Source.Name
		if source == "" {
			source = "NewsAPI"
		}

		articles = append(articles, news.Article{
			URL:       r.URL,
			Title:     r.Title,
			Summary:   Truncate(StripMarkup(r.Description), a.maxSummary),
			Source:    source,
			Published: published,
			Author:    r.Author,
			Image:     r.URLToImage,
		})
	}

	logger.Debug("news api fetched", "articles", len(articles), "category", category)
	metrics.Global.AddArticlesFetched(len(articles))
	return articles
}

func (a *APIAdapter) request(ctx context.Context, category string, payload *apiResponse) error {
	q := url.Values{}
	q.Set("language", "en")
	q.Set("pageSize", fmt.Sprint(a.cfg.PageSize))
	// Map our category label into the API's own vocabulary; labels the
	// API does not know (World, Politics, General) fetch unfiltered.
	if mapped, ok := a.cfg.CategoryMap[category]; ok && mapped != "" {
		q.Set("category", mapped)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.Endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Api-Key", a.cfg.APIKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(io.LimitReader(resp.Body, apiMaxResponseBytes)).Decode(payload)
}
