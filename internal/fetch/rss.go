package fetch

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"newsgenie/internal/logger"
	"newsgenie/internal/metrics"
	"newsgenie/internal/news"
)

// FeedAdapter fetches one RSS/Atom feed. Errors never cross this
// boundary: a dead or malformed feed is logged and yields no articles,
// so the rest of the batch is unaffected.
type FeedAdapter struct {
	feedURL    string
	maxItems   int
	maxSummary int
	client     *http.Client

	// now is the fallback for entries without a parseable date.
	now func() time.Time
}

func NewFeedAdapter(feedURL string, maxItems, maxSummary int, timeout time.Duration) *FeedAdapter {
	return &FeedAdapter{
		feedURL:    feedURL,
		maxItems:   maxItems,
		maxSummary: maxSummary,
		client:     &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

func (f *FeedAdapter) Name() string {
	if u, err := url.Parse(f.feedURL); err == nil && u.Host != "" {
		return "feed:" + u.Host
	}
	return "feed:" + f.feedURL
}

// Fetch ignores the category filter: feeds are pre-curated per topic and
// always fetched for variety, matching how the aggregator distributes load.
func (f *FeedAdapter) Fetch(ctx context.Context, _ string, seen *news.SeenSet) []news.Article {
	parser := gofeed.NewParser()
	parser.Client = f.client

	feed, err := parser.ParseURLWithContext(f.feedURL, ctx)
	if err != nil {
		logger.Warn("feed fetch failed", "feed", f.feedURL, "err", err)
		metrics.Global.IncrementSourceFailures()
		return nil
	}

	source := strings.TrimSpace(feed.Title)
	if source == "" {
		source = f.Name()
	}

	articles := make([]news.Article, 0, f.maxItems)
	for _, item := range feed.Items {
		if len(articles) >= f.maxItems {
			break
		}
		if item.Link == "" || !seen.Add(item.Link) {
			continue
		}

		published := f.now()
		switch {
		case item.PublishedParsed != nil:
			published = *item.PublishedParsed
		case item.UpdatedParsed != nil:
			published = *item.UpdatedParsed
		}

		a := news.Article{
			URL:       item.Link,
			Title:     strings.TrimSpace(item.Title),
			Summary:   Truncate(StripMarkup(item.Description), f.maxSummary),
			Source:    source,
			Published: published,
		}
		if len(item.Authors) > 0 && item.Authors[0] != nil {
			a.Author = item.Authors[0].Name
		}
		if item.Image != nil {
			a.Image = item.Image.URL
		}
		articles = append(articles, a)
	}

	logger.Debug("feed fetched", "feed", f.feedURL, "articles", len(articles))
	metrics.Global.AddArticlesFetched(len(articles))
	return articles
}
