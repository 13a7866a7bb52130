package gemini

import (
	"context"
	"strings"
	"testing"
	"time"

	"newsgenie/internal/news"
	"newsgenie/internal/ratelimit"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), "", "gemini-1.5-flash", ratelimit.New(10, time.Hour))
	if err == nil {
		t.Fatal("NewClient with empty key must error")
	}
}

func TestAvailableOnNilClient(t *testing.T) {
	var c *Client
	if c.Available() {
		t.Fatal("nil client must report unavailable")
	}
}

func TestBuildContextCapsArticles(t *testing.T) {
	var articles []news.Article
	for i := 0; i < 12; i++ {
		articles = append(articles, news.Article{
			Title:    "Headline",
			Category: "World",
			Source:   "Wire",
			Summary:  "Some summary text.",
		})
	}

	out := buildContext(articles)
	if got := strings.Count(out, "[World]"); got != contextArticles {
		t.Fatalf("context carries %d articles, want %d", got, contextArticles)
	}
}

func TestBuildContextPrefersAISummary(t *testing.T) {
	out := buildContext([]news.Article{{
		Title:     "Headline",
		Summary:   "raw summary",
		AISummary: "generated summary",
	}})
	if !strings.Contains(out, "generated summary") || strings.Contains(out, "raw summary") {
		t.Fatalf("context should use the display summary: %q", out)
	}
}
