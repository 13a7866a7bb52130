package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsgenie/internal/app"
	"newsgenie/internal/config"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Example Times</title>
  <item>
    <title>Tech giant Apple unveils new AI chip</title>
    <link>https://example.com/tech</link>
    <description>The semiconductor targets data center workloads.</description>
    <pubDate>Sun, 30 Aug 2026 10:00:00 GMT</pubDate>
  </item>
  <item>
    <title>City wins the championship final</title>
    <link>https://example.com/sports</link>
    <description>A dramatic football match decided the league title.</description>
    <pubDate>Sat, 29 Aug 2026 10:00:00 GMT</pubDate>
  </item>
</channel>
</rss>`

func testEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(testFeed))
	}))
	t.Cleanup(feed.Close)

	cfg := config.Default()
	cfg.Feeds = []string{feed.URL}
	cfg.NewsAPI.Endpoint = ""
	cfg.CacheTTL = time.Hour

	svc, err := app.New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(svc.Close)

	r := gin.New()
	NewServer(svc).RegisterRoutes(r)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListArticles(t *testing.T) {
	r := testEngine(t)
	w := doRequest(r, http.MethodGet, "/api/v1/articles", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count    int `json:"count"`
		Articles []struct {
			Title     string `json:"title"`
			Category  string `json:"category"`
			Sentiment struct {
				Label string `json:"label"`
			} `json:"sentiment"`
		} `json:"articles"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "Tech giant Apple unveils new AI chip", resp.Articles[0].Title)
	assert.Equal(t, "Technology", resp.Articles[0].Category)
	assert.NotEmpty(t, resp.Articles[0].Sentiment.Label)
}

func TestListArticlesCategoryFilter(t *testing.T) {
	r := testEngine(t)
	w := doRequest(r, http.MethodGet, "/api/v1/articles?category=Sports&limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count    int `json:"count"`
		Articles []struct {
			Category string `json:"category"`
		} `json:"articles"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "Sports", resp.Articles[0].Category)
}

func TestListTrends(t *testing.T) {
	r := testEngine(t)
	w := doRequest(r, http.MethodGet, "/api/v1/trends", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Trending []struct {
			Word  string `json:"word"`
			Count int    `json:"count"`
		} `json:"trending"`
		Sources []struct {
			Source string `json:"source"`
		} `json:"sources"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Trending)
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, "Example Times", resp.Sources[0].Source)
}

func TestSentimentSummary(t *testing.T) {
	r := testEngine(t)
	w := doRequest(r, http.MethodGet, "/api/v1/sentiment", "")
	require.Equal(t, http.StatusOK, w.Code)

	var dist map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dist))

	total := 0
	for _, n := range dist {
		total += n
	}
	assert.Equal(t, 2, total)
}

func TestChat(t *testing.T) {
	r := testEngine(t)
	w := doRequest(r, http.MethodPost, "/api/v1/chat", `{"query":"top stories"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Answer string `json:"answer"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Answer, "Top stories:")
}

func TestChatRejectsBadBody(t *testing.T) {
	r := testEngine(t)

	w := doRequest(r, http.MethodPost, "/api/v1/chat", `{"not":"a query"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPost, "/api/v1/chat", `{"query":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	r := testEngine(t)

	// Run one batch so the health state reflects a completed run.
	doRequest(r, http.MethodGet, "/api/v1/articles", "")

	w := doRequest(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)

	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Contains(t, stats, "batches_served")
}

func TestRefresh(t *testing.T) {
	r := testEngine(t)
	w := doRequest(r, http.MethodPost, "/api/v1/refresh", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
