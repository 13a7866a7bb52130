package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsgenie/internal/news"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Example Times</title>
  <item>
    <title>First headline</title>
    <link>https://example.com/first</link>
    <description><![CDATA[<p>Summary with <b>markup</b></p>]]></description>
    <pubDate>Mon, 24 Aug 2026 10:00:00 GMT</pubDate>
  </item>
  <item>
    <title>Second headline</title>
    <link>https://example.com/second</link>
    <description>Plain summary</description>
  </item>
  <item>
    <title>No link at all</title>
    <description>Should be skipped</description>
  </item>
</channel>
</rss>`

func feedServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(testFeed))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestFeedAdapterFetch(t *testing.T) {
	ts := feedServer(t)
	f := NewFeedAdapter(ts.URL, 20, 500, 5*time.Second)

	got := f.Fetch(context.Background(), "", news.NewSeenSet())
	require.Len(t, got, 2, "linkless items are skipped")

	assert.Equal(t, "First headline", got[0].Title)
	assert.Equal(t, "https://example.com/first", got[0].URL)
	assert.Equal(t, "Summary with markup", got[0].Summary)
	assert.Equal(t, "Example Times", got[0].Source)
	assert.Equal(t, time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC), got[0].Published.UTC())
}

func TestFeedAdapterDateFallback(t *testing.T) {
	ts := feedServer(t)
	f := NewFeedAdapter(ts.URL, 20, 500, 5*time.Second)
	fixed := time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC)
	f.now = func() time.Time { return fixed }

	got := f.Fetch(context.Background(), "", news.NewSeenSet())
	require.Len(t, got, 2)
	assert.Equal(t, fixed, got[1].Published, "undated entry falls back to fetch time")
}

func TestFeedAdapterHonorsMaxItems(t *testing.T) {
	ts := feedServer(t)
	f := NewFeedAdapter(ts.URL, 1, 500, 5*time.Second)

	got := f.Fetch(context.Background(), "", news.NewSeenSet())
	assert.Len(t, got, 1)
}

func TestFeedAdapterSharedSeenSetSuppressesRepeats(t *testing.T) {
	ts := feedServer(t)
	a := NewFeedAdapter(ts.URL, 20, 500, 5*time.Second)
	b := NewFeedAdapter(ts.URL, 20, 500, 5*time.Second)

	seen := news.NewSeenSet()
	first := a.Fetch(context.Background(), "", seen)
	second := b.Fetch(context.Background(), "", seen)

	assert.Len(t, first, 2)
	assert.Empty(t, second, "URLs already emitted in the batch are suppressed")
}

func TestFeedAdapterDeadFeedYieldsNothing(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(ts.Close)

	f := NewFeedAdapter(ts.URL, 20, 500, 5*time.Second)
	got := f.Fetch(context.Background(), "", news.NewSeenSet())
	assert.Empty(t, got)
}

func TestFeedAdapterName(t *testing.T) {
	f := NewFeedAdapter("https://feeds.example.org/world.xml", 20, 500, time.Second)
	assert.Equal(t, "feed:feeds.example.org", f.Name())
}
