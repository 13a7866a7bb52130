package news

import (
	"strings"
	"sync"
	"time"
)

// Article is the unit the whole pipeline works on. Adapters create it,
// the aggregator decides whether it survives dedup, the classifier and
// sentiment scorer enrich it in place.
type Article struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Source    string    `json:"source"`
	Published time.Time `json:"published"`
	Author    string    `json:"author,omitempty"`
	Image     string    `json:"image,omitempty"`

	Category  string    `json:"category,omitempty"`
	Sentiment Sentiment `json:"sentiment"`

	// AISummary is filled by the optional generative backend and, when
	// present, supersedes Summary for display.
	AISummary string `json:"ai_summary,omitempty"`
}

// Sentiment is the per-article polarity record. Label is always derived
// from Polarity via fixed thresholds, never set independently.
type Sentiment struct {
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
	Label        string  `json:"label"`
}

// Text is the title+summary concatenation used by scoring and trends.
func (a Article) Text() string {
	return strings.TrimSpace(a.Title + " " + a.Summary)
}

// DisplaySummary prefers the AI summary when one exists.
func (a Article) DisplaySummary() string {
	if a.AISummary != "" {
		return a.AISummary
	}
	return a.Summary
}

// titleKeyTokens is how many leading title tokens form the near-duplicate key.
const titleKeyTokens = 10

// TitleKey builds the near-duplicate key: the first ten whitespace tokens
// of the title, lower-cased. Distinct URLs carrying the same headline
// collapse to one article.
func TitleKey(title string) string {
	fields := strings.Fields(strings.ToLower(title))
	if len(fields) > titleKeyTokens {
		fields = fields[:titleKeyTokens]
	}
	return strings.Join(fields, " ")
}

// SeenSet tracks URLs one adapter has already emitted within a single
// Fetch call, so a malformed feed repeating a link does not emit it
// twice. Cross-source duplicates are not its job: those are resolved by
// Deduplicate over the deterministic merge order.
type SeenSet struct {
	mu   sync.Mutex
	urls map[string]struct{}
}

func NewSeenSet() *SeenSet {
	return &SeenSet{urls: make(map[string]struct{})}
}

// Add records the URL and reports whether it was new.
func (s *SeenSet) Add(url string) bool {
	if url == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.urls[url]; dup {
		return false
	}
	s.urls[url] = struct{}{}
	return true
}

// Len reports how many URLs the batch has emitted so far.
func (s *SeenSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.urls)
}
