// Package chat maps free-text questions about a batch onto the
// aggregate views the pipeline already computed. Dispatch is an ordered
// table of (predicate, handler) pairs evaluated top to bottom; the first
// match wins, so the priority order stays auditable in one place.
package chat

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"newsgenie/internal/classify"
	"newsgenie/internal/logger"
	"newsgenie/internal/metrics"
	"newsgenie/internal/news"
	"newsgenie/internal/sentiment"
	"newsgenie/internal/trends"
)

// Answerer is the optional generative backend. Absence or failure is a
// degradation path, never an error the caller sees: the router falls
// back to deterministic keyword search.
type Answerer interface {
	Available() bool
	Answer(ctx context.Context, question string, articles []news.Article) (string, error)
}

type handlerFunc func(ctx context.Context, query string, articles []news.Article) string

type route struct {
	name   string
	match  func(query string) bool
	handle handlerFunc
}

type Router struct {
	classifier *classify.Classifier
	extractor  *trends.Extractor
	answerer   Answerer // may be nil
	routes     []route
}

func NewRouter(classifier *classify.Classifier, extractor *trends.Extractor, answerer Answerer) *Router {
	r := &Router{
		classifier: classifier,
		extractor:  extractor,
		answerer:   answerer,
	}

	// Priority order: greeting > help > explicit category > top stories >
	// trending > sentiment > count > free keyword fallback.
	r.routes = []route{
		{"greeting", matchAnyWord("hello", "hi", "hey", "greetings"), r.handleGreeting},
		{"help", matchHelp, r.handleHelp},
		{"category", r.matchCategory, r.handleCategory},
		{"top-stories", matchAnyPhrase("top stories", "top news", "latest news", "headlines", "what's happening", "latest"), r.handleTopStories},
		{"trending", matchAnyPhrase("trending", "popular", "hot topics", "buzzing"), r.handleTrending},
		{"sentiment", matchAnyPhrase("sentiment", "mood", "feeling", "tone", "positive", "negative"), r.handleSentiment},
		{"count", matchAnyPhrase("how many", "count", "number of"), r.handleCount},
		{"fallback", func(string) bool { return true }, r.handleFallback},
	}

	return r
}

// Respond answers one utterance over the given batch. It never returns
// an error: every internal failure degrades to a deterministic path.
func (r *Router) Respond(ctx context.Context, query string, articles []news.Article) string {
	metrics.Global.IncrementChatQueries()

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return r.handleHelp(ctx, q, articles)
	}

	for _, rt := range r.routes {
		if rt.match(q) {
			logger.Debug("chat routed", "route", rt.name, "query", query)
			return rt.handle(ctx, q, articles)
		}
	}

	// Unreachable: the fallback route matches everything.
	return r.handleFallback(ctx, q, articles)
}

func (r *Router) handleGreeting(_ context.Context, _ string, _ []news.Article) string {
	return "Hello! Ask me about today's news: top stories, a category like Technology or Sports, " +
		"trending topics, or the overall sentiment."
}

func (r *Router) handleHelp(_ context.Context, _ string, _ []news.Article) string {
	var b strings.Builder
	b.WriteString("I can answer questions about the current news batch:\n")
	b.WriteString("- \"top stories\" for the latest headlines\n")
	b.WriteString("- a category name (e.g. \"show me Sports news\")\n")
	b.WriteString("- \"trending topics\" for the keywords dominating coverage\n")
	b.WriteString("- \"what's the sentiment\" for the overall mood\n")
	b.WriteString("- \"how many articles per category\"\n")
	b.WriteString("- or any keyword to search titles and summaries")
	return b.String()
}

func (r *Router) matchCategory(q string) bool {
	return r.categoryIn(q) != ""
}

func (r *Router) categoryIn(q string) string {
	for _, cat := range r.classifier.Categories() {
		if containsWord(q, strings.ToLower(cat)) {
			return cat
		}
	}
	if containsWord(q, "general") {
		return classify.General
	}
	return ""
}

func (r *Router) handleCategory(_ context.Context, q string, articles []news.Article) string {
	cat := r.categoryIn(q)
	var matched []news.Article
	for _, a := range articles {
		if a.Category == cat {
			matched = append(matched, a)
		}
	}
	if len(matched) == 0 {
		return fmt.Sprintf("No %s articles in the current batch. Try refreshing or another category.", cat)
	}
	return formatArticleList(fmt.Sprintf("%s news (%d articles):", cat, len(matched)), matched, 5)
}

func (r *Router) handleTopStories(_ context.Context, _ string, articles []news.Article) string {
	if len(articles) == 0 {
		return "No articles available right now. Try refreshing the news."
	}
	return formatArticleList("Top stories:", articles, 5)
}

func (r *Router) handleTrending(_ context.Context, _ string, articles []news.Article) string {
	keywords := r.extractor.TrendingTopics(articles, 10)
	if len(keywords) == 0 {
		return "Not enough articles to compute trending topics yet."
	}

	var b strings.Builder
	b.WriteString("Trending topics right now:\n")
	for i, kw := range keywords {
		fmt.Fprintf(&b, "%d. %s (%d mentions)\n", i+1, kw.Word, kw.Count)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *Router) handleSentiment(_ context.Context, q string, articles []news.Article) string {
	scope := "overall"
	scoped := articles

	// A leftover keyword narrows the summary to a topic, e.g.
	// "sentiment about climate".
	if topic := extractTopic(q, sentimentNoiseWords); topic != "" {
		var matched []news.Article
		for _, a := range articles {
			if strings.Contains(strings.ToLower(a.Text()), topic) {
				matched = append(matched, a)
			}
		}
		if len(matched) > 0 {
			scope = "\"" + topic + "\""
			scoped = matched
		}
	}

	if len(scoped) == 0 {
		return "No articles available to analyze."
	}

	dist := sentiment.Distribution(scoped)
	total := len(scoped)
	return fmt.Sprintf(
		"Sentiment for %s coverage (%d articles): %d positive, %d negative, %d neutral.",
		scope, total,
		dist[sentiment.LabelPositive],
		dist[sentiment.LabelNegative],
		dist[sentiment.LabelNeutral],
	)
}

func (r *Router) handleCount(_ context.Context, _ string, articles []news.Article) string {
	if len(articles) == 0 {
		return "The current batch is empty."
	}

	dist := r.classifier.Distribution(articles)
	var b strings.Builder
	fmt.Fprintf(&b, "%d articles in the current batch:\n", len(articles))
	for _, cat := range r.classifier.Categories() {
		if n := dist[cat]; n > 0 {
			fmt.Fprintf(&b, "- %s: %d\n", cat, n)
		}
	}
	if n := dist[classify.General]; n > 0 {
		fmt.Fprintf(&b, "- %s: %d\n", classify.General, n)
	}
	return strings.TrimRight(b.String(), "\n")
}

// handleFallback tries the generative backend first and degrades to
// deterministic keyword search when it is absent or fails.
func (r *Router) handleFallback(ctx context.Context, q string, articles []news.Article) string {
	if r.answerer != nil && r.answerer.Available() {
		metrics.Global.IncrementAIRequests()
		answer, err := r.answerer.Answer(ctx, q, articles)
		if err == nil && strings.TrimSpace(answer) != "" {
			return answer
		}
		metrics.Global.IncrementAIFallbacks()
		logger.Warn("generative backend failed, using keyword search", "err", err)
	}

	if keyword := extractTopic(q, queryNoiseWords); keyword != "" {
		return r.searchArticles(keyword, articles)
	}

	return "I'm not sure what you're asking. Try \"top stories\", a category name, or a keyword to search for."
}

func (r *Router) searchArticles(keyword string, articles []news.Article) string {
	var matched []news.Article
	for _, a := range articles {
		if strings.Contains(strings.ToLower(a.Text()), keyword) {
			matched = append(matched, a)
		}
	}
	if len(matched) == 0 {
		return fmt.Sprintf("No articles mention %q in the current batch.", keyword)
	}
	return formatArticleList(fmt.Sprintf("Articles mentioning %q:", keyword), matched, 5)
}

func formatArticleList(header string, articles []news.Article, max int) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	for i, a := range articles {
		if i >= max {
			break
		}
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, a.Title, a.Source)
		if s := a.DisplaySummary(); s != "" {
			fmt.Fprintf(&b, "   %s\n", Truncate(s, 160))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Truncate shortens a summary line for chat output, cutting on a rune
// boundary with an ellipsis.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max])) + "..."
}

var wordRe = regexp.MustCompile(`\b[a-z]{4,}\b`)

// Noise words that never make useful search topics.
var queryNoiseWords = map[string]struct{}{
	"what": {}, "whats": {}, "tell": {}, "show": {}, "give": {}, "about": {},
	"news": {}, "article": {}, "articles": {}, "story": {}, "stories": {},
	"some": {}, "please": {}, "today": {}, "know": {}, "find": {}, "search": {},
	"anything": {}, "there": {},
}

// Same idea for sentiment queries, which also carry the phrase words.
var sentimentNoiseWords = map[string]struct{}{
	"what": {}, "whats": {}, "tell": {}, "show": {}, "about": {}, "news": {},
	"sentiment": {}, "mood": {}, "feeling": {}, "tone": {}, "positive": {},
	"negative": {}, "overall": {}, "articles": {}, "coverage": {}, "the": {},
}

// extractTopic pulls the first meaningful word (≥4 letters, not noise)
// out of a query, mirroring how the classifier tokenizes.
func extractTopic(q string, noise map[string]struct{}) string {
	for _, w := range wordRe.FindAllString(q, -1) {
		if _, skip := noise[w]; skip {
			continue
		}
		return w
	}
	return ""
}

func containsWord(q, word string) bool {
	for _, f := range strings.Fields(q) {
		if strings.Trim(f, ".,!?\"'") == word {
			return true
		}
	}
	return false
}

// matchHelp requires "help" as a standalone word so "helpful" or
// "helping" in a search query does not hijack the route.
func matchHelp(q string) bool {
	return containsWord(q, "help") ||
		strings.Contains(q, "what can you do") ||
		strings.Contains(q, "how do you work")
}

func matchAnyWord(words ...string) func(string) bool {
	return func(q string) bool {
		for _, w := range words {
			if containsWord(q, w) {
				return true
			}
		}
		return false
	}
}

func matchAnyPhrase(phrases ...string) func(string) bool {
	return func(q string) bool {
		for _, p := range phrases {
			if strings.Contains(q, p) {
				return true
			}
		}
		return false
	}
}
