// Package classify assigns each article exactly one category using
// keyword-table scoring. The tables are runtime data from the config
// package; this code is one scoring function over swappable tables,
// so tuning a category never means touching the algorithm.
package classify

import (
	"regexp"
	"strings"

	"newsgenie/internal/config"
	"newsgenie/internal/logger"
	"newsgenie/internal/news"
)

// General is the fallback label when no category clears its threshold.
const General = "General"

// Category names the disambiguation rules refer to. The rules themselves
// are fixed; only their vocabularies live in the config tables.
const (
	technologyCategory = "Technology"
	businessCategory   = "Business"
	financeCategory    = "Finance"
	politicsCategory   = "Politics"
)

type keyword struct {
	raw string
	re  *regexp.Regexp
}

type category struct {
	name       string
	keywords   []keyword
	exclusions []string
	minScore   int
}

// Classifier scores articles against compiled keyword tables. Categorize
// is a pure function of the article fields and the tables, so the same
// article always gets the same label.
type Classifier struct {
	categories   []category // iteration order fixes the tie-break
	sourceHints  []config.SourceHint
	protestTerms []string
	laborTerms   []string
	financeTerms []string
}

func New(cfg config.ClassifierConfig) *Classifier {
	c := &Classifier{
		sourceHints:  cfg.SourceHints,
		protestTerms: lowerAll(cfg.ProtestTerms),
		laborTerms:   lowerAll(cfg.LaborTerms),
		financeTerms: lowerAll(cfg.FinanceTerms),
	}

	for _, rule := range cfg.Categories {
		cat := category{
			name:       rule.Name,
			exclusions: lowerAll(rule.Exclusions),
			minScore:   rule.MinScore,
		}
		if cat.minScore <= 0 {
			cat.minScore = 1
		}
		for _, kw := range rule.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			// Whole-word matching: "ai" must not match "said".
			re := regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
			cat.keywords = append(cat.keywords, keyword{raw: kw, re: re})
		}
		c.categories = append(c.categories, cat)
	}

	return c
}

// Categorize picks the label for one article. Steps, in order: source-hint
// override, weighted keyword scoring (title ×3, combined text ×1),
// exclusion zeroing, protest/labor disambiguation, Finance-vs-Business
// bonus, then threshold-gated selection with first-in-table tie-break.
func (c *Classifier) Categorize(a news.Article) string {
	title := strings.ToLower(a.Title)
	text := strings.ToLower(a.Text())
	srcURL := strings.ToLower(a.URL)
	srcName := strings.ToLower(a.Source)

	// High-confidence source fragments bypass scoring entirely.
	for _, hint := range c.sourceHints {
		for _, frag := range hint.Fragments {
			if strings.Contains(srcURL, frag) || strings.Contains(srcName, frag) {
				return hint.Category
			}
		}
	}

	scores := make(map[string]int)
	for _, cat := range c.categories {
		score := 0
		for _, kw := range cat.keywords {
			// A title hit counts triple and subsumes the body hit.
			if kw.re.MatchString(title) {
				score += 3
			} else if kw.re.MatchString(text) {
				score++
			}
		}

		excluded := false
		for _, ex := range cat.exclusions {
			if strings.Contains(text, ex) {
				excluded = true
				break
			}
		}

		if !excluded && score > 0 {
			scores[cat.name] = score
		}
	}

	// Protest vocabulary: these stories are civic, not product launches.
	if containsAny(text, c.protestTerms) {
		if s, ok := scores[technologyCategory]; ok {
			scores[technologyCategory] = maxInt(0, s-5)
		}
		scores[politicsCategory] += 3
	}

	// Labor vocabulary: strikes and union disputes read as Business.
	if containsAny(text, c.laborTerms) {
		if s, ok := scores[technologyCategory]; ok {
			scores[technologyCategory] = maxInt(0, s-5)
		}
		if _, ok := scores[businessCategory]; ok {
			scores[businessCategory] += 2
		}
	}

	// When Finance and Business both score, finance-specific vocabulary
	// breaks the tie toward Finance.
	if _, hasFin := scores[financeCategory]; hasFin {
		if _, hasBiz := scores[businessCategory]; hasBiz {
			if containsAny(text, c.financeTerms) {
				scores[financeCategory] += 3
			}
		}
	}

	best := ""
	bestScore := 0
	minScore := 0
	for _, cat := range c.categories {
		// Strictly greater: ties resolve to the earliest table entry.
		if s := scores[cat.name]; s > bestScore {
			best = cat.name
			bestScore = s
			minScore = cat.minScore
		}
	}

	if best == "" || bestScore < minScore {
		logger.Debug("categorized", "title", a.Title, "category", General)
		return General
	}

	logger.Debug("categorized", "title", a.Title, "category", best, "score", bestScore)
	return best
}

// CategorizeBatch writes the category back onto every article.
func (c *Classifier) CategorizeBatch(articles []news.Article) []news.Article {
	for i := range articles {
		articles[i].Category = c.Categorize(articles[i])
	}
	return articles
}

// Distribution counts articles per category. Unset categories count
// under the General fallback.
func (c *Classifier) Distribution(articles []news.Article) map[string]int {
	dist := make(map[string]int)
	for _, a := range articles {
		cat := a.Category
		if cat == "" {
			cat = General
		}
		dist[cat]++
	}
	return dist
}

// Categories returns the fixed label order, used by the chat router to
// spot explicit category mentions.
func (c *Classifier) Categories() []string {
	names := make([]string, 0, len(c.categories))
	for _, cat := range c.categories {
		names = append(names, cat.name)
	}
	return names
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
