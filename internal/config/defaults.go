package config

import "time"

// Default mirrors a full working deployment. The classifier tables
// live here as data; the scoring code never hard-codes a category.
func Default() *Config {
	return &Config{
		Feeds: []string{
			// General
			"http://rss.cnn.com/rss/cnn_topstories.rss",
			"http://feeds.bbci.co.uk/news/rss.xml",
			"https://www.theguardian.com/world/rss",
			// Technology
			"https://techcrunch.com/feed/",
			"https://www.theverge.com/rss/index.xml",
			"https://www.wired.com/feed/rss",
			"https://arstechnica.com/feed/",
			// Sports
			"http://feeds.bbci.co.uk/sport/rss.xml",
			"https://www.espn.com/espn/rss/news",
			"https://www.skysports.com/rss/12040",
			"https://sports.yahoo.com/rss/",
			"https://www.theguardian.com/sport/rss",
			// Business
			"https://feeds.reuters.com/reuters/businessNews",
			"https://www.ft.com/?format=rss",
			// Entertainment
			"https://www.hollywoodreporter.com/feed/",
			"https://variety.com/feed/",
			// Health
			"https://www.medicalnewstoday.com/rss/news.xml",
			// Science
			"https://www.sciencedaily.com/rss/all.xml",
		},
		NewsAPI: NewsAPIConfig{
			Endpoint: "https://newsapi.org/v2/top-headlines",
			PageSize: 40,
			CategoryMap: map[string]string{
				"Technology":    "technology",
				"Business":      "business",
				"Finance":       "business",
				"Sports":        "sports",
				"Entertainment": "entertainment",
				"Health":        "health",
				"Science":       "science",
			},
		},

		MaxArticles:   100,
		MaxPerFeed:    20,
		MaxSummaryLen: 500,
		FetchTimeout:  10 * time.Second,
		FetchWorkers:  6,

		Classifier:        defaultClassifier(),
		PositiveThreshold: 0.1,
		NegativeThreshold: -0.1,

		MinKeywordLen: 3,
		StopWords: []string{
			"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
			"of", "with", "by", "from", "up", "about", "into", "through", "during",
			"is", "are", "was", "were", "be", "been", "being", "have", "has", "had",
			"do", "does", "did", "will", "would", "could", "should", "may", "might",
			"says", "said", "after", "new", "over", "more", "their", "this", "that",
		},

		GeminiModel:       "gemini-1.5-flash",
		MaxGeminiRequests: 20,

		ListenAddr:      ":8080",
		CacheTTL:        time.Hour,
		RefreshSchedule: "",
	}
}

func defaultClassifier() ClassifierConfig {
	return ClassifierConfig{
		// Order fixes the tie-break: equal scores resolve to the earliest entry.
		Categories: []CategoryRule{
			{
				Name: "Technology",
				Keywords: []string{
					"tech", "technology", "ai", "artificial intelligence", "software",
					"hardware", "chip", "semiconductor", "startup", "app", "robot",
					"robotics", "cyber", "cybersecurity", "cloud", "data", "internet",
					"smartphone", "gadget", "google", "apple", "microsoft", "meta",
					"amazon", "openai", "algorithm", "crypto", "blockchain",
				},
				Exclusions: []string{"tech support scam"},
				MinScore:   2,
			},
			{
				Name: "Business",
				Keywords: []string{
					"business", "company", "corporate", "ceo", "merger", "acquisition",
					"startup", "deal", "industry", "retail", "manufacturing", "revenue",
					"profit", "earnings", "layoffs", "workers", "employees", "factory",
				},
				Exclusions: []string{"show business"},
				MinScore:   2,
			},
			{
				Name: "Finance",
				Keywords: []string{
					"finance", "financial", "stock", "stocks", "market", "markets",
					"trading", "investment", "investor", "bank", "banking", "currency",
					"inflation", "interest rate", "bond", "hedge fund", "wall street",
					"economy", "economic", "gdp", "recession",
				},
				MinScore: 1,
			},
			{
				Name: "Sports",
				Keywords: []string{
					"sport", "sports", "match", "game", "tournament", "championship",
					"league", "football", "soccer", "basketball", "tennis", "cricket",
					"golf", "olympics", "coach", "player", "team", "goal", "win",
					"season", "transfer",
				},
				Exclusions: []string{"sports betting"},
				MinScore:   1,
			},
			{
				Name: "Politics",
				Keywords: []string{
					"politics", "political", "election", "vote", "parliament",
					"congress", "senate", "president", "minister", "government",
					"policy", "legislation", "campaign", "democrat", "republican",
					"party", "bill", "law",
				},
				MinScore: 1,
			},
			{
				Name: "World",
				Keywords: []string{
					"world", "international", "global", "united nations", "war",
					"conflict", "treaty", "diplomacy", "border", "refugee", "summit",
					"sanctions", "crisis",
				},
				MinScore: 2,
			},
			{
				Name: "Entertainment",
				Keywords: []string{
					"film", "movie", "music", "album", "celebrity", "actor", "actress",
					"hollywood", "concert", "festival", "streaming", "netflix",
					"box office", "tv show", "premiere",
				},
				MinScore: 2,
			},
			{
				Name: "Health",
				Keywords: []string{
					"health", "medical", "medicine", "hospital", "doctor", "vaccine",
					"virus", "disease", "cancer", "treatment", "mental health", "drug",
					"patient", "clinical trial", "outbreak",
				},
				MinScore: 2,
			},
			{
				Name: "Science",
				Keywords: []string{
					"science", "research", "study", "scientist", "space", "nasa",
					"climate", "physics", "biology", "chemistry", "discovery",
					"telescope", "genome", "experiment",
				},
				MinScore: 2,
			},
		},
		SourceHints: []SourceHint{
			{Category: "Sports", Fragments: []string{"espn", "skysports", "bbc-sport", "sports.yahoo", "/sport/"}},
			{Category: "Technology", Fragments: []string{"techcrunch", "theverge", "wired", "arstechnica", "/technology/"}},
			{Category: "Finance", Fragments: []string{"reuters/markets", "marketwatch", "investing.com", "/finance/", "ft.com"}},
			{Category: "Business", Fragments: []string{"reuters/business", "/business/"}},
		},
		ProtestTerms: []string{"protest", "demonstration", "rally", "march", "activist"},
		LaborTerms:   []string{"strike", "union", "workers", "employees"},
		FinanceTerms: []string{
			"stock", "market", "trading", "investment", "bank", "currency",
			"inflation", "interest rate", "profit", "earnings", "revenue",
		},
	}
}
